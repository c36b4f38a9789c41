package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
	Faint   = color.New(color.Faint)
)

// Count abbreviates large counters: 999, 1.2k, 3.4M
func Count(n int) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// Pluralize returns "s" unless count is exactly one
func Pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// Noun renders "1 like", "2 likes"
func Noun(count int, singular string) string {
	return fmt.Sprintf("%s %s%s", Count(count), singular, Pluralize(count))
}

// Mark renders a flag as a symbol; off renders as a space so columns line up
func Mark(on bool, symbol string) string {
	if on {
		return symbol
	}
	return " "
}

// Truncate shortens s to at most max runes, ending with an ellipsis
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// Ago renders a timestamp relative to now
func Ago(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// Cents renders an amount in minor units as a price
func Cents(cents int, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, strings.ToUpper(currency))
}
