package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	json "github.com/json-iterator/go"
	"github.com/zfogg/creatorhub/cli/pkg/config"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
)

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	switch config.GetString("output.format") {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "table" || format == "text"
}

// Field is one labelled value of a record; records keep field order
type Field struct {
	Key   string
	Value interface{}
}

// Printer writes user-facing output in one format
type Printer struct {
	w      io.Writer
	format OutputFormat
}

// New creates a printer writing to w
func New(w io.Writer, format OutputFormat) *Printer {
	return &Printer{w: w, format: format}
}

// Format returns the printer's output format
func (p *Printer) Format() OutputFormat {
	return p.format
}

// Writer exposes the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Success prints a success message
func (p *Printer) Success(msg string, args ...interface{}) {
	p.status(color.New(color.FgGreen), "", msg, args...)
}

// Error prints an error message
func (p *Printer) Error(msg string, args ...interface{}) {
	p.status(color.New(color.FgRed), "Error: ", msg, args...)
}

// Info prints an info message
func (p *Printer) Info(msg string, args ...interface{}) {
	p.status(color.New(color.FgCyan), "", msg, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(msg string, args ...interface{}) {
	p.status(color.New(color.FgYellow), "Warning: ", msg, args...)
}

// status messages are suppressed in JSON mode so stdout stays parseable
func (p *Printer) status(c *color.Color, prefix, msg string, args ...interface{}) {
	if p.format == FormatJSON {
		return
	}
	c.Fprintf(p.w, prefix+msg+"\n", args...)
}

// Record prints one object. JSON mode emits data; the other modes print the
// fields in order.
func (p *Printer) Record(title string, fields []Field, data interface{}) error {
	switch p.format {
	case FormatJSON:
		return p.JSON(data)
	case FormatTable:
		rows := make([][]string, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, []string{f.Key, fmt.Sprint(f.Value)})
		}
		p.Table([]string{"Field", "Value"}, rows)
		return nil
	default:
		if title != "" {
			fmt.Fprintf(p.w, "%s:\n", title)
		}
		bold := color.New(color.Bold)
		for _, f := range fields {
			bold.Fprint(p.w, f.Key+": ")
			fmt.Fprintf(p.w, "%v\n", f.Value)
		}
		return nil
	}
}

// List prints rows as a table, or data as JSON in JSON mode
func (p *Printer) List(headers []string, rows [][]string, data interface{}) error {
	if p.format == FormatJSON {
		return p.JSON(data)
	}
	p.Table(headers, rows)
	return nil
}

// JSON prints data as indented JSON
func (p *Printer) JSON(data interface{}) error {
	out, err := FormatAsPrettyJSON(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, out)
	return err
}

// Table prints aligned columns with a bold header row
func (p *Printer) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)

	for i, h := range headers {
		bold.Fprint(w, h)
		if i < len(headers)-1 {
			fmt.Fprint(w, "\t")
		}
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprint(w, cell)
			if i < len(row)-1 {
				fmt.Fprint(w, "\t")
			}
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

// FormatAsPrettyJSON converts data to an indented JSON string
func FormatAsPrettyJSON(data interface{}) (string, error) {
	out, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
