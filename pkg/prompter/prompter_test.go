package prompter

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func newTest(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestString(t *testing.T) {
	p, out := newTest("  alice  \n")

	got, err := p.String("Username: ")
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if got != "alice" {
		t.Errorf("String = %q, want alice", got)
	}
	if out.String() != "Username: " {
		t.Errorf("prompt = %q", out.String())
	}
}

func TestStringWithoutTrailingNewline(t *testing.T) {
	p, _ := newTest("bob")

	got, err := p.String("> ")
	if err != nil || got != "bob" {
		t.Errorf("String = %q, %v", got, err)
	}
}

func TestStringEmptyInput(t *testing.T) {
	p, _ := newTest("")

	if _, err := p.String("> "); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestPasswordFallsBackToLineRead(t *testing.T) {
	p, _ := newTest("s3cret pass\n")

	got, err := p.Password("Password: ")
	if err != nil {
		t.Fatalf("Password: %v", err)
	}
	if got != "s3cret pass" {
		t.Errorf("Password = %q", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes \n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		p, _ := newTest(tt.input)
		got, err := p.Confirm("Delete?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSelect(t *testing.T) {
	options := []string{"timeline", "trending", "latest"}

	p, out := newTest("2\n")
	got, err := p.Select("Feed:", options)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != 1 {
		t.Errorf("Select = %d, want 1", got)
	}
	if !strings.Contains(out.String(), "3) latest") {
		t.Errorf("options not listed: %q", out.String())
	}

	for _, input := range []string{"0\n", "4\n", "two\n"} {
		p, _ := newTest(input)
		if _, err := p.Select("Feed:", options); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("Select(%q) err = %v, want ErrInvalidSelection", input, err)
		}
	}
}

func TestMultiline(t *testing.T) {
	p, _ := newTest("first line\nsecond line\n\nignored\n")

	got, err := p.Multiline("Comment", 10)
	if err != nil {
		t.Fatalf("Multiline: %v", err)
	}
	if got != "first line\nsecond line" {
		t.Errorf("Multiline = %q", got)
	}

	p, _ = newTest("a\nb\nc\n")
	if got, _ := p.Multiline("Comment", 2); got != "a\nb" {
		t.Errorf("maxLines not honored: %q", got)
	}

	p, _ = newTest("only")
	if got, _ := p.Multiline("Comment", 5); got != "only" {
		t.Errorf("EOF without newline = %q", got)
	}
}
