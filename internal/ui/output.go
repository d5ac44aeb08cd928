package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	colorGreen  = lipgloss.Color("10")
	colorRed    = lipgloss.Color("204")
	colorYellow = lipgloss.Color("220")
	colorCyan   = lipgloss.Color("14")
	colorDim    = lipgloss.Color("240")
)

var (
	styleCheck   = lipgloss.NewStyle().Foreground(colorGreen)
	styleCross   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(colorYellow)
	styleNoun    = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleHeading = lipgloss.NewStyle().Bold(true)
)

// Output handles styled terminal output.
type Output struct {
	out     io.Writer
	err     io.Writer
	noColor bool
}

// NewOutput writes to stdout and stderr.
func NewOutput() *Output {
	return NewOutputTo(os.Stdout, os.Stderr)
}

// NewOutputTo writes to the given streams.
func NewOutputTo(out, err io.Writer) *Output {
	return &Output{out: out, err: err}
}

// SetNoColor disables colored output.
func (o *Output) SetNoColor(v bool) {
	o.noColor = v
}

// NoColor reports whether styling is disabled.
func (o *Output) NoColor() bool {
	return o.noColor
}

// Stdout is the stream for regular output.
func (o *Output) Stdout() io.Writer {
	return o.out
}

// Stderr is the stream for diagnostics.
func (o *Output) Stderr() io.Writer {
	return o.err
}

func (o *Output) render(s lipgloss.Style, text string) string {
	if o.noColor {
		return text
	}
	return s.Render(text)
}

// Success prints a success message with a green checkmark.
func (o *Output) Success(format string, args ...any) {
	mark := "✔"
	if o.noColor {
		mark = "OK"
	}
	fmt.Fprintf(o.out, "%s %s\n", o.render(styleCheck, mark), fmt.Sprintf(format, args...))
}

// Error prints an error message with a red cross.
func (o *Output) Error(format string, args ...any) {
	mark := "✗"
	if o.noColor {
		mark = "FAIL"
	}
	fmt.Fprintf(o.err, "%s %s\n", o.render(styleCross, mark), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with a yellow exclamation.
func (o *Output) Warning(format string, args ...any) {
	mark := "!"
	if o.noColor {
		mark = "WARN"
	}
	fmt.Fprintf(o.err, "%s %s\n", o.render(styleWarn, mark), fmt.Sprintf(format, args...))
}

// Info prints an informational message.
func (o *Output) Info(format string, args ...any) {
	fmt.Fprintf(o.out, format+"\n", args...)
}

// Println prints a line to stdout.
func (o *Output) Println(format string, args ...any) {
	fmt.Fprintf(o.out, format+"\n", args...)
}

// Heading prints a bold section title.
func (o *Output) Heading(title string) {
	fmt.Fprintln(o.out, o.render(styleHeading, title))
}

// Noun styles an identifiable name such as a path or project slug.
func (o *Output) Noun(s string) string {
	return o.render(styleNoun, s)
}

// Dim styles secondary text.
func (o *Output) Dim(s string) string {
	return o.render(styleDim, s)
}

// Size formats a byte count for humans, e.g. "1.2 MB".
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Table prints an aligned table with a header row.
func (o *Output) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...)
	if o.noColor {
		t = t.Border(lipgloss.ASCIIBorder())
	} else {
		t = t.Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
	}
	fmt.Fprintln(o.out, t.String())
}
