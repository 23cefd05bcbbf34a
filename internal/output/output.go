// Package output provides the writable sink used by reporters and the CLI.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer handles formatted output to an out and an err stream.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a Writer on stdout and stderr. Colour is enabled when stdout is
// a terminal.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: !color.NoColor,
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetColor forces colour on or off.
func (w *Writer) SetColor(enabled bool) {
	w.color = enabled
}

// Color reports whether colour output is enabled.
func (w *Writer) Color() bool {
	return w.color
}

// Out returns the underlying stdout writer.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Err returns the underlying stderr writer.
func (w *Writer) Err() io.Writer {
	return w.err
}

// Write writes s to stdout verbatim.
func (w *Writer) Write(s string) {
	_, _ = io.WriteString(w.out, s)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// paint renders s with the given attributes when colour is enabled.
func (w *Writer) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if w.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// Green colours s green.
func (w *Writer) Green(s string) string { return w.paint(s, color.FgGreen) }

// Red colours s red.
func (w *Writer) Red(s string) string { return w.paint(s, color.FgRed) }

// Yellow colours s yellow.
func (w *Writer) Yellow(s string) string { return w.paint(s, color.FgYellow) }

// Dim renders s faint.
func (w *Writer) Dim(s string) string { return w.paint(s, color.Faint) }

// GreenBold colours s bold green.
func (w *Writer) GreenBold(s string) string { return w.paint(s, color.FgGreen, color.Bold) }

// RedBold colours s bold red.
func (w *Writer) RedBold(s string) string { return w.paint(s, color.FgRed, color.Bold) }

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s", w.Green(fmt.Sprintf(format, args...)))
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Errorln("%s", w.Yellow("warning: "+fmt.Sprintf(format, args...)))
}

// ErrorPrefix prints an error message with the aspect prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	w.Errorln("%s %s", w.Red("aspect:"), fmt.Sprintf(format, args...))
}

var titleCaser = cases.Title(language.English)

// Section prints a title-cased section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	w.Println("%s", w.paint("=== "+titleCaser.String(title)+" ===", color.Bold))
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	w.Println("  %s %s", w.Dim(label+":"), value)
}

// SummaryPassed prints a labeled value in green.
func (w *Writer) SummaryPassed(label, value string) {
	w.Println("  %s %s", w.Dim(label+":"), w.Green(value))
}

// SummaryFailed prints a labeled value in red.
func (w *Writer) SummaryFailed(label, value string) {
	w.Println("  %s %s", w.Dim(label+":"), w.Red(value))
}

// ValidationSuccess prints a validation success message.
func (w *Writer) ValidationSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s %s", w.Green("✓"), msg)
	} else {
		w.Println("%s", msg)
	}
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	w.Println("%s", w.Dim(fmt.Sprintf(format, args...)))
}

// Table prints rows under headers as an aligned, borderless table.
func (w *Writer) Table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w.out)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(true)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetRowSeparator("-")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
