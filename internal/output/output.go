// Package output provides console messages and the server table.
package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/eugenetaranov/psm/internal/errors"
	"github.com/eugenetaranov/psm/internal/server"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// Output handles formatted output.
type Output struct {
	w        io.Writer
	useColor bool
	debug    bool
}

// New creates a new output handler.
func New(w io.Writer) *Output {
	return &Output{
		w:        w,
		useColor: true,
	}
}

// SetColor enables or disables color output.
func (o *Output) SetColor(enabled bool) {
	o.useColor = enabled
}

// SetDebug enables or disables debug output.
func (o *Output) SetDebug(enabled bool) {
	o.debug = enabled
}

// color returns the string wrapped in color codes if enabled.
func (o *Output) color(c, s string) string {
	if !o.useColor {
		return s
	}
	return c + s + colorReset
}

// Info prints an informational message.
func (o *Output) Info(format string, args ...any) {
	o.printf("%s %s\n", o.color(colorBlue, "INFO"), fmt.Sprintf(format, args...))
}

// Success prints a message for a completed operation.
func (o *Output) Success(format string, args ...any) {
	o.printf("%s %s\n", o.color(colorGreen, "OK"), fmt.Sprintf(format, args...))
}

// Warn prints a warning message.
func (o *Output) Warn(format string, args ...any) {
	o.printf("%s %s\n", o.color(colorYellow, "WARN"), fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (o *Output) Error(format string, args ...any) {
	o.printf("%s %s\n", o.color(colorRed, "ERROR"), fmt.Sprintf(format, args...))
}

// Debug prints a debug message (only in debug mode).
func (o *Output) Debug(format string, args ...any) {
	if o.debug {
		o.printf("%s %s\n", o.color(colorGray, "DEBUG"), fmt.Sprintf(format, args...))
	}
}

// Failure prints a classified error followed by its details, sorted by key,
// so the offending input is shown verbatim.
func (o *Output) Failure(xe *errors.XError) {
	o.Error("%s", xe.Error())

	keys := make([]string, 0, len(xe.Details))
	for k := range xe.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.printf("      %s %v\n", o.color(colorGray, k+":"), xe.Details[k])
	}
}

// Table prints the registry entries as a table, in the order given.
// Nothing is printed for an empty list.
func (o *Output) Table(entries []server.Entry) {
	if len(entries) == 0 {
		return
	}

	re := lipgloss.NewRenderer(o.w)
	header := re.NewStyle().Padding(0, 1)
	if o.useColor {
		header = header.Bold(true)
	}
	left := re.NewStyle().Padding(0, 1)
	right := left.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Alias", "Username", "Address", "Port").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return left
			default:
				return right
			}
		})

	for _, e := range entries {
		t.Row(e.Alias, e.Server.Username, e.Server.Address, strconv.Itoa(int(e.Server.Port)))
	}

	o.printf("%s\n", t.Render())
}

func (o *Output) printf(format string, args ...any) {
	fmt.Fprintf(o.w, format, args...)
}
