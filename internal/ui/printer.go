package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Colorized printf flavors shared by all printers.
//
//nolint:gochecknoglobals // Color functions are stateless and safe to share.
var (
	stepColor    = color.New(color.FgCyan, color.Bold).FprintfFunc()
	successColor = color.New(color.FgGreen).FprintfFunc()
	warnColor    = color.New(color.FgHiMagenta).FprintfFunc()
	errorColor   = color.New(color.FgRed).FprintfFunc()
	titleColor   = color.New(color.Bold).FprintfFunc()
)

// Printer writes the user-facing lines of the bootstrap conversation.
type Printer struct {
	out io.Writer
}

// NewPrinter returns a printer writing to out, defaulting to stdout.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}

	return &Printer{out: out}
}

// Out exposes the underlying writer for components sharing the stream,
// like the spinner.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Titlef writes a bold headline.
func (p *Printer) Titlef(format string, args ...any) {
	titleColor(p.out, format+"\n", args...)
}

// Stepf announces one numbered step of the run.
func (p *Printer) Stepf(index, total int, format string, args ...any) {
	stepColor(p.out, "[%d/%d] ", index, total)
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Successf reports a completed action.
func (p *Printer) Successf(format string, args ...any) {
	successColor(p.out, "  ✓ "+format+"\n", args...)
}

// Warnf reports a non-fatal problem the run continues past.
func (p *Printer) Warnf(format string, args ...any) {
	warnColor(p.out, "  ! "+format+"\n", args...)
}

// Errorf reports a failure.
func (p *Printer) Errorf(format string, args ...any) {
	errorColor(p.out, "  ✗ "+format+"\n", args...)
}

// Plainf writes an uncolored detail line.
func (p *Printer) Plainf(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
