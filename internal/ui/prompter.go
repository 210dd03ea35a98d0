package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter asks the interactive questions of the bootstrap over stdio.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// StdinIsTerminal reports whether the process can actually ask questions.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Choose prints a numbered menu and reads answers until one of the options
// is picked. It returns the zero-based index of the choice.
func (p *Prompter) Choose(header string, options []string) (int, error) {
	fmt.Fprintf(p.out, "%s\n", header)

	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}

	for {
		fmt.Fprintf(p.out, "Choice [1-%d]: ", len(options))

		line, err := p.in.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("read choice: %w", err)
		}

		number, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && number >= 1 && number <= len(options) {
			return number - 1, nil
		}

		fmt.Fprintf(p.out, "Please answer with a number between 1 and %d.\n", len(options))
	}
}

// Confirm asks a yes/no question. An empty answer takes the default.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprintf(p.out, "%s %s: ", question, hint)

	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
