// Copyright 2026 The HarborShield Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer writes user-facing progress text: plain info lines, "==>"
// section headings, and a closing summary. It implements plan.Reporter.
//
// Styling follows the output's capabilities. Writers that are not
// terminals, and any writer when NO_COLOR is set, get plain text.
type Printer struct {
	out io.Writer

	heading lipgloss.Style
	success lipgloss.Style
}

// NewPrinter returns a Printer writing to out with a color profile
// detected from out and the environment.
func NewPrinter(out io.Writer) *Printer {
	return NewPrinterWithProfile(out, termenv.NewOutput(out).EnvColorProfile())
}

// NewPrinterWithProfile returns a Printer with an explicit color
// profile. termenv.Ascii disables styling entirely.
func NewPrinterWithProfile(out io.Writer, profile termenv.Profile) *Printer {
	renderer := lipgloss.NewRenderer(out)
	renderer.SetColorProfile(profile)
	return &Printer{
		out:     out,
		heading: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		success: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}

// Info prints one line.
func (p *Printer) Info(text string) {
	fmt.Fprintln(p.out, text)
}

// Heading prints a blank line and then "==> text".
func (p *Printer) Heading(text string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.heading.Render("==> "+text))
}

// Done prints a blank line, the first summary line emphasized, and the
// remaining lines as given.
func (p *Printer) Done(lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.success.Render(lines[0]))
	for _, line := range lines[1:] {
		fmt.Fprintln(p.out, line)
	}
}
