// Package ui renders the plain (non-interactive) command output: colored
// status lines, framed panels and progress bars.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

// Dim is the escape for secondary text such as row numbers.
var Dim = dim

var (
	forceColor   bool
	disableColor bool
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// C wraps s in color when stdout is a terminal or color is forced.
func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

// OK prints a success line to w.
func OK(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Success, symCheck+" "+msg)) }

// Fail prints a failure line to w.
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Error, symCross+" "+msg)) }

// Hint prints a muted follow-up line to w.
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Muted, msg)) }
