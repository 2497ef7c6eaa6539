package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[35m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

// Printer writes command feedback. Zero value writes to stdout/stderr.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

func (p Printer) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p Printer) err() io.Writer {
	if p.Err == nil {
		return os.Stderr
	}
	return p.Err
}

func (p Printer) OK(msg string)   { fmt.Fprintln(p.out(), C(Current().Success, symCheck+" "+msg)) }
func (p Printer) Fail(msg string) { fmt.Fprintln(p.err(), C(Current().Error, symCross+" "+msg)) }
func (p Printer) Hint(msg string) { fmt.Fprintln(p.err(), C(Current().Muted, msg)) }

func (p Printer) Println(a ...interface{}) { fmt.Fprintln(p.out(), a...) }
func (p Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out(), format, a...)
}

// Writer is where normal output goes.
func (p Printer) Writer() io.Writer { return p.out() }
