package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminal puts stdin in raw mode and delivers single key presses.
type terminal struct {
	fd       int
	oldState *term.State
	keys     chan byte
}

// openTerminal switches stdin to raw mode. It fails when stdin is not a
// terminal.
func openTerminal() (*terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set raw mode: %w", err)
	}
	t := &terminal{fd: fd, oldState: oldState, keys: make(chan byte, 16)}
	go readKeys(os.Stdin, t.keys)
	return t, nil
}

// Keys returns the key channel. It is closed when stdin ends.
func (t *terminal) Keys() <-chan byte { return t.keys }

// Restore returns the terminal to its previous mode.
func (t *terminal) Restore() {
	if t.oldState != nil {
		_ = term.Restore(t.fd, t.oldState)
		t.oldState = nil
	}
}

// Statusf overwrites the current line. Raw mode needs explicit carriage
// returns.
func (t *terminal) Statusf(format string, args ...any) {
	fmt.Printf("\r\x1b[2K"+format, args...)
}

// Println prints a block of text with raw-mode line endings.
func (t *terminal) Println(s string) {
	for _, line := range strings.Split(s, "\n") {
		fmt.Print(line, "\r\n")
	}
}

func readKeys(r io.Reader, keys chan<- byte) {
	defer close(keys)
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			keys <- buf[0]
		}
		if err != nil {
			return
		}
	}
}
