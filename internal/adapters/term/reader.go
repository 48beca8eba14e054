// Package term reads raw keystrokes from the controlling terminal.
package term

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Reader delivers single bytes from stdin with echo and line
// buffering disabled. Raw mode is entered per read and the previous
// terminal state is restored on every exit path.
type Reader struct {
	in *os.File
}

func NewReader() *Reader {
	return &Reader{in: os.Stdin}
}

// Interactive reports whether both stdin and stdout are terminals.
// Raw-mode reads require stdin; the step output assumes stdout.
func (r *Reader) Interactive() bool {
	return isatty.IsTerminal(r.in.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// ReadKey blocks until one byte of input arrives.
func (r *Reader) ReadKey() (byte, error) {
	fd := int(r.in.Fd())

	previous, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(fd, previous)

	var buf [1]byte
	n, err := r.in.Read(buf[:])
	if err != nil {
		return 0, fmt.Errorf("read stdin: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return buf[0], nil
}
