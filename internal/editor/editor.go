// Package editor implements the line-editor capability spec §6 leaves
// opaque ("read_line() -> Input(str) | Eof | Signal(n) | Err, set_prompt,
// set_completer"), with a minimal concrete default so the shell actually
// runs interactively.
package editor

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Outcome tags what ReadLine produced, following spec §6's
// Input(str)|Eof|Signal(n)|Err variant. There is no Signal outcome: the
// default reader never reports one.
type Outcome int

const (
	Input Outcome = iota
	EOF
	Err
)

// Completer suggests completions for a partial word. Not exercised by the
// default implementation below, but part of the capability's contract.
type Completer func(partial string) []string

// Editor is the line-editor capability. The default implementation below
// is a plain bufio.Reader line reader; a real line editor (history recall,
// completion, cursor movement) would satisfy the same interface.
type Editor interface {
	ReadLine() (string, Outcome, error)
	SetPrompt(prompt string)
	SetCompleter(c Completer)
}

// Basic is the default Editor: it prints the prompt to stderr (so it
// never pollutes captured stdout) and reads one line from stdin.
// Completion is accepted but unused — a plain reader has nothing to
// complete against.
type Basic struct {
	in        *bufio.Reader
	out       io.Writer
	prompt    string
	completer Completer
	isTTY     bool
}

// NewBasic builds a Basic editor reading from in and writing prompts to
// out. isTTY should be term.IsTerminal(fd) for the session's stdin; a
// non-tty session still works but skips printing the prompt (spec §6
// "non-tty stdin" mode).
func NewBasic(in io.Reader, out io.Writer, isTTY bool) *Basic {
	return &Basic{in: bufio.NewReader(in), out: out, isTTY: isTTY}
}

// NewBasicFromFd builds a Basic editor over os.Stdin/os.Stderr, detecting
// ttyness via golang.org/x/term.
func NewBasicFromFd() *Basic {
	isTTY := term.IsTerminal(int(os.Stdin.Fd()))
	return NewBasic(os.Stdin, os.Stderr, isTTY)
}

func (b *Basic) SetPrompt(prompt string)  { b.prompt = prompt }
func (b *Basic) SetCompleter(c Completer) { b.completer = c }

// ReadLine reads one line, printing the current prompt first when
// attached to a terminal.
func (b *Basic) ReadLine() (string, Outcome, error) {
	if b.isTTY && b.prompt != "" {
		fmt.Fprint(b.out, b.prompt)
	}

	line, err := b.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if line != "" {
				return line, Input, nil
			}
			return "", EOF, nil
		}
		return "", Err, err
	}
	return line[:len(line)-1], Input, nil
}
