package shell

import (
	"fmt"
	"strings"
)

// IOType is the kind of a redirection.
type IOType int8

const (
	IOIn      IOType = iota // <
	IOOut                   // >
	IOAppend                // >>
	IOHeredoc               // <<
)

var ioOperators = [...]string{"<", ">", ">>", "<<"}

func (t IOType) String() string {
	if t < 0 || int(t) >= len(ioOperators) {
		return fmt.Sprintf("IOType(%d)", int8(t))
	}
	return ioOperators[t]
}

// IOTypeFromString returns the redirection type for an operator.
func IOTypeFromString(op string) (IOType, bool) {
	for i, o := range ioOperators {
		if o == op {
			return IOType(i), true
		}
	}
	return 0, false
}

// IOInfo is a single redirection.
type IOInfo struct {
	Type IOType
	File string // file name, or delimiter for here-documents
}

func (io IOInfo) String() string {
	return io.Type.String() + " " + quote(io.File)
}

// Command is the AST of a command line.
type Command struct {
	Progname string
	Args     []string
	IO       []IOInfo
}

// String renders a command in a form which parses to an equal command.
func (cmd *Command) String() string {
	if cmd == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(quote(cmd.Progname))
	for _, a := range cmd.Args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	for _, io := range cmd.IO {
		b.WriteByte(' ')
		b.WriteString(io.String())
	}
	return b.String()
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n<>'\"") {
		if strings.Contains(s, `"`) {
			return "'" + s + "'"
		}
		return `"` + s + `"`
	}
	return s
}

// --- Intermediate nodes ----------------------------------------------------

// Word is the payload of WORD tokens.
type Word struct {
	Text string
}

type argList struct {
	words []*Word
}

type ioList struct {
	items []*IOInfo
}
