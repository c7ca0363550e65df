/*
Package shell implements a parser for simple shell command lines, built on the
LR engine of this module. It serves as an example of how to plug a grammar into
package lr/engine and as the front end of the mpsh command.

Grammar

The grammar knows three terminals, WORD, IO and END, and ten productions:

    command  → simple
    command  → simple io_list
    simple   → progname
    simple   → progname args
    args     → WORD
    args     → args WORD
    progname → WORD
    io_list  → io
    io_list  → io_list io
    io       → IO WORD

Parse tables are precomputed (LALR(1), 13 states) and shared between all parsers.

Ownership

Every AST node is allocated from an Arena, which serves as the user context of
the LR parser. Reduce callbacks take over the nodes of their right hand side,
free callbacks give back nodes still owned by a parser's stack. Clients hand
back a parsed command with Arena.Free. Arena.Live tells how many nodes are
still alive, which makes the ownership protocol of the parser observable.

Usage

    arena := shell.NewArena(0)
    p, err := shell.NewParser(arena)
    …
    defer p.Close()
    cmd, err := p.Parse("cat < in.txt > out.txt")
    …
    arena.Free(cmd)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 ale-boud <ale-boud@student.42.fr>

*/
package shell

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'microparser.shell'.
func tracer() tracing.Trace {
	return tracing.Select("microparser.shell")
}
