/*
Package engine provides an incremental, table-driven LR parser. Clients
supply precomputed parse tables (see package lr) and feed input tokens one
at a time; the parser shifts, reduces and finally accepts, calling the
production callbacks of the tables to build a value for the input.

Usage

    p, err := engine.NewParser(tables, uctx)
    if err != nil { … }                 // allocation failure, nothing to clean up
    defer p.Destroy()
    for {
        status, root, err := p.Feed(nextToken())
        if err != nil { … }             // parser already cleaned up
        if status == engine.Accepted {
            use(root)                   // root is owned by the caller now
            break
        }
    }

A single token may trigger any number of reductions before it is either
shifted or accepted. Tokens are owned by the parser once they have been
shifted. On every error returned from Feed, the parser has already destroyed
its stack, including all values still owned by it, and is in state Failed.
The token passed to the failing call is not owned by the parser.

Reuse

After acceptance the stack is back to its initial shape and the next call
to Feed starts parsing a new input. A failed parser may be re-initialized
with Reset.

Parsers are not safe for concurrent use. Tables may be shared between
parsers running in different goroutines; the user context is passed to
callbacks unsynchronized.

Configuration

If the global configuration flag panic-on-internal-error is set, an internal
error (tables inconsistent with the engine's invariants) will panic instead
of being returned. This is intended for debugging table generators.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 ale-boud <ale-boud@student.42.fr>

*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'microparser.lr'.
func tracer() tracing.Trace {
	return tracing.Select("microparser.lr")
}
