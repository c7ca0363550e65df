/*
Package lr implements the data structures shared by LR parsers.

Parser Tables

An LR parser is driven by two tables. The ACTION table is indexed by an
automaton state and a terminal symbol and tells the parser whether to shift
the next input token, reduce a production, accept the input or report an
error. The GOTO table is indexed by a state and a production and is consulted
right after a reduction, to find the state the automaton resumes in.

Both tables are dense matrices. Tables are not constructed by this package,
clients are expected to provide them, usually from a generator run at build
time:

    actions := lr.NewActionTable(3, 2)      // 3 states, 2 terminals
    actions.Set(0, A, lr.Shift(1))
    actions.Set(1, B, lr.Reduce(0))
    ...
    gotos := lr.NewGotoTable(3, 1)          // 3 states, 1 production
    gotos.Set(0, 0, 2)

Productions

Every production is described by its arity (the length of its right hand side)
and two callbacks. Reduce builds a value from the stack slots of the handle,
Free destroys such a value if it is still owned by a parse stack when the
stack is torn down. Terminal symbols may carry a free callback as well,
for tokens which have been shifted but never consumed by a reduction.

    tables := &lr.Tables{
        Actions:     actions,
        Gotos:       gotos,
        Productions: []lr.Production{{Name: "S → a b", Arity: 2, Reduce: pair, Free: drop}},
        TokenFree:   []lr.FreeFunc{nil, nil},
    }

Tables are never modified by parsers and may be shared between any number
of them.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 ale-boud <ale-boud@student.42.fr>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'microparser.lr'.
func tracer() tracing.Trace {
	return tracing.Select("microparser.lr")
}
