package shell

import (
	"fmt"

	"github.com/Lailouezzz/microparser"
	"github.com/Lailouezzz/microparser/lr"
)

// Terminals of the command grammar.
const (
	TokWord microparser.TokType = iota // a bare or quoted word, payload *Word
	TokIO                              // a redirection operator, payload IOType
	TokEnd                             // end of the command line
)

var symbolNames = [...]string{"WORD", "IO", "END"}

// SymbolName returns the name of a terminal of the command grammar.
func SymbolName(sym microparser.TokType) string {
	if sym < 0 || int(sym) >= len(symbolNames) {
		return fmt.Sprintf("#%d", sym)
	}
	return symbolNames[sym]
}

// Productions of the command grammar.
const (
	pCommand     lr.ProdID = iota // command  → simple
	pCommandIO                    // command  → simple io_list
	pSimple                       // simple   → progname
	pSimpleArgs                   // simple   → progname args
	pArgsFirst                    // args     → WORD
	pArgsNext                     // args     → args WORD
	pProgname                     // progname → WORD
	pIOListFirst                  // io_list  → io
	pIOListNext                   // io_list  → io_list io
	pIO                           // io       → IO WORD
	prodCount
)

const stateCount = 13

var tables = buildTables()

// Tables returns the parse tables of the command grammar. They are shared and
// must not be modified.
func Tables() *lr.Tables {
	return tables
}

func buildTables() *lr.Tables {
	A := lr.NewActionTable(stateCount, len(symbolNames))
	A.Set(0, TokWord, lr.Shift(1))
	A.Set(1, TokWord, lr.Reduce(pProgname)).
		Set(1, TokIO, lr.Reduce(pProgname)).
		Set(1, TokEnd, lr.Reduce(pProgname))
	A.Set(2, TokEnd, lr.Accept())
	A.Set(3, TokIO, lr.Shift(5)).
		Set(3, TokEnd, lr.Reduce(pCommand))
	A.Set(4, TokWord, lr.Shift(8)).
		Set(4, TokIO, lr.Reduce(pSimple)).
		Set(4, TokEnd, lr.Reduce(pSimple))
	A.Set(5, TokWord, lr.Shift(10))
	A.Set(6, TokIO, lr.Shift(5)).
		Set(6, TokEnd, lr.Reduce(pCommandIO))
	A.Set(7, TokIO, lr.Reduce(pIOListFirst)).
		Set(7, TokEnd, lr.Reduce(pIOListFirst))
	A.Set(8, TokWord, lr.Reduce(pArgsFirst)).
		Set(8, TokIO, lr.Reduce(pArgsFirst)).
		Set(8, TokEnd, lr.Reduce(pArgsFirst))
	A.Set(9, TokWord, lr.Shift(12)).
		Set(9, TokIO, lr.Reduce(pSimpleArgs)).
		Set(9, TokEnd, lr.Reduce(pSimpleArgs))
	A.Set(10, TokIO, lr.Reduce(pIO)).
		Set(10, TokEnd, lr.Reduce(pIO))
	A.Set(11, TokIO, lr.Reduce(pIOListNext)).
		Set(11, TokEnd, lr.Reduce(pIOListNext))
	A.Set(12, TokWord, lr.Reduce(pArgsNext)).
		Set(12, TokIO, lr.Reduce(pArgsNext)).
		Set(12, TokEnd, lr.Reduce(pArgsNext))
	G := lr.NewGotoTable(stateCount, int(prodCount))
	G.Set(0, pCommand, 2).Set(0, pCommandIO, 2).
		Set(0, pSimple, 3).Set(0, pSimpleArgs, 3).
		Set(0, pProgname, 4)
	G.Set(3, pIOListFirst, 6).Set(3, pIOListNext, 6).
		Set(3, pIO, 7)
	G.Set(4, pArgsFirst, 9).Set(4, pArgsNext, 9)
	G.Set(6, pIO, 11)
	return &lr.Tables{
		Name:    "shell command",
		Actions: A,
		Gotos:   G,
		Productions: []lr.Production{
			pCommand:     {Name: "command → simple", Arity: 1, Reduce: reduceCommand, Free: freeCommand},
			pCommandIO:   {Name: "command → simple io_list", Arity: 2, Reduce: reduceCommandIO, Free: freeCommand},
			pSimple:      {Name: "simple → progname", Arity: 1, Reduce: reduceSimple, Free: freeCommand},
			pSimpleArgs:  {Name: "simple → progname args", Arity: 2, Reduce: reduceSimpleArgs, Free: freeCommand},
			pArgsFirst:   {Name: "args → WORD", Arity: 1, Reduce: reduceArgsFirst, Free: freeArgs},
			pArgsNext:    {Name: "args → args WORD", Arity: 2, Reduce: reduceArgsNext, Free: freeArgs},
			pProgname:    {Name: "progname → WORD", Arity: 1, Reduce: reduceProgname, Free: freeWord},
			pIOListFirst: {Name: "io_list → io", Arity: 1, Reduce: reduceIOListFirst, Free: freeIOList},
			pIOListNext:  {Name: "io_list → io_list io", Arity: 2, Reduce: reduceIOListNext, Free: freeIOList},
			pIO:          {Name: "io → IO WORD", Arity: 2, Reduce: reduceIO, Free: freeIOInfo},
		},
		TokenFree:   []lr.FreeFunc{TokWord: freeWord, TokIO: nil, TokEnd: nil},
		SymbolNames: SymbolName,
	}
}

// --- Reduce callbacks ------------------------------------------------------

func reduceCommand(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	return rhs[0].Value, nil
}

func reduceCommandIO(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	arena := uctx.(*Arena)
	cmd := rhs[0].Value.(*Command)
	list := rhs[1].Value.(*ioList)
	cmd.IO = make([]IOInfo, 0, len(list.items))
	for _, io := range list.items {
		cmd.IO = append(cmd.IO, *io)
	}
	arena.releaseIOList(list)
	return cmd, nil
}

func reduceSimple(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	arena := uctx.(*Arena)
	pn := rhs[0].Value.(*Word)
	cmd := &Command{Progname: pn.Text}
	arena.release(pn)
	if err := arena.alloc(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func reduceSimpleArgs(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	arena := uctx.(*Arena)
	pn := rhs[0].Value.(*Word)
	args := rhs[1].Value.(*argList)
	cmd := &Command{Progname: pn.Text, Args: make([]string, len(args.words))}
	for i, w := range args.words {
		cmd.Args[i] = w.Text
	}
	arena.release(pn)
	arena.releaseArgs(args)
	if err := arena.alloc(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func reduceArgsFirst(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	arena := uctx.(*Arena)
	w := rhs[0].Token.Payload.(*Word)
	args := &argList{words: []*Word{w}}
	if err := arena.alloc(args); err != nil {
		arena.release(w)
		return nil, err
	}
	return args, nil
}

func reduceArgsNext(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	args := rhs[0].Value.(*argList)
	args.words = append(args.words, rhs[1].Token.Payload.(*Word))
	return args, nil
}

func reduceProgname(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	return rhs[0].Token.Payload, nil
}

func reduceIOListFirst(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	arena := uctx.(*Arena)
	io := rhs[0].Value.(*IOInfo)
	list := &ioList{items: []*IOInfo{io}}
	if err := arena.alloc(list); err != nil {
		arena.release(io)
		return nil, err
	}
	return list, nil
}

func reduceIOListNext(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	list := rhs[0].Value.(*ioList)
	list.items = append(list.items, rhs[1].Value.(*IOInfo))
	return list, nil
}

func reduceIO(rhs []lr.Slot, uctx interface{}) (interface{}, error) {
	arena := uctx.(*Arena)
	file := rhs[1].Token.Payload.(*Word)
	io := &IOInfo{Type: rhs[0].Token.Payload.(IOType), File: file.Text}
	arena.release(file)
	if err := arena.alloc(io); err != nil {
		return nil, err
	}
	return io, nil
}

// --- Free callbacks --------------------------------------------------------

func freeWord(value interface{}, uctx interface{}) {
	uctx.(*Arena).release(value.(*Word))
}

func freeCommand(value interface{}, uctx interface{}) {
	uctx.(*Arena).release(value.(*Command))
}

func freeArgs(value interface{}, uctx interface{}) {
	uctx.(*Arena).releaseArgs(value.(*argList))
}

func freeIOList(value interface{}, uctx interface{}) {
	uctx.(*Arena).releaseIOList(value.(*ioList))
}

func freeIOInfo(value interface{}, uctx interface{}) {
	uctx.(*Arena).release(value.(*IOInfo))
}
