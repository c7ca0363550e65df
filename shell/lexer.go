package shell

import (
	"fmt"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/Lailouezzz/microparser/lr"
	"github.com/Lailouezzz/microparser/lr/scanner"
	"github.com/Lailouezzz/microparser/lr/scanner/lexmach"
)

var lexer struct {
	once    sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

// commandLexer returns the lexmachine adapter for command lines. The DFA is
// compiled on first use.
func commandLexer() (*lexmach.LMAdapter, error) {
	lexer.once.Do(func() {
		lexer.adapter, lexer.err = lexmach.NewLMAdapter(initLexer, nil, nil, nil)
		if lexer.err == nil {
			lexer.adapter.EOF = TokEnd
		}
	})
	return lexer.adapter, lexer.err
}

func initLexer(lx *lexmachine.Lexer) {
	lx.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	for _, op := range ioOperators {
		typ, _ := IOTypeFromString(op)
		lx.Add([]byte(`\`+op[:1]+maybe(op[1:])), ioToken(typ))
	}
	lx.Add([]byte("[^ \t\n\r<>\"']+"), lexmach.MakeToken("WORD", int(TokWord)))
	lx.Add([]byte(`"[^"]*"`), quotedWord)
	lx.Add([]byte(`'[^']*'`), quotedWord)
}

func maybe(s string) string {
	if s == "" {
		return ""
	}
	return `\` + s
}

func ioToken(typ IOType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(TokIO), typ, m), nil
	}
}

func quotedWord(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	text := string(m.Bytes[1 : len(m.Bytes)-1])
	return s.Token(int(TokWord), text, m), nil
}

// --- Tokenizer -------------------------------------------------------------

// arenaTokenizer turns the lexemes of WORD tokens into *Word nodes of an arena.
// No node is allocated for a token delivered together with a lexical error.
type arenaTokenizer struct {
	scanner.Tokenizer
	arena   *Arena
	onError func(error)
	failed  bool
}

func newTokenizer(line string, arena *Arena) (*arenaTokenizer, error) {
	lm, err := commandLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(line)
	if err != nil {
		return nil, err
	}
	at := &arenaTokenizer{Tokenizer: sc, arena: arena}
	sc.SetErrorHandler(at.report)
	return at, nil
}

func (at *arenaTokenizer) SetErrorHandler(h func(error)) {
	at.onError = h
	at.Tokenizer.SetErrorHandler(at.report)
}

func (at *arenaTokenizer) report(err error) {
	at.failed = true
	if at.onError != nil {
		at.onError(err)
		return
	}
	tracer().Errorf("scanner error: %v", err)
}

func (at *arenaTokenizer) NextToken() lr.Token {
	at.failed = false
	tok := at.Tokenizer.NextToken()
	if tok.Symbol != TokWord || at.failed {
		return tok
	}
	w := &Word{Text: scanner.Lexeme(tok.Payload)}
	if err := at.arena.alloc(w); err != nil {
		at.report(&lr.Error{
			Kind: lr.AllocationFailure,
			Msg:  fmt.Sprintf("cannot allocate word %q", w.Text),
			Err:  err,
		})
		return tok
	}
	tok.Payload = w
	return tok
}

// Tokens splits a command line into tokens, without parsing it. WORD tokens
// carry their text as payload, IO tokens an IOType. The last token is END.
func Tokens(line string) ([]lr.Token, error) {
	lm, err := commandLexer()
	if err != nil {
		return nil, err
	}
	sc, err := lm.Scanner(line)
	if err != nil {
		return nil, err
	}
	var lexErr error
	sc.SetErrorHandler(func(e error) {
		if lexErr == nil {
			lexErr = e
		}
	})
	var toks []lr.Token
	for {
		tok := sc.NextToken()
		if lexErr != nil {
			return toks, lexErr
		}
		toks = append(toks, tok)
		if tok.Symbol == TokEnd {
			return toks, nil
		}
	}
}
