/*
Package scanner defines an interface for tokenizers to be used with the parsers of
package lr/engine.

Three default implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', (2) a tokenizer over a fixed sequence of tokens, and (3) an adapter
for lexmachine, living in sub-package `lexmach`.

Tokenizers produce lr.Token values. Grammars number their terminals densely from 0,
so tokenizers which know nothing about a grammar have to be told how to map what
they recognize to terminal symbols. For the Go tokenizer this is done with
options Literals and Classes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 ale-boud <ale-boud@student.42.fr>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/Lailouezzz/microparser"
	"github.com/Lailouezzz/microparser/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'microparser.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("microparser.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token classes are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lr.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune                           // last token this scanner has produced
	Error        func(error)                    // error handler
	unifyStrings bool                           // convert single chars to strings
	literals     map[string]microparser.TokType // lexeme -> terminal
	classes      map[rune]microparser.TokType   // token class -> terminal
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
//
// The payload of the token is its lexeme. If literals or classes have been
// configured and the token matches neither, the error handler is called and the
// token is delivered with its raw token class as symbol.
func (t *DefaultTokenizer) NextToken() lr.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	lexeme := t.TokenText()
	span := microparser.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)}
	if t.lastToken == scanner.EOF {
		span = microparser.Span{uint64(t.Pos().Offset), uint64(t.Pos().Offset)}
	}
	return lr.Token{
		Symbol:  t.symbol(t.lastToken, lexeme),
		Payload: lexeme,
		Span:    span,
	}
}

func (t *DefaultTokenizer) symbol(class rune, lexeme string) microparser.TokType {
	if t.literals == nil && t.classes == nil {
		return microparser.TokType(class)
	}
	if sym, ok := t.literals[lexeme]; ok && class != scanner.EOF {
		return sym
	}
	if sym, ok := t.classes[class]; ok {
		return sym
	}
	t.Error(fmt.Errorf("%s: no terminal for %q (%s)", t.Position, lexeme, scanner.TokenString(class)))
	return microparser.TokType(class)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

const (
	optionSkipComments uint = 1 << 1 // do not pass comments
	optionUnifyStrings uint = 1 << 2 // treat raw strings and single chars as strings
)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Literals maps lexemes (operators, punctuation, keywords) to terminal symbols.
// Literals take precedence over Classes.
func Literals(m map[string]microparser.TokType) Option {
	return func(t *DefaultTokenizer) {
		t.literals = m
	}
}

// Classes maps token classes of text/scanner (Ident, Int, EOF, …) to terminal
// symbols. Map EOF to the end-of-input terminal of a grammar.
func Classes(m map[rune]microparser.TokType) Option {
	return func(t *DefaultTokenizer) {
		t.classes = m
	}
}

func (t *DefaultTokenizer) hasmode(m uint) bool {
	switch m {
	case optionUnifyStrings:
		return t.unifyStrings
	case optionSkipComments:
		return t.Mode&scanner.SkipComments > 0
	}
	return false
}

// --- Fixed token sequences -------------------------------------------------

// SliceTokenizer delivers a fixed sequence of tokens. After the sequence is
// exhausted, it delivers tokens with symbol EOF.
type SliceTokenizer struct {
	tokens []lr.Token
	pos    int
	Error  func(error)
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// NewSliceTokenizer creates a tokenizer for a sequence of tokens.
func NewSliceTokenizer(tokens ...lr.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens, Error: logError}
}

// NextToken is part of the Tokenizer interface.
func (st *SliceTokenizer) NextToken() lr.Token {
	if st.pos >= len(st.tokens) {
		return lr.Token{Symbol: EOF}
	}
	st.pos++
	return st.tokens[st.pos-1]
}

// SetErrorHandler is part of the Tokenizer interface. A slice tokenizer never
// reports errors.
func (st *SliceTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		st.Error = logError
		return
	}
	st.Error = h
}

// Rest returns the tokens not yet delivered.
func (st *SliceTokenizer) Rest() []lr.Token {
	return st.tokens[st.pos:]
}

// Lexeme is a helper function to receive a string from a token payload.
func Lexeme(payload interface{}) string {
	switch t := payload.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
