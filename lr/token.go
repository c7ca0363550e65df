package lr

import (
	"fmt"

	"github.com/Lailouezzz/microparser"
)

// Token is an input token, fed to a parser one at a time. Tokens are
// produced by a tokenizer and reflect terminals of a grammar.
//
// Symbol is the terminal the token stands for and selects the column of the
// ACTION table. Payload is opaque to the parser. Once a token has been shifted,
// the parser's stack owns the payload: it is either consumed by a production's
// reduce callback or, if still on the stack at teardown, destroyed with the free
// callback registered for Symbol.
type Token struct {
	Symbol  microparser.TokType
	Payload interface{}
	Span    microparser.Span
}

// MakeToken creates a token without span information.
func MakeToken(sym microparser.TokType, payload interface{}) Token {
	return Token{Symbol: sym, Payload: payload}
}

func (t Token) String() string {
	if t.Payload == nil {
		return fmt.Sprintf("<%d>", t.Symbol)
	}
	return fmt.Sprintf("<%d|%v>", t.Symbol, t.Payload)
}
