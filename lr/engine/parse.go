package engine

import (
	"errors"

	"github.com/Lailouezzz/microparser/lr"
	"github.com/Lailouezzz/microparser/lr/scanner"
)

// Parse drives the parser with tokens from a tokenizer until the input is accepted
// or an error occurs. The tokenizer has to deliver the end-of-input terminal of the
// grammar, otherwise the parser will eventually report a syntax error.
//
// Errors reported by the tokenizer abort the parse: the parser is torn down and a
// SyntaxError wrapping the tokenizer's error is returned. A tokenizer may report an
// *lr.Error instead, which is returned with its kind unchanged. The token delivered
// with a tokenizer error is dropped without being freed.
//
// Parse owns the tokens it reads from the tokenizer. Tokens not taken over by the
// parser, i.e. the token triggering acceptance and a token rejected by Feed, are
// destroyed with the token free callback of the tables.
//
// After acceptance the parser is ready for the next input.
func (p *Parser) Parse(tokenizer scanner.Tokenizer) (interface{}, error) {
	var lexErr error
	tokenizer.SetErrorHandler(func(e error) {
		if lexErr == nil {
			lexErr = e
		}
	})
	defer tokenizer.SetErrorHandler(nil)
	for {
		tok := tokenizer.NextToken()
		if lexErr != nil {
			_, _, err := p.fail(tokenizerError(lexErr, tok))
			return nil, err
		}
		status, root, err := p.Feed(tok)
		switch status {
		case Accepted:
			p.releaseToken(tok)
			return root, nil
		case Failed:
			p.releaseToken(tok)
			return nil, err
		}
	}
}

// tokenizerError classifies an error reported by a tokenizer. Errors which are
// already parser errors, e.g. an AllocationFailure of a tokenizer allocating
// payloads, keep their kind; anything else is a SyntaxError.
func tokenizerError(err error, tok lr.Token) error {
	var e *lr.Error
	if errors.As(err, &e) {
		if e.Token == nil {
			e.Token = &tok
		}
		return e
	}
	return &lr.Error{
		Kind:  lr.SyntaxError,
		Token: &tok,
		Msg:   "lexical error",
		Err:   err,
	}
}

func (p *Parser) releaseToken(tok lr.Token) {
	if free := p.tables.TokenFreeFunc(tok.Symbol); free != nil && tok.Payload != nil {
		free(tok.Payload, p.uctx)
	}
}
