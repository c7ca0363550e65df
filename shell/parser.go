package shell

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Lailouezzz/microparser/lr/engine"
)

// Parser parses command lines, one at a time. A Parser is not safe for
// concurrent use, but any number of parsers may share an arena.
type Parser struct {
	automaton *engine.Parser
	arena     *Arena
}

// NewParser creates a parser allocating AST nodes from arena.
// Options are passed on to the LR engine.
func NewParser(arena *Arena, opts ...engine.Option) (*Parser, error) {
	if arena == nil {
		arena = NewArena(0)
	}
	p, err := engine.NewParser(Tables(), arena, opts...)
	if err != nil {
		return nil, err
	}
	return &Parser{automaton: p, arena: arena}, nil
}

// Arena returns the arena of the parser.
func (sp *Parser) Arena() *Arena {
	return sp.arena
}

// Parse parses a command line. The command returned is owned by the caller, who
// should hand it back to the arena with Arena.Free.
//
// Errors are lr parser errors (see package lr). After an error, every node
// allocated during the call has already been released.
func (sp *Parser) Parse(line string) (*Command, error) {
	if sp.automaton.Status() == engine.Failed {
		if err := sp.automaton.Reset(); err != nil {
			return nil, err
		}
	}
	tokenizer, err := newTokenizer(line, sp.arena)
	if err != nil {
		return nil, err
	}
	root, err := sp.automaton.Parse(tokenizer)
	if err != nil {
		tracer().Infof("cannot parse %q: %v", line, err)
		return nil, err
	}
	cmd := root.(*Command)
	tracer().Debugf("parsed %q as %v", line, cmd)
	return cmd, nil
}

// Close releases the parser.
func (sp *Parser) Close() {
	sp.automaton.Destroy()
}

// Parse parses a single command line with a private arena.
func Parse(line string) (*Command, error) {
	p, err := NewParser(nil)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Parse(line)
}

// ParseAll parses a batch of command lines concurrently, allocating from arena.
// Commands are returned in the order of the input lines. If any line fails to
// parse, ParseAll returns the first error, annotated with the line number, and
// releases all commands it has already created.
func ParseAll(ctx context.Context, arena *Arena, lines []string, opts ...engine.Option) ([]*Command, error) {
	if arena == nil {
		arena = NewArena(0)
	}
	cmds := make([]*Command, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := NewParser(arena, opts...)
			if err != nil {
				return err
			}
			defer p.Close()
			cmd, err := p.Parse(line)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			cmds[i] = cmd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, cmd := range cmds {
			arena.Free(cmd)
		}
		return nil, err
	}
	return cmds, nil
}
