package engine

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"

	"github.com/Lailouezzz/microparser/lr"
	"github.com/Lailouezzz/microparser/lr/stack"
)

// Status is the state of a parser after a call to Feed.
type Status int8

const (
	NeedMoreInput Status = iota // waiting for the next token
	Accepted                    // input accepted, root value handed out
	Failed                      // parse failed, stack has been destroyed
)

func (s Status) String() string {
	switch s {
	case NeedMoreInput:
		return "need-more-input"
	case Accepted:
		return "accepted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int8(s))
}

// Option configures a parser.
type Option func(p *Parser)

// InitialCapacity sets the initial number of stack slots.
func InitialCapacity(n int) Option {
	return func(p *Parser) {
		p.capacity = n
	}
}

// MaxDepth limits the height of the parse stack. Exceeding it is an
// lr.AllocationFailure.
func MaxDepth(n int) Option {
	return func(p *Parser) {
		p.stackOpts = append(p.stackOpts, stack.MaxDepth(n))
	}
}

// Allocator sets the allocator for the parse stack's storage.
func Allocator(a stack.Allocator) Option {
	return func(p *Parser) {
		p.stackOpts = append(p.stackOpts, stack.WithAllocator(a))
	}
}

// Parser is an incremental LR parser. Create and initialize one with NewParser.
type Parser struct {
	tables    *lr.Tables
	stack     *stack.Stack
	uctx      interface{}
	status    Status
	capacity  int
	stackOpts []stack.Option
}

// NewParser creates a parser for a set of tables. The tables are borrowed and
// must outlive the parser. uctx is passed unmodified to every reduce and free
// callback.
//
// NewParser pushes the axiom onto a fresh parse stack. If the stack cannot be
// allocated, an lr.AllocationFailure is returned and there is nothing to destroy.
func NewParser(tables *lr.Tables, uctx interface{}, opts ...Option) (*Parser, error) {
	if tables == nil || tables.Actions == nil || tables.Gotos == nil {
		return nil, lr.Errorf(lr.InternalError, "parser tables missing")
	}
	p := &Parser{
		tables:   tables,
		uctx:     uctx,
		capacity: stack.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.init(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) init() error {
	s, err := stack.New(p.capacity, p.tables.TokenFree, p.uctx, p.stackOpts...)
	if err != nil {
		return err
	}
	if err = s.Push(lr.Axiom()); err != nil {
		s.Destroy()
		return err
	}
	p.stack = s
	p.status = NeedMoreInput
	return nil
}

// Status returns the status of the parser after the latest call to Feed.
func (p *Parser) Status() Status {
	return p.status
}

// Depth returns the current height of the parse stack, including the axiom.
func (p *Parser) Depth() int {
	return p.stack.Len()
}

// UserContext returns the user context passed to NewParser.
func (p *Parser) UserContext() interface{} {
	return p.uctx
}

// Feed consumes one input token. It performs reductions until the token is either
// shifted (NeedMoreInput), accepted (Accepted) or rejected.
//
// On acceptance, the value of the start production is returned and ownership of
// it passes to the caller. The token which triggered acceptance is not consumed.
//
// On error the parser destroys its stack with every value still owned by it, and
// changes to state Failed. Callers need not call Destroy afterwards. Errors are of
// type *lr.Error; use errors.Is with an lr.ErrorKind to classify them.
func (p *Parser) Feed(tok lr.Token) (Status, interface{}, error) {
	if p.status == Failed || p.stack.IsDestroyed() {
		return Failed, nil, lr.Errorf(lr.InternalError, "parser has been torn down, reset it before feeding input")
	}
	p.status = NeedMoreInput
	for { // reductions do not consume tok, loop until it is shifted or accepted
		state, err := p.stack.CurrentState()
		if err != nil {
			return p.fail(err)
		}
		action, err := p.tables.Action(state, tok.Symbol)
		if err != nil {
			if e, ok := err.(*lr.Error); ok {
				e.Token = &tok
			}
			return p.fail(err)
		}
		tracer().Debugf("action(%d,%s)=%v", state, p.tables.SymbolName(tok.Symbol), action)
		switch action.Type {
		case lr.ShiftAction:
			if err = p.stack.Push(lr.Shifted(tok, action.State())); err != nil {
				return p.fail(err)
			}
			tracer().Debugf("shifted %v, next state = %d", tok, action.State())
			return NeedMoreInput, nil, nil
		case lr.ReduceAction:
			if err = p.reduce(action.Production()); err != nil {
				return p.fail(err)
			}
		case lr.AcceptAction:
			return p.accept()
		default:
			return p.fail(&lr.Error{
				Kind:     lr.SyntaxError,
				State:    state,
				Token:    &tok,
				Msg:      "unexpected " + p.tables.SymbolName(tok.Symbol),
				Expected: p.tables.Expected(state),
			})
		}
	}
}

// reduce performs a reduce action for a production
//
//    LHS --> X1 ... Xn
//
// Symbols X1 to Xn are represented on the stack as slots
//
//    [TOS]  Sn(Xn) ... S1(X1)  ...
//
// The slots are handed to the production's reduce callback and are dropped
// afterwards without destruction. The resulting value is pushed in a derived slot,
// together with the production's free callback.
func (p *Parser) reduce(id lr.ProdID) error {
	prod, err := p.tables.Production(id)
	if err != nil {
		return err
	}
	if prod.Arity < 0 || prod.Arity >= p.stack.Len() { // the axiom must survive
		state, _ := p.stack.CurrentState()
		return &lr.Error{
			Kind:       lr.InternalError,
			State:      state,
			Production: id,
			Msg: fmt.Sprintf("cannot reduce %v of arity %d on stack of height %d",
				prod, prod.Arity, p.stack.Len()),
		}
	}
	handle, err := p.stack.Top(prod.Arity)
	if err != nil {
		return err
	}
	tracer().Debugf("reduce %v", prod)
	var value interface{}
	var cbErr error
	if prod.Reduce != nil {
		value, cbErr = prod.Reduce(handle, p.uctx)
	}
	if err = p.stack.PopN(prod.Arity); err != nil {
		release(prod, value, p.uctx)
		return err
	}
	if prod.Reduce != nil && (cbErr != nil || value == nil) {
		release(prod, value, p.uctx)
		state, _ := p.stack.CurrentState()
		return &lr.Error{
			Kind:       lr.ProductionError,
			State:      state,
			Production: id,
			Msg:        fmt.Sprintf("%v did not produce a value", prod),
			Err:        cbErr,
		}
	}
	state, _ := p.stack.CurrentState()
	next, err := p.tables.Goto(state, id)
	if err != nil {
		release(prod, value, p.uctx)
		return err
	}
	free := prod.Free
	if value == nil {
		free = nil
	}
	if err = p.stack.Push(lr.Derived(value, id, free, next)); err != nil {
		release(prod, value, p.uctx)
		return err
	}
	tracer().Debugf("reduced to next state = %d", next)
	return nil
}

// release destroys a value produced by a reduction which did not make it onto the stack.
func release(prod lr.Production, value interface{}, uctx interface{}) {
	if value != nil && prod.Free != nil {
		prod.Free(value, uctx)
	}
}

// accept hands out the value of the start production. The stack has to consist
// of exactly the axiom and the derived root.
func (p *Parser) accept() (Status, interface{}, error) {
	top, err := p.stack.Peek()
	if err != nil {
		return p.fail(err)
	}
	if p.stack.Len() != 2 || top.Kind != lr.DerivedSlot {
		return p.fail(&lr.Error{
			Kind:  lr.InternalError,
			State: top.State,
			Msg:   fmt.Sprintf("accepting with stack of height %d, top is %v", p.stack.Len(), top.Kind),
		})
	}
	if _, err = p.stack.Pop(); err != nil {
		return p.fail(err)
	}
	tracer().Debugf("accepted input, result is %T", top.Value)
	p.status = Accepted
	return Accepted, top.Value, nil
}

// fail tears down the stack and switches to state Failed.
func (p *Parser) fail(err error) (Status, interface{}, error) {
	tracer().Errorf("parser failed: %v", err)
	p.stack.Destroy()
	p.status = Failed
	if lr.KindOf(err) == lr.InternalError && gconf.GetBool("panic-on-internal-error") {
		panic(`LR parser detected inconsistent tables.

Configuration flag panic-on-internal-error is set to true. It is aimed at helping
to debug parser tables. If you did not expect this to panic, please unset
panic-on-internal-error to its default (false).

` + err.Error())
	}
	return Failed, nil, err
}

// Reset destroys everything still owned by the parser and re-initializes it for a
// new input. Reset is the only way to continue with a failed parser.
func (p *Parser) Reset() error {
	p.stack.Destroy()
	if err := p.init(); err != nil {
		p.status = Failed
		return err
	}
	return nil
}

// Destroy tears down the parse stack, destroying all values still owned by it.
// It is safe to call Destroy in any state, and more than once.
func (p *Parser) Destroy() {
	p.stack.Destroy()
	p.status = Failed
}
