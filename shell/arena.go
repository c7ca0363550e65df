package shell

import (
	"errors"
	"fmt"
	"sync"
)

// ErrArenaExhausted is returned if an arena's node limit has been reached.
var ErrArenaExhausted = errors.New("arena exhausted")

// Arena allocates the nodes of command ASTs and keeps track of the nodes alive.
// Arenas may be shared between parsers running in different goroutines.
type Arena struct {
	mx      sync.Mutex
	live    map[interface{}]struct{}
	limit   int // max number of live nodes, 0 for unlimited
	allocs  int
	invalid int // releases of nodes not alive
}

// NewArena creates an arena for at most limit live nodes. A limit of 0 means
// no limit.
func NewArena(limit int) *Arena {
	return &Arena{
		live:  make(map[interface{}]struct{}),
		limit: limit,
	}
}

func (a *Arena) alloc(node interface{}) error {
	a.mx.Lock()
	defer a.mx.Unlock()
	if a.limit > 0 && len(a.live) >= a.limit {
		return fmt.Errorf("cannot allocate %T: %w", node, ErrArenaExhausted)
	}
	a.live[node] = struct{}{}
	a.allocs++
	return nil
}

func (a *Arena) release(node interface{}) {
	a.mx.Lock()
	defer a.mx.Unlock()
	if _, ok := a.live[node]; !ok {
		tracer().Errorf("release of %T which is not alive", node)
		a.invalid++
		return
	}
	delete(a.live, node)
}

// Live returns the number of nodes currently alive.
func (a *Arena) Live() int {
	a.mx.Lock()
	defer a.mx.Unlock()
	return len(a.live)
}

// Allocated returns the number of nodes allocated over the lifetime of the arena.
func (a *Arena) Allocated() int {
	a.mx.Lock()
	defer a.mx.Unlock()
	return a.allocs
}

// InvalidReleases counts attempts to release nodes which were not alive, i.e.
// double frees.
func (a *Arena) InvalidReleases() int {
	a.mx.Lock()
	defer a.mx.Unlock()
	return a.invalid
}

// Free hands back a command returned by a parser.
func (a *Arena) Free(cmd *Command) {
	if cmd != nil {
		a.release(cmd)
	}
}

func (a *Arena) releaseArgs(l *argList) {
	for _, w := range l.words {
		a.release(w)
	}
	a.release(l)
}

func (a *Arena) releaseIOList(l *ioList) {
	for _, io := range l.items {
		a.release(io)
	}
	a.release(l)
}
