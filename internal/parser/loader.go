package parser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader lazily initialises a Parser. Concurrent callers share a single in-flight load.
// A successful load is kept for the Loader's lifetime; a failed load is retried on the
// next call.
type Loader struct {
	factory Factory
	group   singleflight.Group

	mu     sync.RWMutex
	parser Parser
}

// NewLoader returns a Loader that builds its Parser with factory.
func NewLoader(factory Factory) *Loader {
	return &Loader{factory: factory}
}

// ErrNilParser is returned when a Factory reports success without a Parser.
var ErrNilParser = errors.New("factory returned no parser")

// Get returns the cached Parser, loading it if needed. The shared load ignores ctx
// cancellation; a cancelled ctx only stops this caller from waiting.
func (l *Loader) Get(ctx context.Context) (Parser, error) {
	if p := l.cached(); p != nil {
		return p, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("parser", func() (any, error) {
		if p := l.cached(); p != nil {
			return p, nil
		}
		p, err := l.factory(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("load document parser: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("load document parser: %w", ErrNilParser)
		}
		l.mu.Lock()
		l.parser = p
		l.mu.Unlock()
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Parser), nil
	}
}

// Loaded reports whether a Parser is cached.
func (l *Loader) Loaded() bool {
	return l.cached() != nil
}

func (l *Loader) cached() Parser {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.parser
}
