package render

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrRenderTargetMissing is returned when a document to capture was never
// mounted, was unmounted, or could not be measured.
var ErrRenderTargetMissing = errors.New("render target missing")

// Surface holds mounted documents by id. Mounting lays a document out in the
// background; WaitSettled is the readiness point consumers block on before
// reading the layout.
type Surface struct {
	mu    sync.Mutex
	nodes map[string]*node
}

type node struct {
	settled chan struct{}
	layout  *Layout
	err     error
}

// NewSurface returns an empty surface
func NewSurface() *Surface {
	return &Surface{nodes: make(map[string]*node)}
}

// Mount lays doc out under id, replacing anything already mounted there
func (s *Surface) Mount(id string, doc Document) {
	n := &node{settled: make(chan struct{})}

	s.mu.Lock()
	s.nodes[id] = n
	s.mu.Unlock()

	go func() {
		n.layout, n.err = LayoutDocument(doc)
		close(n.settled)
	}()
}

// Unmount removes the document mounted under id
func (s *Surface) Unmount(id string) {
	s.mu.Lock()
	delete(s.nodes, id)
	s.mu.Unlock()
}

// WaitSettled blocks until the document under id has been laid out
func (s *Surface) WaitSettled(ctx context.Context, id string) (*Layout, error) {
	s.mu.Lock()
	n, ok := s.nodes[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRenderTargetMissing, id)
	}

	select {
	case <-n.settled:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if n.err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderTargetMissing, id, n.err)
	}
	return n.layout, nil
}
