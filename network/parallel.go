package network

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hexaflex/intcode/cpu"
)

// RunParallel is like Run, but gives every node its own goroutine.
// A suspended node blocks until its input queue receives a value.
// The first fault cancels the remaining nodes and is returned.
func (n *Network) RunParallel(ctx context.Context, signal int64) (int64, error) {
	if len(n.nodes) == 0 {
		return 0, ErrEmpty
	}

	n.start(signal)

	g, ctx := errgroup.WithContext(ctx)
	m := newMonitor(n.links)

	for i := range n.nodes {
		i := i
		g.Go(func() error {
			defer m.exit(i)
			return n.drive(ctx, m, i)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return n.result()
}

// drive runs node i until it stops.
func (n *Network) drive(ctx context.Context, m *monitor, i int) error {
	node := n.nodes[i]

	for {
		err := node.RunContext(ctx)
		if err != cpu.ErrWaitInput {
			_, err = n.settle(i, err)
			return err
		}

		if err := m.wait(ctx, i); err != nil {
			return err
		}
	}
}

// monitor detects a network in which every running node waits on an
// empty input queue.
type monitor struct {
	m       sync.Mutex
	links   []*cpu.Queue
	running []bool
	active  int // Number of running nodes.
	waiting int // Number of nodes blocked in wait.
}

func newMonitor(links []*cpu.Queue) *monitor {
	running := make([]bool, len(links))
	for i := range running {
		running[i] = true
	}

	return &monitor{
		links:   links,
		running: running,
		active:  len(links),
	}
}

// wait blocks until node i's input queue holds a value.
// Returns ErrDeadlock if no other node is able to supply one.
func (m *monitor) wait(ctx context.Context, i int) error {
	m.m.Lock()
	m.waiting++
	if m.stalled() {
		m.waiting--
		m.m.Unlock()
		return ErrDeadlock
	}
	m.m.Unlock()

	err := m.links[i].Wait(ctx)

	m.m.Lock()
	m.waiting--
	m.m.Unlock()
	return err
}

// exit marks node i as stopped.
func (m *monitor) exit(i int) {
	m.m.Lock()
	m.running[i] = false
	m.active--
	m.m.Unlock()
}

// stalled returns true if every running node is waiting and none of
// them has input pending. The caller must hold the lock.
func (m *monitor) stalled() bool {
	if m.waiting < m.active {
		return false
	}

	for i, q := range m.links {
		if m.running[i] && (q.Len() > 0 || q.Closed()) {
			return false
		}
	}
	return true
}
