// Package network wires several CPUs together so that the output of one
// becomes the input of the next, either as a linear chain or as a
// feedback ring.
package network

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/arch"
	"github.com/hexaflex/intcode/cpu"
)

// Known network errors.
var (
	ErrDeadlock = errors.New("network deadlock")
	ErrNoOutput = errors.New("network produced no output")
	ErrEmpty    = errors.New("network has no nodes")
)

// Network defines a set of CPUs running the same program, connected
// queue to queue.
type Network struct {
	topology Topology
	nodes    []*cpu.CPU
	links    []*cpu.Queue // links[i] is the input of nodes[i].
	sink     *cpu.Queue   // Output of the final node.
	seeded   int          // Values pushed onto sink by the network itself.
}

// New creates one node per setting. Each node's input is seeded with its
// setting before anything else flows through the network.
func New(program arch.Program, topology Topology, settings []int64, trace cpu.TraceFunc) *Network {
	n := &Network{topology: topology}

	for _, v := range settings {
		n.links = append(n.links, cpu.NewQueue(v))
	}

	if len(n.links) == 0 {
		return n
	}

	if topology == Ring {
		n.sink = n.links[0]
	} else {
		n.sink = cpu.NewQueue()
	}

	for i := range n.links {
		out := n.sink
		if i < len(n.links)-1 {
			out = n.links[i+1]
		}

		node := cpu.New(program, trace)
		node.Link(n.links[i], out)
		n.nodes = append(n.nodes, node)
	}

	return n
}

// Topology returns the network's wiring.
func (n *Network) Topology() Topology {
	return n.topology
}

// Nodes returns the network's CPUs in wiring order.
func (n *Network) Nodes() []*cpu.CPU {
	return n.nodes
}

// Reserve appends size zero-valued cells to the memory of every node.
func (n *Network) Reserve(size int) error {
	for i, node := range n.nodes {
		if err := node.Reserve(size); err != nil {
			return errors.Wrapf(err, "node %d", i)
		}
	}
	return nil
}

// Run feeds signal into the first node and steps the nodes round-robin,
// each until it suspends, halts or faults, until every node has stopped.
// It returns the last value emitted by the final node.
//
// A node that halts closes its output. In a ring, a node starving on the
// closed output of its halted predecessor stops without error, so the
// ring winds down once any node halts. In a chain, starvation is a fault.
// A full round in which no node makes progress yields ErrDeadlock.
func (n *Network) Run(ctx context.Context, signal int64) (int64, error) {
	if len(n.nodes) == 0 {
		return 0, ErrEmpty
	}

	n.start(signal)

	stopped := make([]bool, len(n.nodes))
	remaining := len(n.nodes)

	for remaining > 0 {
		progress := false

		for i, node := range n.nodes {
			if stopped[i] {
				continue
			}

			cycles := node.Cycles()
			err := node.RunContext(ctx)
			if node.Cycles() != cycles {
				progress = true
			}

			done, err := n.settle(i, err)
			if err != nil {
				return 0, err
			}

			if done {
				stopped[i] = true
				remaining--
				progress = true
			}
		}

		if !progress && remaining > 0 {
			return 0, ErrDeadlock
		}
	}

	return n.result()
}

// start queues the initial signal.
func (n *Network) start(signal int64) {
	n.links[0].Push(signal)

	// The caller is the only producer for the head of a chain.
	if n.topology == Linear {
		n.links[0].Close()
	}

	// In a ring, sink is the head's input and already holds the
	// setting and the signal.
	n.seeded = n.sink.Count()
}

// settle interprets the outcome of running node i. It returns true if
// the node has stopped for good.
func (n *Network) settle(i int, err error) (bool, error) {
	node := n.nodes[i]

	switch {
	case err == nil:
		slog.Debug("node halted", "node", i, "cycles", node.Cycles())
		node.Output().Close()
		return true, nil

	case err == cpu.ErrWaitInput:
		return false, nil

	case n.topology == Ring && errors.Is(err, cpu.ErrInputStarvation):
		slog.Debug("node stopped", "node", i, "cycles", node.Cycles())
		node.Output().Close()
		return true, nil
	}

	node.Output().Close()
	return true, errors.Wrapf(err, "node %d", i)
}

// result returns the last value emitted by the final node.
func (n *Network) result() (int64, error) {
	if n.sink.Count() == n.seeded {
		return 0, ErrNoOutput
	}

	v, _ := n.sink.Last()
	return v, nil
}
