package network

import (
	"strings"

	"github.com/pkg/errors"
)

// Topology defines how the nodes of a network are wired.
type Topology int

// Known topologies.
const (
	Linear Topology = iota // Output of the last node leaves the network.
	Ring                   // Output of the last node feeds the first.
)

// ParseTopology returns the topology with the given name.
func ParseTopology(name string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "chain", "":
		return Linear, nil
	case "ring", "feedback":
		return Ring, nil
	}
	return 0, errors.Errorf("unknown topology %q", name)
}

func (t Topology) String() string {
	switch t {
	case Linear:
		return "linear"
	case Ring:
		return "ring"
	}
	return "unknown"
}
