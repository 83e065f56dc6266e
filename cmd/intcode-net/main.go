package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/image"
	"github.com/hexaflex/intcode/logs"
	"github.com/hexaflex/intcode/network"
)

func main() {
	config := parseArgs()

	cpu.MemoryLimit = config.MemLimit

	slog.SetDefault(logs.New(logs.Options{
		Level:   logs.ParseLevel(config.LogLevel),
		Stderr:  os.Stderr,
		Journal: config.Journal,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run builds the network described by c and writes its result to w.
func run(ctx context.Context, c *Config, w io.Writer) error {
	topology, err := network.ParseTopology(c.Topology)
	if err != nil {
		return err
	}

	prog, err := image.Load(c.Program)
	if err != nil {
		return err
	}

	if c.Search {
		if c.Reserve > 0 {
			prog = append(prog, make([]int64, c.Reserve)...)
		}

		best, order, err := network.Search(ctx, prog, topology, c.Phases, c.Signal)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(w, "%d %v\n", best, order)
		return err
	}

	n := network.New(prog, topology, c.Phases, nil)
	if err := n.Reserve(c.Reserve); err != nil {
		return err
	}

	slog.Debug("network", "topology", n.Topology(), "nodes", len(n.Nodes()), "parallel", c.Parallel)

	var result int64
	if c.Parallel {
		result, err = n.RunParallel(ctx, c.Signal)
	} else {
		result, err = n.Run(ctx, c.Signal)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, result)
	return err
}
