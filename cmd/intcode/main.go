package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/logs"
)

func main() {
	config := parseArgs()

	cpu.MemoryLimit = config.MemLimit

	opt := logs.Options{Level: logs.ParseLevel(config.LogLevel), Stderr: os.Stderr, Journal: config.Journal}
	if config.TraceFile != "" {
		fd, err := os.Create(config.TraceFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer fd.Close()
		opt.Trace = fd
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logs.New(opt)
	slog.SetDefault(log)

	err := NewApp(config, log).Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
