/*
los computes the line-of-sight visibility of a sequence of terrain
altitudes from its first point (the observer), in parallel across a
configurable number of worker goroutines standing in for spec.md's worker
ranks. It reads altitudes from a file or stdin, runs the partition/angle/
scan/verdict phases of the core, and writes a CSV "_"/"v"/"u" line to
stdout. An optional live progress view can be served over a websocket for
watching the scan phases complete in real time; it is off by default and
never required for correctness.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/xstupi00/line-of-sight/internal/config"
	"github.com/xstupi00/line-of-sight/internal/emit"
	"github.com/xstupi00/line-of-sight/internal/orchestrator"
	"github.com/xstupi00/line-of-sight/internal/terrain"
	"github.com/xstupi00/line-of-sight/server"
)

var (
	inputPath  = flag.String("input", "", "path to a file of whitespace-separated altitudes (default: stdin)")
	configPath = flag.String("config", "", "optional YAML config file (workers, viewAddr, regimeBoundaryOverride)")
	nworkers   = flag.Int("nworkers", runtime.NumCPU(), "number of worker goroutines (ranks)")
	viewAddr   = flag.String("view", "", "if set, serve a live scan-progress view at this address, e.g. :8080")
	dbg        = flag.Bool("debug", false, "debug logging")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.FromYAML(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	workers := cfg.WorkersOrDefault(*nworkers)
	addr := *viewAddr
	if addr == "" {
		addr = cfg.ViewAddr
	}

	in := os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return fmt.Errorf("los: %w", err)
		}
		defer f.Close()
		in = f
	}

	h, err := terrain.Load(in)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var progress chan orchestrator.Snapshot
	if addr != "" {
		progress = make(chan orchestrator.Snapshot, 8)
		srv := server.New(addr, progress)
		go func() {
			if err := srv.Serve(ctx); err != nil {
				log.Println("view server:", err)
			}
		}()
		if *dbg {
			log.Printf("live progress view at http://%s\n", addr)
		}
	}

	if *dbg {
		log.Printf("running with %d workers over %d altitudes\n", workers, len(h))
	}

	result, err := orchestrator.Run(ctx, h, workers, progress)
	if err != nil {
		return fmt.Errorf("los: %w", err)
	}

	return emit.CSV(os.Stdout, result.R)
}
