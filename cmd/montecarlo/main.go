package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"

	"fund-model-lab/internal/config"
	"fund-model-lab/internal/engine"
	"fund-model-lab/internal/harness"
	"fund-model-lab/internal/reporting"
)

func main() {
	inputPath := flag.String("input", "", "Path to YAML model file (required)")
	trials := flag.Int("trials", 1000, "Number of Monte Carlo trials")
	workers := flag.Int("workers", runtime.NumCPU(), "Worker pool size")
	seed := flag.Int64("seed", 1, "Base seed; trial i uses seed+i")
	outputJSON := flag.Bool("json", false, "Output summary as JSON instead of Markdown")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if *inputPath == "" {
		log.Fatal("--input is required")
	}

	inputs, err := config.Load(*inputPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load model inputs")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("shutdown signal received, abandoning remaining trials")
		cancel()
	}()

	pool := harness.NewPool(engine.New(engine.Options{}), *workers, log)

	batch, err := pool.RunBatch(ctx, inputs, *trials, *seed)
	if err != nil {
		log.WithError(err).Fatal("batch failed")
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch.Summary); err != nil {
			log.WithError(err).Fatal("failed to encode summary")
		}
		return
	}

	fmt.Print(reporting.RenderBatch(batch.Summary))
}
