package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"fund-model-lab/internal/config"
	"fund-model-lab/internal/engine"
	"fund-model-lab/internal/reporting"
	"fund-model-lab/internal/verification"
)

func main() {
	inputPath := flag.String("input", "", "Path to YAML model file (required)")
	outputJSON := flag.Bool("json", false, "Output full result as JSON instead of Markdown")
	verify := flag.Bool("verify", false, "Re-run and verify the determinism contract")
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

	eng := engine.New(engine.Options{})

	result, err := eng.Run(inputs)
	if err != nil {
		log.WithError(err).Fatal("simulation failed")
	}
	log.WithFields(logrus.Fields{
		"periods": len(result.Periods),
		"tvpi":    result.Final.TVPI.String(),
		"dpi":     result.Final.DPI.String(),
	}).Info("simulation complete")

	if *verify {
		report, err := verification.VerifyDeterminism(eng, inputs)
		if err != nil {
			log.WithError(err).Fatal("verification failed to run")
		}
		if !report.Match {
			for _, d := range report.Divergences {
				log.WithFields(logrus.Fields{
					"field":    d.Field,
					"expected": fmt.Sprint(d.Expected),
					"actual":   fmt.Sprint(d.Actual),
				}).Error("determinism divergence")
			}
			log.Fatalf("determinism check failed: %d divergent fields", len(report.Divergences))
		}
		log.Info("determinism check passed")
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.WithError(err).Fatal("failed to encode result")
		}
		return
	}

	fmt.Print(reporting.RenderRun(result))
}
