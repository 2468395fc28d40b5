// SPDX-License-Identifier: EPL-2.0

// Command noisemix generates a noisy speech dataset for training noise
// reduction models. Clean speech comes from Mozilla Common Voice and
// background noise from UrbanSound8K:
//
//	noisemix --mcv /data/cv-corpus/en --urban8k /data/UrbanSound8K --out /data/noisy
//
// The output directory must exist and be empty. It receives train, val and
// test subdirectories of 16-bit mono WAV files named after the clean clips.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/labstack/gommon/log"

	"github.com/ik5/noisemix/corpus"
	"github.com/ik5/noisemix/dataset"
	"github.com/ik5/noisemix/formats"
	"github.com/ik5/noisemix/internal/config"
	"github.com/ik5/noisemix/ledger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type split struct {
	name  string
	clean []string
	noise []string
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseGenerate(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := log.New("noisemix")
	logger.SetOutput(stderr)
	logger.SetLevel(cfg.LogLvl)
	logger.SetHeader("${time_rfc3339} ${level} ${prefix}")

	rng := corpus.NewRand(cfg.Seed)

	fmt.Fprintln(stdout, "Getting MCV train, val and test filenames...")
	mcv := corpus.NewMCV(cfg.MCVDir, cfg.MCVVal, rng, corpus.WithLogger(logger))
	mcvTrain, mcvVal, err := mcv.TrainValFilenames()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	mcvTest, err := mcv.TestFilenames()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, "Getting U8K train, val and test filenames...")
	u8k := corpus.NewUrbanSound8K(cfg.U8KDir, cfg.U8KVal, rng, corpus.WithLogger(logger))
	u8kTrain, u8kVal, err := u8k.TrainValFilenames()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	u8kTest, err := u8k.TestFilenames()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var recorder dataset.Recorder
	if cfg.Ledger != "" {
		l, err := ledger.Open(cfg.Ledger)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer l.Close()

		logger.Infof("recording pairs to %s (run %s)", cfg.Ledger, l.RunID())
		recorder = l
	}

	reg := formats.NewRegistry()
	splits := []split{
		{name: "train", clean: mcvTrain, noise: u8kTrain},
		{name: "val", clean: mcvVal, noise: u8kVal},
		{name: "test", clean: mcvTest, noise: u8kTest},
	}

	for _, s := range splits {
		fmt.Fprintf(stdout, "Applying noise to %s data...\n", s.name)

		opts := []dataset.Option{
			dataset.WithCores(cfg.Cores),
			dataset.WithSeed(rng.Uint64()),
			dataset.WithRegistry(reg),
			dataset.WithLogger(logger),
			dataset.WithSplit(s.name),
			dataset.WithProgress(stdout),
		}
		if recorder != nil {
			opts = append(opts, dataset.WithRecorder(recorder))
		}

		ds := dataset.New(filepath.Join(cfg.OutDir, s.name), cfg.Rate, opts...)
		report, err := ds.Create(s.clean, s.noise)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		fmt.Fprintf(stdout, "%s: %s rendered, %s skipped\n",
			s.name, humanize.Comma(int64(report.Rendered)), humanize.Comma(int64(report.Skipped)))
	}

	fmt.Fprintln(stdout, "DONE")

	return 0
}
