// SPDX-License-Identifier: EPL-2.0

// Package config parses and validates the command line of the noisemix and
// reducevolume tools. Flags take their defaults from the environment where
// an environment variable is listed.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

// ErrConfiguration reports an invalid flag value or directory.
var ErrConfiguration = errors.New("invalid configuration")

// Generate configures dataset generation.
type Generate struct {
	MCVDir string
	U8KDir string
	OutDir string
	Ledger string // optional SQLite ledger file
	LogLvl log.Lvl
	Seed   uint64
	Rate   int
	Cores  int // 0 selects every CPU
	MCVVal int
	U8KVal int
}

const (
	defaultRate   = 16000
	defaultMCVVal = 1000
	defaultU8KVal = 200
	defaultSeed   = 42
	defaultLevel  = 15
)

// ParseGenerate reads the noisemix flags. Usage and parse errors are written
// to output. Environment defaults: NOISEMIX_SR, NOISEMIX_CORES,
// NOISEMIX_SEED, NOISEMIX_LOG_LEVEL.
func ParseGenerate(args []string, output io.Writer) (Generate, error) {
	fs := flag.NewFlagSet("noisemix", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Generate noised audio for noise reduction models training.")
		fmt.Fprintln(output, "Based on UrbanSound8K and Mozilla Common Voice datasets.")
		fmt.Fprintln(output)
		fs.PrintDefaults()
	}

	var (
		cfg   Generate
		level string
	)

	fs.StringVar(&cfg.MCVDir, "mcv", "", "Directory with MCV dataset")
	fs.StringVar(&cfg.U8KDir, "urban8k", "", "Directory with UrbanSound8K dataset")
	fs.StringVar(&cfg.OutDir, "out", "", "Directory for resulting files (must be empty)")
	fs.IntVar(&cfg.Rate, "sr", envInt("NOISEMIX_SR", defaultRate), "Sample rate")
	fs.IntVar(&cfg.Cores, "cores", envInt("NOISEMIX_CORES", 0), "Number of cores to be used when generating dataset (0 = all)")
	fs.IntVar(&cfg.MCVVal, "mcv_val_size", defaultMCVVal, "Number of samples in validation set for Mozilla Common Voice dataset")
	fs.IntVar(&cfg.U8KVal, "u8k_val_size", defaultU8KVal, "Number of samples in validation set for UrbanSound8K dataset")
	fs.Uint64Var(&cfg.Seed, "seed", envUint("NOISEMIX_SEED", defaultSeed), "Seed for shuffling and mixing")
	fs.StringVar(&cfg.Ledger, "ledger", "", "Optional SQLite file recording every rendered pair")
	fs.StringVar(&level, "log_level", envStr("NOISEMIX_LOG_LEVEL", "info"), "Log level: debug, info, warn, error or off")

	if err := fs.Parse(args); err != nil {
		return Generate{}, err
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return Generate{}, err
	}
	cfg.LogLvl = lvl

	return cfg, nil
}

// Validate checks that the input directories exist, that the output
// directory exists and is empty, and that the numbers are in range.
func (g Generate) Validate() error {
	if !isDir(g.MCVDir) {
		return fmt.Errorf("%w: path to MCV doesn't exist or isn't a directory", ErrConfiguration)
	}
	if !isDir(g.U8KDir) {
		return fmt.Errorf("%w: path to UrbanSound8K doesn't exist or isn't a directory", ErrConfiguration)
	}
	if !isDir(g.OutDir) || !isEmpty(g.OutDir) {
		return fmt.Errorf("%w: out directory doesn't exist or isn't a directory or isn't empty", ErrConfiguration)
	}
	if g.Rate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrConfiguration, g.Rate)
	}
	if g.Cores < 0 {
		return fmt.Errorf("%w: cores must not be negative, got %d", ErrConfiguration, g.Cores)
	}
	if g.MCVVal < 0 || g.U8KVal < 0 {
		return fmt.Errorf("%w: validation sizes must not be negative", ErrConfiguration)
	}

	return nil
}

// Reduce configures volume reduction.
type Reduce struct {
	InDir string
	Level int // dB
}

// ParseReduce reads the reducevolume flags.
func ParseReduce(args []string, output io.Writer) (Reduce, error) {
	fs := flag.NewFlagSet("reducevolume", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(output, "Reduce volume for all WAV files contained in directory.")
		fmt.Fprintln(output)
		fs.PrintDefaults()
	}

	var cfg Reduce
	fs.StringVar(&cfg.InDir, "in_dir", "", "Input directory")
	fs.IntVar(&cfg.Level, "reduce_level", defaultLevel, "Reduction level in dB")

	if err := fs.Parse(args); err != nil {
		return Reduce{}, err
	}

	return cfg, nil
}

func (r Reduce) Validate() error {
	if !isDir(r.InDir) {
		return fmt.Errorf("%w: input directory does not exist or is not a directory", ErrConfiguration)
	}
	if r.Level <= 0 {
		return fmt.Errorf("%w: reduction level must be positive number", ErrConfiguration)
	}

	return nil
}

// ParseLevel maps a level name to a gommon log level.
func ParseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrConfiguration, s)
	}
}

func isDir(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isEmpty(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	return errors.Is(err, io.EOF)
}
