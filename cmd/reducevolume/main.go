// SPDX-License-Identifier: EPL-2.0

// Command reducevolume lowers the level of every WAV file below a directory,
// rewriting each file in place as 16-bit PCM:
//
//	reducevolume --in_dir /data/noisy --reduce_level 15
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/labstack/gommon/log"

	"github.com/ik5/noisemix/internal/config"
	"github.com/ik5/noisemix/volume"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseReduce(args, stderr)
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

	logger := log.New("reducevolume")
	logger.SetOutput(stderr)
	logger.SetHeader("${time_rfc3339} ${level} ${prefix}")

	report, err := volume.Reduce(cfg.InDir, cfg.Level,
		volume.WithLogger(logger),
		volume.WithProgress(stdout),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "Reduced %s files by %d dB (%s written), %s failed\n",
		humanize.Comma(int64(report.Processed)), cfg.Level,
		humanize.Bytes(uint64(report.Bytes)), humanize.Comma(int64(report.Failed)))

	return 0
}
