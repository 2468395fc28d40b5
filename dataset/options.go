// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"io"
	"runtime"

	"github.com/labstack/gommon/log"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/ledger"
)

// Recorder receives one entry per clean file handled by Create. It must be
// safe for concurrent use.
type Recorder interface {
	Record(ledger.Entry) error
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithCores sets the number of workers. Values below 1 select
// runtime.NumCPU().
func WithCores(n int) Option {
	return func(d *Dataset) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		d.cores = n
	}
}

// WithSeed seeds noise selection and mixing offsets.
func WithSeed(seed uint64) Option {
	return func(d *Dataset) {
		d.seed = seed
	}
}

// WithRegistry sets the decoders used to load clean and noise files.
func WithRegistry(reg *audio.Registry) Option {
	return func(d *Dataset) {
		d.reg = reg
	}
}

func WithLogger(l *log.Logger) Option {
	return func(d *Dataset) {
		d.logger = l
	}
}

// WithRecorder records every rendered and skipped pair.
func WithRecorder(r Recorder) Option {
	return func(d *Dataset) {
		d.recorder = r
	}
}

// WithProgress draws a progress bar on w. A nil writer disables it.
func WithProgress(w io.Writer) Option {
	return func(d *Dataset) {
		d.progress = w
	}
}

// WithSplit names the split in log lines and ledger entries. It defaults to
// the base name of the output directory.
func WithSplit(name string) Option {
	return func(d *Dataset) {
		d.split = name
	}
}
