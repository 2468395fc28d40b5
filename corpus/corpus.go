// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/labstack/gommon/log"
)

// Provider turns a corpus's on-disk metadata into disjoint filename lists.
type Provider interface {
	// TrainValFilenames returns the shuffled training rows with the last
	// validation-size entries split off.
	TrainValFilenames() (train, val []string, err error)
	// TestFilenames returns the shuffled held-out rows.
	TestFilenames() ([]string, error)
}

// DefaultSeed seeds the corpus and mixing generators when none is configured.
const DefaultSeed uint64 = 42

// NewRand returns the deterministic generator used for shuffling and mixing.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Split keeps the last valSize entries of files as validation and the rest
// as training. valSize must be in [0, len(files)).
func Split(files []string, valSize int) (train, val []string, err error) {
	if valSize < 0 {
		return nil, nil, fmt.Errorf("%w: validation size %d is negative", ErrConfiguration, valSize)
	}
	if valSize >= len(files) {
		return nil, nil, fmt.Errorf("%w: validation size %d leaves no training data out of %d rows",
			ErrConfiguration, valSize, len(files))
	}

	cut := len(files) - valSize

	return slices.Clone(files[:cut]), slices.Clone(files[cut:]), nil
}

func shuffle(rng *rand.Rand, files []string) {
	rng.Shuffle(len(files), func(i, j int) {
		files[i], files[j] = files[j], files[i]
	})
}

type options struct {
	logger   *log.Logger
	testFold int
	classIDs []int
}

// Option configures a provider.
type Option func(*options)

// WithLogger sets the logger that receives sample counts.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTestFold picks the UrbanSound8K fold held out for testing (default 10).
func WithTestFold(fold int) Option {
	return func(o *options) {
		o.testFold = fold
	}
}

// WithClassIDs restricts UrbanSound8K rows to the given classes, in that
// order. By default every class found in the metadata is used.
func WithClassIDs(ids ...int) Option {
	return func(o *options) {
		o.classIDs = slices.Clone(ids)
	}
}

func newOptions(opts []Option) options {
	o := options{testFold: DefaultTestFold}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New("corpus")
	}

	return o
}
