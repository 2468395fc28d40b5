// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/labstack/gommon/log"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/corpus"
	"github.com/ik5/noisemix/formats"
	"github.com/ik5/noisemix/formats/wav"
	"github.com/ik5/noisemix/ledger"
	"github.com/ik5/noisemix/mix"
)

// Report summarizes a Create call.
type Report struct {
	Rendered int
	Skipped  int
}

// Total is the number of clean files handled.
func (r Report) Total() int { return r.Rendered + r.Skipped }

// Dataset renders noisy copies of clean clips into one output directory.
type Dataset struct {
	outDir     string
	sampleRate int
	cores      int
	seed       uint64
	split      string

	reg      *audio.Registry
	logger   *log.Logger
	recorder Recorder
	progress io.Writer
}

// New returns a Dataset writing sampleRate Hz mono WAV files to outDir.
func New(outDir string, sampleRate int, opts ...Option) *Dataset {
	d := &Dataset{
		outDir:     outDir,
		sampleRate: sampleRate,
		cores:      runtime.NumCPU(),
		seed:       corpus.DefaultSeed,
		split:      filepath.Base(outDir),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.reg == nil {
		d.reg = formats.NewRegistry()
	}
	if d.logger == nil {
		d.logger = log.New("dataset")
	}

	return d
}

// message is what travels on the work queue: a workItem to render or a
// sentinel telling one worker to stop.
type message interface {
	isMessage()
}

type workItem struct {
	clean     string
	noisePath string
	noise     audio.Buffer
	seed      uint64
}

type sentinel struct{}

func (workItem) isMessage() {}
func (sentinel) isMessage() {}

type counters struct {
	rendered atomic.Int64
	skipped  atomic.Int64
}

// Create mixes a randomly chosen noise file into every clean file and writes
// the result to <outDir>/<clean stem>.wav.
//
// Noise files are decoded by the caller's goroutine and handed to the
// workers over a queue holding at most one item per worker. Files that cannot
// be decoded, mixed or written are logged and counted as skipped. Create
// returns once every worker has exited.
func (d *Dataset) Create(clean, noise []string) (Report, error) {
	if len(clean) > 0 && len(noise) == 0 {
		return Report{}, ErrNoNoise
	}

	if err := os.MkdirAll(d.outDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("creating %s: %w", d.outDir, err)
	}

	p := mpb.New(mpb.WithOutput(d.progress), mpb.WithWidth(64))
	bar := p.AddBar(int64(len(clean)),
		mpb.PrependDecorators(
			decor.Name(d.split+": "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.AverageETA(decor.ET_STYLE_GO),
		),
	)

	var (
		cnt   counters
		wg    sync.WaitGroup
		queue = make(chan message, d.cores)
	)

	for range d.cores {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.work(queue, &cnt, bar)
		}()
	}

	rng := corpus.NewRand(d.seed)
	for _, path := range clean {
		noisePath := noise[rng.IntN(len(noise))]
		seed := rng.Uint64()

		buf, err := audio.Load(d.reg, noisePath, d.sampleRate, true)
		if err != nil {
			d.skip(&cnt, bar, ledger.Entry{Clean: path, Noise: noisePath}, err)
			continue
		}

		queue <- workItem{clean: path, noisePath: noisePath, noise: buf, seed: seed}
	}

	for range d.cores {
		queue <- sentinel{}
	}

	wg.Wait()

	// A bar with a zero total never completes on its own.
	bar.SetTotal(-1, true)
	p.Wait()

	report := Report{
		Rendered: int(cnt.rendered.Load()),
		Skipped:  int(cnt.skipped.Load()),
	}
	d.logger.Infof("%s: rendered %d, skipped %d", d.split, report.Rendered, report.Skipped)

	return report, nil
}

func (d *Dataset) work(queue <-chan message, cnt *counters, bar *mpb.Bar) {
	for msg := range queue {
		item, ok := msg.(workItem)
		if !ok {
			return
		}

		entry, err := d.render(item)
		if err != nil {
			d.skip(cnt, bar, entry, err)
			continue
		}

		cnt.rendered.Add(1)
		d.record(entry)
		bar.Increment()
	}
}

func (d *Dataset) render(item workItem) (ledger.Entry, error) {
	entry := ledger.Entry{Clean: item.clean, Noise: item.noisePath}

	clean, err := audio.Load(d.reg, item.clean, d.sampleRate, true)
	if err != nil {
		return entry, err
	}

	res, err := mix.Mix(rand.New(rand.NewPCG(item.seed, item.seed)), clean, item.noise)
	if err != nil {
		return entry, fmt.Errorf("%s: %w", item.clean, err)
	}
	entry.Offset = res.Offset
	entry.Gain = res.Gain

	out := filepath.Join(d.outDir, stem(item.clean)+".wav")
	if err := wav.WriteFile(out, d.sampleRate, res.Samples); err != nil {
		return entry, fmt.Errorf("writing %s: %w", out, err)
	}
	entry.Output = out

	return entry, nil
}

func (d *Dataset) skip(cnt *counters, bar *mpb.Bar, entry ledger.Entry, err error) {
	d.logger.Warnf("%s: skipping %s: %v", d.split, entry.Clean, err)

	cnt.skipped.Add(1)
	entry.Status = ledger.StatusSkipped
	entry.Reason = err.Error()
	d.record(entry)
	bar.Increment()
}

func (d *Dataset) record(entry ledger.Entry) {
	if d.recorder == nil {
		return
	}

	entry.Split = d.split
	if entry.Status == "" {
		entry.Status = ledger.StatusRendered
	}

	if err := d.recorder.Record(entry); err != nil {
		d.logger.Errorf("%s: %v", d.split, err)
	}
}

// stem is the base name of path without its extension. A leading dot
// belongs to the name, so ".wav" has no extension.
func stem(path string) string {
	base := filepath.Base(path)

	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return base
	}

	return base[:i]
}
