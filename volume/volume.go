// SPDX-License-Identifier: EPL-2.0

package volume

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/log"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/formats/wav"
	"github.com/ik5/noisemix/utils"
)

const wavExt = ".wav"

// Report summarizes a Reduce call.
type Report struct {
	Processed int
	Failed    int
	// Bytes is the total size of the rewritten files.
	Bytes int64
}

type options struct {
	logger   *log.Logger
	progress io.Writer
}

// Option configures Reduce.
type Option func(*options)

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithProgress draws a progress bar on w. A nil writer disables it.
func WithProgress(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// Reduce lowers the level of every .wav file under dir by levelDB decibels,
// rewriting each file in place as 16-bit PCM with its sample rate and
// channel count unchanged. Files that fail are logged and counted; Reduce
// keeps going.
func Reduce(dir string, levelDB int, opts ...Option) (Report, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New("volume")
	}

	if levelDB <= 0 {
		return Report{}, fmt.Errorf("%w: reduction level must be a positive number, got %d", ErrConfiguration, levelDB)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Report{}, fmt.Errorf("%w: %s does not exist or is not a directory", ErrConfiguration, dir)
	}

	files, err := collect(dir)
	if err != nil {
		return Report{}, err
	}

	p := mpb.New(mpb.WithOutput(o.progress), mpb.WithWidth(64))
	bar := p.AddBar(int64(len(files)),
		mpb.PrependDecorators(
			decor.Name("reducing: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	gain := utils.DecibelsToGain(-float64(levelDB))

	var report Report
	for _, path := range files {
		n, err := reduceFile(path, gain)
		if err != nil {
			o.logger.Errorf("%s: %v", path, err)
			report.Failed++
		} else {
			report.Processed++
			report.Bytes += n
		}
		bar.Increment()
	}

	bar.SetTotal(-1, true)
	p.Wait()

	return report, nil
}

// collect lists the .wav files under dir in lexical order.
func collect(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == wavExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return files, nil
}

// reduceFile rewrites path scaled by gain and returns the new file size.
func reduceFile(path string, gain float64) (int64, error) {
	orig, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	rate, channels, samples, err := decode(path)
	if err != nil {
		return 0, err
	}

	for i := range samples {
		samples[i] *= gain
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".reduce-*"+wavExt)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	if err := wav.Write(tmp, rate, channels, samples); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, err
	}

	// CreateTemp makes the file 0600; keep the mode of the file it replaces.
	if err := tmp.Chmod(orig.Mode().Perm()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("%w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("%w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("%w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	return info.Size(), nil
}

// decode reads a whole WAV file keeping its channel layout.
func decode(path string) (rate, channels int, samples []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	defer src.Close()

	chunk := make([]float32, 4096*src.Channels())
	for {
		n, err := src.ReadSamples(chunk)
		for _, v := range chunk[:n] {
			samples = append(samples, float64(v))
		}

		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return 0, 0, nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
	}

	return src.SampleRate(), src.Channels(), samples, nil
}
