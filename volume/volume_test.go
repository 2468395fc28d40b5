// SPDX-License-Identifier: EPL-2.0

package volume

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/gommon/log"

	"github.com/ik5/noisemix/formats/wav"
	"github.com/ik5/noisemix/internal/audiotest"
)

func quietLogger() *log.Logger {
	l := log.New("volume-test")
	l.SetOutput(io.Discard)
	return l
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestReduce_Attenuates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.wav")
	audiotest.WriteWAV(t, path, 8000, constant(100, 0.5))

	report, err := Reduce(dir, 6, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if report.Processed != 1 || report.Failed != 0 {
		t.Errorf("Reduce() = %+v, want 1 processed", report)
	}

	rate, channels, samples, err := decode(path)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 8000 || channels != 1 || len(samples) != 100 {
		t.Fatalf("decoded %d Hz/%d ch/%d samples, want 8000/1/100", rate, channels, len(samples))
	}

	want := 0.5 * math.Pow(10, -6.0/20)
	for i, s := range samples {
		if math.Abs(s-want) > 1e-3 {
			t.Fatalf("sample[%d] = %v, want ~%v", i, s, want)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if report.Bytes != info.Size() {
		t.Errorf("Bytes = %d, want %d", report.Bytes, info.Size())
	}
}

func TestReduce_KeepsPermissions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.wav")
	audiotest.WriteWAV(t, path, 8000, constant(100, 0.5))
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Reduce(dir, 6, WithLogger(quietLogger())); err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("mode = %o, want 644", perm)
	}
}

func TestReduce_KeepsChannels(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "stereo.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.Write(f, 22050, 2, []float64{0.8, -0.8, 0.4, -0.4}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := Reduce(dir, 20, WithLogger(quietLogger())); err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}

	rate, channels, samples, err := decode(path)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 22050 || channels != 2 {
		t.Errorf("format = %d Hz/%d ch, want 22050/2", rate, channels)
	}

	want := []float64{0.08, -0.08, 0.04, -0.04}
	for i := range want {
		if math.Abs(samples[i]-want[i]) > 1e-3 {
			t.Errorf("sample[%d] = %v, want ~%v", i, samples[i], want[i])
		}
	}
}

func TestReduce_WalksTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	audiotest.WriteWAV(t, filepath.Join(dir, "train", "a.wav"), 8000, constant(10, 0.1))
	audiotest.WriteWAV(t, filepath.Join(dir, "val", "deep", "b.wav"), 8000, constant(10, 0.1))
	audiotest.WriteFile(t, filepath.Join(dir, "test", "broken.wav"), "RIFF but not really")
	audiotest.WriteFile(t, filepath.Join(dir, "notes.txt"), "leave me alone")

	report, err := Reduce(dir, 3, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if report.Processed != 2 || report.Failed != 1 {
		t.Errorf("Reduce() = %+v, want 2 processed / 1 failed", report)
	}

	data, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	if err != nil || string(data) != "leave me alone" {
		t.Errorf("non-WAV file was touched: %q, %v", data, err)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "*", ".reduce-*"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestReduce_Configuration(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.wav")
	audiotest.WriteWAV(t, file, 8000, constant(4, 0.1))

	tests := []struct {
		name  string
		dir   string
		level int
	}{
		{name: "zero level", dir: t.TempDir(), level: 0},
		{name: "negative level", dir: t.TempDir(), level: -5},
		{name: "missing directory", dir: filepath.Join(t.TempDir(), "nope"), level: 15},
		{name: "file instead of directory", dir: file, level: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Reduce(tt.dir, tt.level, WithLogger(quietLogger())); !errors.Is(err, ErrConfiguration) {
				t.Errorf("Reduce() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestReduce_EmptyDirectory(t *testing.T) {
	t.Parallel()

	report, err := Reduce(t.TempDir(), 15, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if report != (Report{}) {
		t.Errorf("Reduce() = %+v, want empty report", report)
	}
}
