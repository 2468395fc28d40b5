// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/noisemix/formats/wav"
)

// Sine returns n samples of a sine at freq Hz with the given amplitude.
func Sine(n, sampleRate int, freq, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// WriteWAV writes a mono 16-bit WAV, creating parent directories.
func WriteWAV(t testing.TB, path string, sampleRate int, samples []float64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := wav.WriteFile(path, sampleRate, samples); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}

// WriteFile writes content, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// MCVLayout writes train.tsv and test.tsv under base. Clip names are used
// as the path column; when clipLen > 0 a WAV clip of that many samples is
// written to clips/ for each row.
func MCVLayout(t testing.TB, base string, train, test []string, sampleRate, clipLen int) {
	t.Helper()

	writeTSV := func(name string, clips []string) {
		var b strings.Builder
		b.WriteString("client_id\tpath\tsentence\tup_votes\tdown_votes\n")
		for i, clip := range clips {
			fmt.Fprintf(&b, "c%d\t%s\tsentence number %d\t2\t0\n", i, clip, i)
		}
		WriteFile(t, filepath.Join(base, name), b.String())
	}

	writeTSV("train.tsv", train)
	writeTSV("test.tsv", test)

	if clipLen <= 0 {
		return
	}
	for i, clip := range append(append([]string{}, train...), test...) {
		WriteWAV(t, filepath.Join(base, "clips", clip), sampleRate, Sine(clipLen, sampleRate, 220+float64(i)*10, 0.5))
	}
}

// U8KRow is one line of UrbanSound8K.csv.
type U8KRow struct {
	File    string
	Fold    int
	ClassID int
}

// U8KLayout writes UrbanSound8K.csv under base and, when clipLen > 0, a WAV
// noise clip for each row in fold<N>/.
func U8KLayout(t testing.TB, base string, rows []U8KRow, sampleRate, clipLen int) {
	t.Helper()

	var b strings.Builder
	b.WriteString("slice_file_name,fsID,start,end,salience,fold,classID,class\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "%s,%d,0.0,4.0,1,%d,%d,class_%d\n", r.File, 1000+i, r.Fold, r.ClassID, r.ClassID)
	}
	WriteFile(t, filepath.Join(base, "UrbanSound8K.csv"), b.String())

	if clipLen <= 0 {
		return
	}
	for i, r := range rows {
		path := filepath.Join(base, fmt.Sprintf("fold%d", r.Fold), r.File)
		WriteWAV(t, path, sampleRate, Sine(clipLen, sampleRate, 1000+float64(i)*50, 0.3))
	}
}
