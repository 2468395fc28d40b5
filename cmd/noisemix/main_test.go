// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/noisemix/internal/audiotest"
	"github.com/ik5/noisemix/ledger"
)

const rate = 16000

type layout struct {
	mcv, u8k, out string
}

func newLayout(t *testing.T) layout {
	t.Helper()

	root := t.TempDir()
	l := layout{
		mcv: filepath.Join(root, "mcv"),
		u8k: filepath.Join(root, "u8k"),
		out: filepath.Join(root, "out"),
	}

	audiotest.MCVLayout(t, l.mcv,
		[]string{"tr1.wav", "tr2.wav", "tr3.wav"},
		[]string{"te1.wav", "te2.wav"},
		rate, 800)
	audiotest.U8KLayout(t, l.u8k, []audiotest.U8KRow{
		{File: "1-0-0-0.wav", Fold: 1, ClassID: 0},
		{File: "2-3-0-0.wav", Fold: 2, ClassID: 3},
		{File: "3-3-0-0.wav", Fold: 3, ClassID: 3},
		{File: "10-0-0-0.wav", Fold: 10, ClassID: 0},
	}, rate, 300)

	if err := os.Mkdir(l.out, 0o755); err != nil {
		t.Fatal(err)
	}

	return l
}

func (l layout) args(extra ...string) []string {
	return append([]string{
		"--mcv", l.mcv,
		"--urban8k", l.u8k,
		"--out", l.out,
		"--mcv_val_size", "1",
		"--u8k_val_size", "1",
		"--cores", "2",
		"--log_level", "off",
	}, extra...)
}

func countWAV(t *testing.T, dir string) int {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if err != nil {
		t.Fatal(err)
	}
	return len(matches)
}

func TestRun_GeneratesSplits(t *testing.T) {
	t.Parallel()

	l := newLayout(t)
	db := filepath.Join(t.TempDir(), "pairs.db")

	var stdout, stderr bytes.Buffer
	if code := run(l.args("--ledger", db), &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	if !strings.Contains(stdout.String(), "DONE") {
		t.Errorf("stdout does not end with DONE:\n%s", stdout.String())
	}
	for _, line := range []string{
		"Getting MCV train, val and test filenames...",
		"Applying noise to train data...",
		"Applying noise to val data...",
		"Applying noise to test data...",
	} {
		if !strings.Contains(stdout.String(), line) {
			t.Errorf("stdout is missing %q", line)
		}
	}

	want := map[string]int{"train": 2, "val": 1, "test": 2}
	for split, n := range want {
		if got := countWAV(t, filepath.Join(l.out, split)); got != n {
			t.Errorf("%s has %d files, want %d", split, got, n)
		}
	}

	if _, err := os.Stat(db); err != nil {
		t.Errorf("ledger file not created: %v", err)
	}
}

func TestRun_LedgerRecordsPairs(t *testing.T) {
	t.Parallel()

	l := newLayout(t)
	path := filepath.Join(t.TempDir(), "pairs.db")

	var stdout, stderr bytes.Buffer
	if code := run(l.args("--ledger", path), &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT split, COUNT(*) FROM pairs WHERE status = ? GROUP BY split`, string(ledger.StatusRendered))
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	got := make(map[string]int)
	for rows.Next() {
		var (
			split string
			n     int
		)
		if err := rows.Scan(&split, &n); err != nil {
			t.Fatal(err)
		}
		got[split] = n
	}

	want := map[string]int{"train": 2, "val": 1, "test": 2}
	for split, n := range want {
		if got[split] != n {
			t.Errorf("ledger has %d rendered %s pairs, want %d", got[split], split, n)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	first, second := newLayout(t), newLayout(t)
	second.mcv, second.u8k = first.mcv, first.u8k

	for _, l := range []layout{first, second} {
		var stdout, stderr bytes.Buffer
		if code := run(l.args("--seed", "99"), &stdout, &stderr); code != 0 {
			t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
		}
	}

	for _, split := range []string{"train", "val", "test"} {
		files, _ := filepath.Glob(filepath.Join(first.out, split, "*.wav"))
		for _, f := range files {
			a, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}
			b, err := os.ReadFile(filepath.Join(second.out, split, filepath.Base(f)))
			if err != nil {
				t.Fatalf("second run is missing %s/%s", split, filepath.Base(f))
			}
			if !bytes.Equal(a, b) {
				t.Errorf("%s/%s differs between runs with the same seed", split, filepath.Base(f))
			}
		}
	}
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args func(t *testing.T, l layout) []string
		want string
	}{
		{
			name: "missing mcv",
			args: func(t *testing.T, l layout) []string {
				return []string{"--urban8k", l.u8k, "--out", l.out}
			},
			want: "MCV",
		},
		{
			name: "missing urban8k",
			args: func(t *testing.T, l layout) []string {
				return []string{"--mcv", l.mcv, "--urban8k", filepath.Join(l.u8k, "nope"), "--out", l.out}
			},
			want: "UrbanSound8K",
		},
		{
			name: "out not empty",
			args: func(t *testing.T, l layout) []string {
				audiotest.WriteFile(t, filepath.Join(l.out, "old.wav"), "x")
				return l.args()
			},
			want: "out directory",
		},
		{
			name: "val size too large",
			args: func(t *testing.T, l layout) []string {
				return l.args("--mcv_val_size", "3")
			},
			want: "validation size",
		},
		{
			name: "bad sample rate",
			args: func(t *testing.T, l layout) []string {
				return l.args("--sr", "0")
			},
			want: "sample rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := newLayout(t)

			var stdout, stderr bytes.Buffer
			if code := run(tt.args(t, l), &stdout, &stderr); code != 1 {
				t.Errorf("run() = %d, want 1", code)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("stderr = %q, want it to mention %q", stderr.String(), tt.want)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, &stdout, &stderr); code != 0 {
		t.Errorf("run(-h) = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "-mcv_val_size") {
		t.Errorf("usage does not list flags:\n%s", stderr.String())
	}
}
