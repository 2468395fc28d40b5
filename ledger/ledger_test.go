// SPDX-License-Identifier: EPL-2.0

package ledger

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func openTemp(t *testing.T) *Ledger {
	t.Helper()

	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })

	return l
}

func TestLedger_RecordAndEntries(t *testing.T) {
	t.Parallel()

	l := openTemp(t)

	want := []Entry{
		{Split: "train", Clean: "/c/a.mp3", Noise: "/n/x.wav", Output: "/o/train/a.wav", Offset: 12, Gain: 0.75, Status: StatusRendered},
		{Split: "train", Clean: "/c/b.mp3", Status: StatusSkipped, Reason: "decode failed"},
		{Split: "val", Clean: "/c/c.mp3", Noise: "/n/y.wav", Output: "/o/val/c.wav", Status: StatusRendered},
	}
	for _, e := range want {
		if err := l.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := l.Entries("train")
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Entries(train) returned %d entries, want 2", len(got))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLedger_Count(t *testing.T) {
	t.Parallel()

	l := openTemp(t)

	for i := range 5 {
		status := StatusRendered
		if i%2 == 1 {
			status = StatusSkipped
		}
		if err := l.Record(Entry{Split: "test", Clean: fmt.Sprintf("%d.mp3", i), Status: status}); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		split  string
		status Status
		want   int
	}{
		{"test", StatusRendered, 3},
		{"test", StatusSkipped, 2},
		{"train", StatusRendered, 0},
	}

	for _, tt := range tests {
		got, err := l.Count(tt.split, tt.status)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("Count(%s, %s) = %d, want %d", tt.split, tt.status, got, tt.want)
		}
	}
}

func TestLedger_ConcurrentRecord(t *testing.T) {
	t.Parallel()

	l := openTemp(t)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 25 {
				if err := l.Record(Entry{Split: "train", Clean: fmt.Sprintf("%d-%d", w, i), Status: StatusRendered}); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()

	n, err := l.Count("train", StatusRendered)
	if err != nil {
		t.Fatal(err)
	}
	if n != 100 {
		t.Errorf("Count() = %d, want 100", n)
	}
}

func TestLedger_RunsAreSeparate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.db")

	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Record(Entry{Split: "train", Clean: "a", Status: StatusRendered}); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if second.RunID() == first.RunID() {
		t.Error("two runs share a run id")
	}

	n, err := second.Count("train", StatusRendered)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("new run sees %d entries from the previous run", n)
	}
}

func TestLedger_RecordAfterClose(t *testing.T) {
	t.Parallel()

	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	if err := l.Record(Entry{Split: "train", Clean: "a"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Record() error = %v, want ErrClosed", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestLedger_ReadAfterClose(t *testing.T) {
	t.Parallel()

	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Record(Entry{Split: "train", Clean: "a", Status: StatusRendered}); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := l.Count("train", StatusRendered); !errors.Is(err, ErrClosed) {
		t.Errorf("Count() error = %v, want ErrClosed", err)
	}
	if _, err := l.Entries("train"); !errors.Is(err, ErrClosed) {
		t.Errorf("Entries() error = %v, want ErrClosed", err)
	}
}
