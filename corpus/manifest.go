// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// table is a parsed manifest with a header row.
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readTable(path string, comma rune) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: empty file", ErrMalformedManifest, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedManifest, path, err)
	}

	t := &table{path: path, columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.columns[name] = i
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedManifest, path, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

func (t *table) column(name string) (int, error) {
	i, ok := t.columns[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s: missing column %q", ErrMalformedManifest, t.path, name)
	}
	return i, nil
}

func (t *table) field(row []string, col int) (string, error) {
	if col >= len(row) {
		return "", fmt.Errorf("%w: %s: short row %v", ErrMalformedManifest, t.path, row)
	}
	return strings.TrimSpace(row[col]), nil
}

func (t *table) intField(row []string, col int) (int, error) {
	s, err := t.field(row, col)
	if err != nil {
		return 0, err
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrMalformedManifest, t.path, s)
	}
	return v, nil
}
