// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/labstack/gommon/log"
)

// DefaultTestFold is the UrbanSound8K fold held out for testing.
const DefaultTestFold = 10

const u8kMetadata = "UrbanSound8K.csv"

type u8kRow struct {
	file    string
	fold    int
	classID int
}

// UrbanSound8K provides noise clips from the UrbanSound8K corpus laid out as
//
//	<base>/UrbanSound8K.csv
//	<base>/fold<N>/<slice_file_name>
//
// Rows are grouped by class before shuffling. The metadata file is read once
// and cached.
type UrbanSound8K struct {
	base     string
	valSize  int
	testFold int
	classIDs []int
	rng      *rand.Rand
	logger   *log.Logger

	rows []u8kRow
}

var _ Provider = (*UrbanSound8K)(nil)

// NewUrbanSound8K returns an UrbanSound8K provider rooted at base.
func NewUrbanSound8K(base string, valSize int, rng *rand.Rand, opts ...Option) *UrbanSound8K {
	o := newOptions(opts)

	return &UrbanSound8K{
		base:     base,
		valSize:  valSize,
		testFold: o.testFold,
		classIDs: o.classIDs,
		rng:      rng,
		logger:   o.logger,
	}
}

func (u *UrbanSound8K) metadata() ([]u8kRow, error) {
	if u.rows != nil {
		return u.rows, nil
	}

	t, err := readTable(filepath.Join(u.base, u8kMetadata), ',')
	if err != nil {
		return nil, err
	}

	fileCol, err := t.column("slice_file_name")
	if err != nil {
		return nil, err
	}
	foldCol, err := t.column("fold")
	if err != nil {
		return nil, err
	}
	classCol, err := t.column("classID")
	if err != nil {
		return nil, err
	}

	rows := make([]u8kRow, 0, len(t.rows))
	for _, rec := range t.rows {
		var r u8kRow

		if r.file, err = t.field(rec, fileCol); err != nil {
			return nil, err
		}
		if r.fold, err = t.intField(rec, foldCol); err != nil {
			return nil, err
		}
		if r.classID, err = t.intField(rec, classCol); err != nil {
			return nil, err
		}

		rows = append(rows, r)
	}

	if len(u.classIDs) == 0 {
		for _, r := range rows {
			u.classIDs = append(u.classIDs, r.classID)
		}
		slices.Sort(u.classIDs)
		u.classIDs = slices.Compact(u.classIDs)
	}

	u.rows = rows

	return rows, nil
}

// filenames lists the rows passing keep, class by class, in metadata order
// within each class.
func (u *UrbanSound8K) filenames(keep func(u8kRow) bool) ([]string, error) {
	rows, err := u.metadata()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, id := range u.classIDs {
		for _, r := range rows {
			if r.classID != id || !keep(r) {
				continue
			}
			files = append(files, filepath.Join(u.base, "fold"+strconv.Itoa(r.fold), r.file))
		}
	}

	shuffle(u.rng, files)

	return files, nil
}

func (u *UrbanSound8K) TrainValFilenames() (train, val []string, err error) {
	files, err := u.filenames(func(r u8kRow) bool { return r.fold != u.testFold })
	if err != nil {
		return nil, nil, err
	}

	train, val, err = Split(files, u.valSize)
	if err != nil {
		return nil, nil, fmt.Errorf("urbansound8k: %w", err)
	}

	u.logger.Infof("UrbanSound8K train samples: %d | val samples: %d", len(train), len(val))

	return train, val, nil
}

func (u *UrbanSound8K) TestFilenames() ([]string, error) {
	files, err := u.filenames(func(r u8kRow) bool { return r.fold == u.testFold })
	if err != nil {
		return nil, err
	}

	u.logger.Infof("UrbanSound8K test samples: %d", len(files))

	return files, nil
}
