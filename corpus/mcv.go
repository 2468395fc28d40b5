// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"math/rand/v2"
	"path/filepath"

	"github.com/labstack/gommon/log"
)

const (
	mcvTrainManifest = "train.tsv"
	mcvTestManifest  = "test.tsv"
	mcvClipsDir      = "clips"
	mcvPathColumn    = "path"
)

// MCV provides clean speech from a Mozilla Common Voice release laid out as
//
//	<base>/train.tsv
//	<base>/test.tsv
//	<base>/clips/<path>
type MCV struct {
	base    string
	valSize int
	rng     *rand.Rand
	logger  *log.Logger
}

var _ Provider = (*MCV)(nil)

// NewMCV returns a Common Voice provider rooted at base. rng drives every
// shuffle and must not be shared with concurrent users.
func NewMCV(base string, valSize int, rng *rand.Rand, opts ...Option) *MCV {
	o := newOptions(opts)

	return &MCV{
		base:    base,
		valSize: valSize,
		rng:     rng,
		logger:  o.logger,
	}
}

func (m *MCV) filenames(manifest string) ([]string, error) {
	t, err := readTable(filepath.Join(m.base, manifest), '\t')
	if err != nil {
		return nil, err
	}

	col, err := t.column(mcvPathColumn)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		name, err := t.field(row, col)
		if err != nil {
			return nil, err
		}
		files = append(files, filepath.Join(m.base, mcvClipsDir, name))
	}

	shuffle(m.rng, files)

	return files, nil
}

func (m *MCV) TrainValFilenames() (train, val []string, err error) {
	files, err := m.filenames(mcvTrainManifest)
	if err != nil {
		return nil, nil, err
	}

	train, val, err = Split(files, m.valSize)
	if err != nil {
		return nil, nil, err
	}

	m.logger.Infof("MCV train samples: %d | val samples: %d", len(train), len(val))

	return train, val, nil
}

func (m *MCV) TestFilenames() ([]string, error) {
	files, err := m.filenames(mcvTestManifest)
	if err != nil {
		return nil, err
	}

	m.logger.Infof("MCV test samples: %d", len(files))

	return files, nil
}
