// SPDX-License-Identifier: EPL-2.0

package dataset

import "errors"

// ErrNoNoise is returned when clean files are given without any noise file
// to mix into them.
var ErrNoNoise = errors.New("no noise files to mix")
