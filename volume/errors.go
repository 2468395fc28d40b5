// SPDX-License-Identifier: EPL-2.0

package volume

import "errors"

// ErrConfiguration reports a non-positive reduction level or an input path
// that is not a directory.
var ErrConfiguration = errors.New("invalid volume reduction configuration")
