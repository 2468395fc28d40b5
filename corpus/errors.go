// SPDX-License-Identifier: EPL-2.0

package corpus

import "errors"

var (
	// ErrConfiguration reports a validation size the manifest cannot satisfy.
	ErrConfiguration = errors.New("invalid corpus configuration")

	// ErrMalformedManifest reports a manifest missing a column or holding a bad value.
	ErrMalformedManifest = errors.New("malformed manifest")
)
