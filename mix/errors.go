// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

// ErrDegenerateInput is returned when the chosen noise segment carries no
// energy, so no gain can match it to the clean signal.
var ErrDegenerateInput = errors.New("noise segment has zero energy")
