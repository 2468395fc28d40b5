// SPDX-License-Identifier: EPL-2.0

package ledger

import "errors"

var ErrClosed = errors.New("ledger is closed")
