// SPDX-License-Identifier: EPL-2.0

// Package ledger keeps a SQLite record of the clean/noise pairs rendered by
// a dataset run: which noise clip was mixed into each clean clip, at which
// offset and gain, and which pairs were skipped and why.
//
// The database uses the pure Go modernc.org/sqlite driver, so no cgo
// toolchain is needed.
//
//	l, err := ledger.Open("pairs.db")
//	if err != nil {
//		return err
//	}
//	defer l.Close()
//
//	err = l.Record(ledger.Entry{Split: "train", Clean: clean, Status: ledger.StatusRendered})
package ledger
