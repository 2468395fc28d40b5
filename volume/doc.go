// SPDX-License-Identifier: EPL-2.0

// Package volume attenuates every WAV file below a directory in place.
//
// Each file is decoded (any integer PCM bit depth), scaled by the requested
// number of decibels and written back as 16-bit PCM, so the call also
// normalizes the encoding of a mixed-format tree.
package volume
