// SPDX-License-Identifier: EPL-2.0

// Package dataset renders a noisy speech dataset split.
//
// For every clean clip one noise clip is drawn at random, both are decoded
// at the target sample rate, the noise is mixed in at equal energy (see
// package mix) and the result is written as a 16-bit mono WAV named after
// the clean clip.
//
// Work is spread over a fixed number of workers fed through a bounded queue,
// so at most one decoded noise clip per worker waits in memory. All random
// choices are made before an item is queued, which keeps the output
// identical for a given seed whatever the worker count.
//
//	ds := dataset.New("/out/train", 16000, dataset.WithCores(4))
//	report, err := ds.Create(cleanFiles, noiseFiles)
package dataset
