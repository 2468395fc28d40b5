// SPDX-License-Identifier: EPL-2.0

// Package corpus reads the metadata of the clean speech and noise corpora and
// turns it into shuffled train, validation and test filename lists.
//
// Two providers exist:
//   - MCV, a Mozilla Common Voice release (train.tsv, test.tsv, clips/)
//   - UrbanSound8K (UrbanSound8K.csv, fold1 .. fold10)
//
// Every provider owns a *rand.Rand so a fixed seed reproduces the same
// lists. The validation split is always the last ValSize entries of the
// shuffled training list.
//
//	rng := corpus.NewRand(corpus.DefaultSeed)
//	mcv := corpus.NewMCV("/data/cv-corpus", 1000, rng)
//	train, val, err := mcv.TrainValFilenames()
package corpus
