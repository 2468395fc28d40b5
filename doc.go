// SPDX-License-Identifier: EPL-2.0

// Package noisemix builds training data for speech noise reduction models by
// mixing clean speech with background noise.
//
// Clean clips come from a Mozilla Common Voice release and noise clips from
// UrbanSound8K. Every clean clip gets one randomly chosen noise clip added at
// equal energy (0 dB SNR) and is written as a 16-bit mono WAV into a train,
// val or test directory.
//
// # Packages
//
//   - audio: streaming Source/Decoder contracts, decoder registry, mono
//     downmix, resampling and whole-file loading
//   - formats, formats/wav, formats/mp3, formats/vorbis, formats/aiff:
//     decoders by file extension and the WAV writer
//   - corpus: metadata readers producing shuffled train/val/test lists
//   - mix: noise tiling, segment selection and energy matching
//   - dataset: the worker pool that renders one split
//   - ledger: optional SQLite record of every rendered pair
//   - volume: in-place attenuation of a WAV tree
//
// # Commands
//
//	noisemix --mcv <dir> --urban8k <dir> --out <empty dir> [--sr 16000] [--cores N]
//	reducevolume --in_dir <dir> [--reduce_level 15]
//
// # Pipeline
//
//	rng := corpus.NewRand(corpus.DefaultSeed)
//	clean, _, _ := corpus.NewMCV(mcvDir, 1000, rng).TrainValFilenames()
//	noise, _, _ := corpus.NewUrbanSound8K(u8kDir, 200, rng).TrainValFilenames()
//
//	report, err := dataset.New(filepath.Join(out, "train"), 16000).Create(clean, noise)
//
// Runs are reproducible: a fixed seed yields the same lists, the same noise
// choices and byte-identical output whatever the number of workers.
package noisemix
