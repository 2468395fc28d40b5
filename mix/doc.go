// SPDX-License-Identifier: EPL-2.0

// Package mix overlays background noise on clean speech.
//
// The noise is tiled until it is longer than the speech, a segment of the
// speech's length is picked at a random offset, and that segment is scaled
// to carry the same energy as the speech before being added:
//
//	rng := rand.New(rand.NewPCG(42, 0))
//	noisy, err := mix.AddNoise(rng, clean, noise)
//	if errors.Is(err, mix.ErrDegenerateInput) {
//		// silent noise segment, skip the pair
//	}
package mix
