// SPDX-License-Identifier: EPL-2.0

// Package spectrum computes frequency bins for a visualizer from the mono
// mix of the samples being played.
//
// # Pipeline
//
// Each chunk of mono samples goes through, in order:
//
//  1. Real FFT (gonum.org/v1/gonum/dsp/fourier) and magnitudes of the
//     first half of the coefficients.
//  2. Reduction to a fixed number of display bins by nearest-index
//     sampling.
//  3. Adaptive normalization with instant attack and exponential release,
//     so the display stays full at any playback volume.
//  4. Temporal smoothing against the previous frame.
//  5. Bass boost on the low bins and a whole-frame accent when the low
//     bins are loud enough to read as a beat. The boosts are applied as
//     is, so published bins are non-negative but may exceed 1.
//
// The result is published into a Buffer that readers snapshot under a
// mutex, so a frame is always seen whole.
//
// # Concurrency
//
// The Analyzer runs on its own goroutine. Push is non-blocking and
// allocation free, which makes it safe to call from an audio output
// callback; when analysis falls behind, chunks are dropped instead of
// stalling the caller.
//
// # Silence
//
// Below the noise floor the bins are zeroed rather than normalized, so
// silence never gets amplified into a full-scale display.
package spectrum
