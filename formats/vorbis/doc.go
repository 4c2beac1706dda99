// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// # Supported Formats
//
// The decoder supports:
//   - Ogg Vorbis (.ogg files)
//   - Variable bitrates
//   - Mono and stereo
//   - Various sample rates
//
// # Decoding Vorbis Files
//
// Use the Decoder to read Ogg Vorbis files:
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples as float32 in range [-1.0, 1.0]
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder returns an audio.Source that provides samples as float32
// values normalized to the range [-1.0, 1.0]. Vorbis is a floating point
// codec with no native integer width; the source reports a sample width
// of 2 so downstream consumers treat it like 16-bit PCM.
//
// # Channel Layout
//
// For stereo files, samples are interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// # Limitations
//
// Note:
//   - Vorbis encoding is not supported (decoding only)
//   - Reading is frame-based (decode entire frames)
package vorbis
