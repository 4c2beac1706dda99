// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - AIFF (Audio Interchange File Format)
//   - PCM 8, 16, 24 and 32-bit
//   - Mono and multi-channel
//   - Any sample rate
//
// # Decoding AIFF Files
//
// Use the Decoder to read AIFF files:
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("audio.aif")
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
// values normalized to the range [-1.0, 1.0]. The source's SampleWidth
// reports the file's native bytes per sample, so callers can restore the
// original integer scale when re-encoding.
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Originated on Apple platforms (WAV on Windows)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//   - Both are uncompressed PCM formats
//
// The decoder handles all format differences automatically.
//
// # Limitations
//
// Note:
//   - AIFF writing is not supported (decoding only)
//   - Compressed AIFF-C variants are not supported
package aiff
