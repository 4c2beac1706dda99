// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding.
//
// This package uses github.com/go-audio/wav to decode WAV files.
//
// # Supported Formats
//
//   - PCM 8, 16, 24 and 32-bit
//   - Mono and stereo (and higher channel counts)
//   - Any sample rate
//
// # Decoding WAV Files
//
// Use the Decoder to read WAV files:
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder returns an audio.Source that provides samples as float32
// values in the range [-1.0, 1.0]. SampleWidth reports the container's
// sample width in bytes (1, 2, 3 or 4), which the playback engine uses to
// pick the output device format (24-bit sources play through a 32-bit
// stream).
//
// 8-bit WAV stores unsigned samples on disk; the decoder recenters them
// around zero before normalizing.
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotWavFile: The input is not a valid WAV file
//   - ErrOnlyPCMSupported: Compressed WAV layouts are not supported
//   - ErrUnsupportedBitDepth: Bit depth outside 8/16/24/32
//
// # Performance
//
// Decoding requires an io.ReadSeeker; plain readers are buffered into
// memory first. The player decodes whole tracks up front, so streaming
// performance is not a concern on the playback path.
package wav
