// SPDX-License-Identifier: EPL-2.0

// Package audio provides the core audio types shared by the player.
//
// This package contains the building blocks the rest of the module is
// assembled from:
//   - Source interface for decoded audio input
//   - Decoder interface and extension-keyed Registry
//   - Track, a whole file decoded to memory
//   - DownmixMono for channel mixing
//
// # Source Interface
//
// The Source interface is the foundation of audio decoding:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    SampleWidth() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All format decoders implement this interface. Samples are normalized
// float32 in [-1.0, 1.0]; SampleWidth reports the container's sample width
// in bytes so playback can open the output device at a matching format.
//
// # Format Registry
//
// The registry resolves decoders by file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register(".wav", wav.Decoder{})
//	decoder, ok := registry.DecoderFor("song.wav")
//
// Registry.Extensions also defines which directory entries the playlist
// treats as playable.
//
// # Tracks
//
// LoadTrack decodes an entire file into memory before playback starts:
//
//	track, err := audio.LoadTrack("song.mp3", registry)
//
// The resulting sample buffer is immutable and read lock-free by the output
// callback. Track samples are kept in the integer scale of the sample width
// (a full-scale 16-bit sample is ±32768) so the pcm codec can write them
// back to the device without rescaling; see package pcm.
//
// # Channel Mixing
//
// DownmixMono converts interleaved multi-channel frames to mono by
// averaging. It does not allocate, which makes it safe to call from the
// output callback when producing the spectrum analyzer's input.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. LoadTrack wraps
// decoder errors and defines sentinels for the non-decoder failures:
// ErrUnknownFormat, ErrNoChannels, ErrEmptyTrack.
package audio
