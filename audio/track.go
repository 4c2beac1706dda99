// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/flexplay/pcm"
)

// Track holds a fully decoded audio file. All fields are immutable after
// LoadTrack returns; the playback callback reads Samples without locking.
//
// Samples are interleaved float32 in the integer scale of SampleWidth (see
// package pcm), frame-major: Samples[f*Channels+c].
type Track struct {
	Path        string
	Channels    int
	SampleRate  int
	SampleWidth int
	Frames      int
	Duration    float64 // seconds
	Samples     []float32
}

// LoadTrack opens path, resolves a decoder from the registry by extension,
// and decodes the entire file into memory. The whole track is decoded up
// front so the output callback never touches the disk or the decoder.
func LoadTrack(path string, reg *Registry) (*Track, error) {
	dec, ok := reg.DecoderFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening track: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding track: %w", err)
	}
	defer src.Close()

	return readAll(path, src)
}

// readAll drains a source into a Track, rescaling the decoder's normalized
// samples to integer scale.
func readAll(path string, src Source) (*Track, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	// Keep reads frame aligned.
	bufSize -= bufSize % channels
	if bufSize == 0 {
		bufSize = channels
	}

	scale := pcm.FullScale(src.SampleWidth())
	buf := make([]float32, bufSize)

	var samples []float32
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			start := len(samples)
			samples = append(samples, buf[:n]...)
			for i := start; i < len(samples); i++ {
				samples[i] *= scale
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	// Drop a trailing partial frame rather than play a misaligned tail.
	samples = samples[:len(samples)-len(samples)%channels]
	frames := len(samples) / channels
	if frames == 0 {
		return nil, ErrEmptyTrack
	}

	return &Track{
		Path:        path,
		Channels:    channels,
		SampleRate:  src.SampleRate(),
		SampleWidth: src.SampleWidth(),
		Frames:      frames,
		Duration:    float64(frames) / float64(src.SampleRate()),
		Samples:     samples,
	}, nil
}
