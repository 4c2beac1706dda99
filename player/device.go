// SPDX-License-Identifier: EPL-2.0

package player

// Result tells the device whether the stream has more audio coming.
type Result int

const (
	// Continue means the buffer was filled and more will follow.
	Continue Result = iota
	// Complete means the track ended inside this buffer; the remainder is
	// silence and the stream can be stopped.
	Complete
)

// StreamParams describes the output stream the engine needs for a track.
type StreamParams struct {
	SampleRate int
	Channels   int
	// SampleWidth is the bytes per sample on the wire, after the 24-bit to
	// 32-bit widening (see pcm.OutputWidth).
	SampleWidth int
	// FramesPerBuffer is the number of frames requested per fill.
	FramesPerBuffer int
}

// FillFunc produces the next buffer of little-endian interleaved PCM bytes.
// It is called from the device's audio thread: it must not block, allocate,
// or take locks held across it. out is always a whole number of frames.
type FillFunc func(out []byte) Result

// Stream is one open output stream.
type Stream interface {
	Start() error
	// Stop blocks until buffered audio has drained.
	Stop() error
	Close() error
}

// Device abstracts the audio output backend so the engine can be driven by a
// real device or a test double.
type Device interface {
	OpenStream(params StreamParams, fill FillFunc) (Stream, error)
}
