// SPDX-License-Identifier: EPL-2.0

package player

import (
	"encoding/binary"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/ik5/flexplay/pcm"
)

// PortAudioDevice plays through the system's default output device via
// github.com/gordonklaus/portaudio.
//
// Call Initialize before opening streams and Terminate when done with the
// device for good.
type PortAudioDevice struct{}

// Initialize starts the underlying PortAudio runtime.
func (PortAudioDevice) Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}
	return nil
}

// Terminate shuts the PortAudio runtime down.
func (PortAudioDevice) Terminate() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("terminating portaudio: %w", err)
	}
	return nil
}

// OpenStream opens the default output stream with a sample format matching
// params.SampleWidth. The engine's fill callback produces bytes; the stream
// callback repacks them into the typed buffer PortAudio hands out.
func (PortAudioDevice) OpenStream(params StreamParams, fill FillFunc) (Stream, error) {
	buf := make([]byte, params.FramesPerBuffer*params.Channels*params.SampleWidth)

	var cb any
	switch params.SampleWidth {
	case pcm.Width8:
		cb = func(out []int8) {
			b := fillBytes(&buf, fill, len(out))
			for i := range out {
				out[i] = int8(b[i])
			}
		}
	case pcm.Width32:
		cb = func(out []int32) {
			b := fillBytes(&buf, fill, len(out)*4)
			for i := range out {
				out[i] = int32(binary.LittleEndian.Uint32(b[4*i:]))
			}
		}
	default:
		// 16-bit, also the fallback format (see pcm.OutputWidth).
		cb = func(out []int16) {
			b := fillBytes(&buf, fill, len(out)*2)
			for i := range out {
				out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
			}
		}
	}

	stream, err := portaudio.OpenDefaultStream(
		0, params.Channels, float64(params.SampleRate), params.FramesPerBuffer, cb)
	if err != nil {
		return nil, fmt.Errorf("opening output stream: %w", err)
	}

	return &portAudioStream{stream: stream}, nil
}

// fillBytes runs fill into *buf, growing it only if the device asks for more
// than the size negotiated at open.
func fillBytes(buf *[]byte, fill FillFunc, n int) []byte {
	if cap(*buf) < n {
		*buf = make([]byte, n)
	}
	b := (*buf)[:n]
	fill(b)
	return b
}

type portAudioStream struct {
	stream *portaudio.Stream
}

func (s *portAudioStream) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}
	return nil
}

func (s *portAudioStream) Stop() error {
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("stopping stream: %w", err)
	}
	return nil
}

func (s *portAudioStream) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("closing stream: %w", err)
	}
	return nil
}
