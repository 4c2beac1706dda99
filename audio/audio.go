// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// SampleWidth is the width in bytes of one sample in the source
	// container (1, 2, 3 or 4). Decoders that produce fixed-width output
	// regardless of the container (e.g. MP3) report that width.
	SampleWidth() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0
	// with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps file extensions (".wav", ".mp3", ...) to decoders. It backs
// both track loading and the playlist's notion of which directory entries
// are playable.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register associates a decoder with a file extension. The extension is
// normalized to lower case with a leading dot.
func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeExt(ext)] = d
}

func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// DecoderFor resolves a decoder from a file path's extension.
func (r *Registry) DecoderFor(path string) (Decoder, bool) {
	return r.Get(filepath.Ext(path))
}

// Extensions returns the registered extensions, sorted, for callers that
// filter directory listings.
func (r *Registry) Extensions() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
