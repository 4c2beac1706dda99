// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ik5/flexplay/audio"
	"github.com/ik5/flexplay/pcm"
	"github.com/ik5/flexplay/playlist"
)

// Volume bounds. 100 is unity gain; values above it amplify.
const (
	MinVolume     = 0
	MaxVolume     = 200
	DefaultVolume = 100
)

// framesPerBuffer is the output chunk size in frames, matched to the
// visualizer's analysis frame.
const framesPerBuffer = 2048

// Visualizer receives the mono mix of every chunk the engine emits. Push is
// called from the audio callback and must not block; Zero is called when
// output stops.
type Visualizer interface {
	Push(mono []float32) bool
	Zero()
}

// noopVisualizer stands in when no visualizer is attached.
type noopVisualizer struct{}

func (noopVisualizer) Push([]float32) bool { return false }
func (noopVisualizer) Zero()               {}

// Engine plays decoded tracks through a Device. One track plays at a time;
// loading a new track stops the current one.
//
// The audio callback reads only immutable track data and atomics, so control
// methods never contend with it on a lock.
type Engine struct {
	device Device
	reg    *audio.Registry
	viz    Visualizer
	list   *playlist.Manager
	log    *slog.Logger

	playing  atomic.Bool  // stream open, whether or not paused
	paused   atomic.Bool
	volume   atomic.Int32 // 0..200, 100 is unity
	playhead atomic.Int64 // frames emitted for the current track
	gen      atomic.Int64 // load generation, stale finish signals carry an old one

	autoAdvance atomic.Bool

	mu         sync.Mutex // guards track, stream and onFinished
	track      *audio.Track
	stream     Stream
	onFinished func(path string)

	finished chan int64
	quit     chan struct{}
	wg       sync.WaitGroup
}

// NewEngine builds an engine on the given output device and decoder
// registry. viz, list and log may be nil. The engine owns a monitor
// goroutine; release it with Close.
func NewEngine(device Device, reg *audio.Registry, viz Visualizer, list *playlist.Manager, log *slog.Logger) *Engine {
	if viz == nil {
		viz = noopVisualizer{}
	}
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		device:   device,
		reg:      reg,
		viz:      viz,
		list:     list,
		log:      log,
		finished: make(chan int64, 1),
		quit:     make(chan struct{}),
	}
	e.volume.Store(DefaultVolume)
	e.autoAdvance.Store(true)

	e.wg.Add(1)
	go e.monitor()

	return e
}

// Close stops playback and the monitor goroutine.
func (e *Engine) Close() {
	e.Stop()
	close(e.quit)
	e.wg.Wait()
}

// LoadAndPlay decodes the file at path and starts playing it from the
// beginning. On a decode error the current playback state is left untouched.
func (e *Engine) LoadAndPlay(path string) error {
	track, err := audio.LoadTrack(path, e.reg)
	if err != nil {
		return fmt.Errorf("loading track: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	gen := e.gen.Add(1)
	params := StreamParams{
		SampleRate:      track.SampleRate,
		Channels:        track.Channels,
		SampleWidth:     pcm.OutputWidth(track.SampleWidth),
		FramesPerBuffer: framesPerBuffer,
	}

	stream, err := e.device.OpenStream(params, e.fillFor(track, gen))
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}

	e.track = track
	e.stream = stream
	e.playhead.Store(0)
	e.paused.Store(false)
	e.playing.Store(true)

	if e.list != nil {
		e.list.Load(path)
	}

	if err := stream.Start(); err != nil {
		e.playing.Store(false)
		e.stream = nil
		stream.Close()
		return fmt.Errorf("starting stream: %w", err)
	}

	e.log.Info("playing",
		"path", path,
		"sample_rate", track.SampleRate,
		"channels", track.Channels,
		"width", track.SampleWidth,
		"duration", track.Duration)

	return nil
}

// fillFor builds the output callback for one loaded track. The closure owns
// its scratch buffers, so a stale callback from a previous load can never
// share state with the current one.
func (e *Engine) fillFor(t *audio.Track, gen int64) FillFunc {
	width := t.SampleWidth
	channels := t.Channels
	bytesPerFrame := pcm.OutputWidth(width) * channels
	total := int64(t.Frames)

	scaled := make([]float32, framesPerBuffer*channels)
	mono := make([]float32, framesPerBuffer)
	var done bool

	return func(out []byte) Result {
		if done || !e.playing.Load() {
			clear(out)
			return Complete
		}
		if e.paused.Load() {
			clear(out)
			return Continue
		}

		frames := int64(len(out) / bytesPerFrame)
		pos := e.playhead.Load()
		n := frames
		if rem := total - pos; n > rem {
			n = rem
		}

		count := int(n) * channels
		if count > len(scaled) {
			// Device asked for more than negotiated at open.
			scaled = make([]float32, count)
			mono = make([]float32, int(n))
		}

		vol := float32(e.volume.Load()) * 0.01
		src := t.Samples[pos*int64(channels) : pos*int64(channels)+int64(count)]
		for i, s := range src {
			scaled[i] = s * vol
		}

		written := pcm.PutBytes(out, scaled[:count], width)

		monoFrames := audio.DownmixMono(mono, scaled[:count], channels)
		e.viz.Push(mono[:monoFrames])

		e.playhead.Store(pos + n)

		if pos+n >= total {
			clear(out[written:])
			done = true
			e.playing.Store(false)
			select {
			case e.finished <- gen:
			default:
			}
			return Complete
		}

		return Continue
	}
}

// monitor reacts to end-of-track signals from the audio callback. Stream
// teardown and playlist resolution stay off the audio thread.
func (e *Engine) monitor() {
	defer e.wg.Done()

	for {
		select {
		case <-e.quit:
			return
		case gen := <-e.finished:
			e.handleFinished(gen)
		}
	}
}

func (e *Engine) handleFinished(gen int64) {
	e.mu.Lock()
	if gen != e.gen.Load() || e.stream == nil {
		// A Stop or new load beat the signal here.
		e.mu.Unlock()
		return
	}

	path := e.track.Path
	e.stopLocked()
	cb := e.onFinished
	e.mu.Unlock()

	e.log.Debug("track finished", "path", path)
	if cb != nil {
		cb(path)
	}

	if e.autoAdvance.Load() && e.list != nil {
		next, ok := e.list.Next()
		if !ok {
			return
		}
		if err := e.LoadAndPlay(next); err != nil {
			e.log.Error("auto-advance failed", "path", next, "error", err)
		}
	}
}

// Stop halts playback synchronously. When it returns the stream is closed
// and the visualizer is zeroed. Stopping a stopped engine is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if e.stream == nil {
		return
	}

	// Flip playing first so the callback emits silence while the device
	// drains.
	e.playing.Store(false)
	e.paused.Store(false)

	if err := e.stream.Stop(); err != nil {
		e.log.Warn("stopping stream", "error", err)
	}
	if err := e.stream.Close(); err != nil {
		e.log.Warn("closing stream", "error", err)
	}

	e.stream = nil
	e.playhead.Store(0)
	e.viz.Zero()
}

// Pause freezes playback, leaving the stream open and emitting silence.
func (e *Engine) Pause() {
	if e.playing.Load() {
		e.paused.Store(true)
	}
}

// Resume continues after a Pause.
func (e *Engine) Resume() {
	e.paused.Store(false)
}

// TogglePause flips the paused state and reports the new one. It has no
// effect when nothing is loaded.
func (e *Engine) TogglePause() bool {
	if !e.playing.Load() {
		return false
	}

	for {
		old := e.paused.Load()
		if e.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsPlaying reports whether audio is actively coming out.
func (e *Engine) IsPlaying() bool {
	return e.playing.Load() && !e.paused.Load()
}

// IsPaused reports whether a loaded track is paused.
func (e *Engine) IsPaused() bool {
	return e.playing.Load() && e.paused.Load()
}

// SetVolume sets the playback volume, clamped to [MinVolume, MaxVolume].
// It takes effect on the next buffer, including while paused or stopped.
func (e *Engine) SetVolume(v int) {
	if v < MinVolume {
		v = MinVolume
	}
	if v > MaxVolume {
		v = MaxVolume
	}

	e.volume.Store(int32(v))
}

// Volume returns the current volume.
func (e *Engine) Volume() int {
	return int(e.volume.Load())
}

// Position returns the playback position in seconds, 0 when stopped.
func (e *Engine) Position() float64 {
	if !e.playing.Load() {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.track == nil {
		return 0
	}

	return float64(e.playhead.Load()) / float64(e.track.SampleRate)
}

// Duration returns the loaded track's length in seconds, 0 when none is
// loaded.
func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.track == nil || e.stream == nil {
		return 0
	}

	return e.track.Duration
}

// Track returns the loaded track, or nil. The track is immutable.
func (e *Engine) Track() *audio.Track {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stream == nil {
		return nil
	}

	return e.track
}

// Next plays the following playlist track.
func (e *Engine) Next() error {
	return e.jump((*playlist.Manager).Next)
}

// Previous plays the preceding playlist track.
func (e *Engine) Previous() error {
	return e.jump((*playlist.Manager).Previous)
}

func (e *Engine) jump(pick func(*playlist.Manager) (string, bool)) error {
	if e.list == nil {
		return ErrNoPlaylist
	}

	path, ok := pick(e.list)
	if !ok {
		return ErrEmptyPlaylist
	}

	return e.LoadAndPlay(path)
}

// ToggleShuffle flips the playlist's shuffle mode and reports the new state.
// Without a playlist it reports false.
func (e *Engine) ToggleShuffle() bool {
	if e.list == nil {
		return false
	}

	return e.list.ToggleShuffle()
}

// SetAutoAdvance controls whether a finished track starts the next playlist
// entry. On by default.
func (e *Engine) SetAutoAdvance(on bool) {
	e.autoAdvance.Store(on)
}

// OnTrackFinished registers a callback invoked from the monitor goroutine
// each time a track plays to its end. Not invoked on Stop.
func (e *Engine) OnTrackFinished(fn func(path string)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.onFinished = fn
}
