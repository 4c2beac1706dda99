// SPDX-License-Identifier: EPL-2.0

package flexplay

import (
	"log/slog"

	"github.com/ik5/flexplay/audio"
	"github.com/ik5/flexplay/formats/aiff"
	"github.com/ik5/flexplay/formats/mp3"
	"github.com/ik5/flexplay/formats/vorbis"
	"github.com/ik5/flexplay/formats/wav"
	"github.com/ik5/flexplay/player"
	"github.com/ik5/flexplay/playlist"
	"github.com/ik5/flexplay/spectrum"
)

// DefaultRegistry returns a registry with every built-in decoder registered.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(".wav", wav.Decoder{})
	reg.Register(".aif", aiff.Decoder{})
	reg.Register(".aiff", aiff.Decoder{})
	reg.Register(".mp3", mp3.Decoder{})
	reg.Register(".ogg", vorbis.Decoder{})
	reg.Register(".oga", vorbis.Decoder{})

	return reg
}

// Player bundles the playback engine, the folder playlist and the spectrum
// analyzer into one ready-to-use music player core.
type Player struct {
	engine   *player.Engine
	analyzer *spectrum.Analyzer
	list     *playlist.Manager
}

// NewPlayer builds a player on the given output device. log may be nil.
func NewPlayer(device player.Device, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}

	reg := DefaultRegistry()
	list := playlist.NewManager(reg.Extensions(), log)

	cfg := spectrum.DefaultConfig()
	analyzer := spectrum.New(cfg, spectrum.NewBuffer(cfg.Bins), log)
	analyzer.Start()

	return &Player{
		engine:   player.NewEngine(device, reg, analyzer, list, log),
		analyzer: analyzer,
		list:     list,
	}
}

// Close stops playback and releases the player's goroutines.
func (p *Player) Close() {
	p.engine.Close()
	p.analyzer.Stop()
}

// Play starts the file at path from the beginning, replacing any current
// playback. The file's folder becomes the active playlist.
func (p *Player) Play(path string) error {
	return p.engine.LoadAndPlay(path)
}

// Stop halts playback.
func (p *Player) Stop() { p.engine.Stop() }

// TogglePause flips pause and reports whether playback is now paused.
func (p *Player) TogglePause() bool { return p.engine.TogglePause() }

// Next plays the next playlist track.
func (p *Player) Next() error { return p.engine.Next() }

// Previous plays the previous playlist track.
func (p *Player) Previous() error { return p.engine.Previous() }

// ToggleShuffle flips shuffle mode and reports the new state.
func (p *Player) ToggleShuffle() bool { return p.engine.ToggleShuffle() }

// SetVolume sets the volume in [0, 200]; 100 is unity gain.
func (p *Player) SetVolume(v int) { p.engine.SetVolume(v) }

// Volume returns the current volume.
func (p *Player) Volume() int { return p.engine.Volume() }

// IsPlaying reports whether audio is actively playing.
func (p *Player) IsPlaying() bool { return p.engine.IsPlaying() }

// IsPaused reports whether playback is paused.
func (p *Player) IsPaused() bool { return p.engine.IsPaused() }

// Position returns the playback position in seconds.
func (p *Player) Position() float64 { return p.engine.Position() }

// Duration returns the current track's length in seconds.
func (p *Player) Duration() float64 { return p.engine.Duration() }

// Track returns the currently loaded track, or nil.
func (p *Player) Track() *audio.Track { return p.engine.Track() }

// Playlist returns the tracks around the current one in play order.
func (p *Player) Playlist() []string { return p.list.Tracks() }

// SpectrumBins returns the number of visualizer bins.
func (p *Player) SpectrumBins() int { return p.analyzer.Output().Len() }

// Spectrum copies the current visualizer bins into dst and returns the
// number copied. Bins are non-negative; bass-boosted or beat-accented
// frames may push them above 1.
func (p *Player) Spectrum(dst []float64) int {
	return p.analyzer.Output().Snapshot(dst)
}

// OnTrackFinished registers a callback for tracks that play to the end.
func (p *Player) OnTrackFinished(fn func(path string)) {
	p.engine.OnTrackFinished(fn)
}

// SetAutoAdvance controls whether a finished track starts the next one.
func (p *Player) SetAutoAdvance(on bool) {
	p.engine.SetAutoAdvance(on)
}
