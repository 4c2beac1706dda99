// SPDX-License-Identifier: EPL-2.0

// Package flexplay is a music player core: playback through the system's
// audio device, folder playlists and a spectrum visualizer feed.
//
// # Supported Formats
//
// The player decodes the following audio formats:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//
// # Quick Start
//
// The Player type wires everything together:
//
//	dev := player.PortAudioDevice{}
//	dev.Initialize()
//	defer dev.Terminate()
//
//	p := flexplay.NewPlayer(dev, nil)
//	defer p.Close()
//
//	p.Play("/music/song.mp3")
//
//	// Spectrum bins for a visualizer
//	bins := make([]float64, p.SpectrumBins())
//	p.Spectrum(bins)
//
// Playback is asynchronous: Play returns once the track is decoded and the
// output stream is running. When a track ends the player advances through
// the other files in its folder, sequentially or shuffled.
//
// # Architecture
//
// The subpackages can be used on their own:
//   - audio: decoder registry and whole-track decoding
//   - pcm: sample width policy and byte-level PCM conversion
//   - player: the playback engine and output devices
//   - spectrum: FFT analysis for the visualizer
//   - playlist: folder-derived playlists
package flexplay
