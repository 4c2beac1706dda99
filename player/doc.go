// SPDX-License-Identifier: EPL-2.0

// Package player drives decoded tracks out through an audio device.
//
// # Architecture
//
// The Engine decodes a whole track into memory up front (see audio.LoadTrack)
// and serves it to the device from a pull callback. The callback touches only
// immutable track data, its own scratch buffers and atomics, so it never
// waits on a lock no matter what the control surface is doing.
//
// Control methods (Stop, Pause, SetVolume, ...) are safe from any goroutine.
// End-of-track housekeeping, including playlist auto-advance, runs on the
// engine's monitor goroutine rather than the audio thread; the callback only
// drops a generation number into a channel.
//
// # Output format
//
// The callback applies the volume and encodes samples with package pcm,
// which widens 24-bit tracks into 32-bit device frames and falls back to
// 16-bit for unknown widths. The mono mix of every emitted chunk is pushed
// to the attached Visualizer.
//
// # Devices
//
// PortAudioDevice plays through the system default output via
// github.com/gordonklaus/portaudio. The Device interface keeps the engine
// testable with an in-process fake.
package player
