// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrUnknownFormat indicates no decoder is registered for the file's
	// extension.
	ErrUnknownFormat = errors.New("no decoder registered for format")

	// ErrNoChannels indicates a source reported a non-positive channel count.
	ErrNoChannels = errors.New("source has no channels")

	// ErrEmptyTrack indicates a file decoded to zero complete frames.
	ErrEmptyTrack = errors.New("track contains no audio frames")
)
