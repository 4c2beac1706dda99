// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	// ErrNoPlaylist indicates the engine was built without a playlist
	ErrNoPlaylist = errors.New("no playlist attached")

	// ErrEmptyPlaylist indicates a next/previous request on an empty playlist
	ErrEmptyPlaylist = errors.New("playlist is empty")
)
