// SPDX-License-Identifier: EPL-2.0

// Package playlist derives a playlist from the folder of the track being
// played.
//
// Loading a track scans its folder for files with recognized extensions,
// sorted by name, and positions the playlist on the loaded track. Loading
// another track from the same folder reuses the listing and only moves the
// position. A folder that cannot be read degrades to a playlist holding just
// the loaded track, so playback itself never fails on a scan error.
//
// Sequential order wraps at both ends. Shuffle order picks uniformly among
// the other tracks, so a track never repeats back to back unless it is the
// only one in the folder.
package playlist
