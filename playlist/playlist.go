// SPDX-License-Identifier: EPL-2.0

package playlist

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Manager tracks the list of playable files around the current track and
// answers next/previous queries in sequential or shuffle order.
//
// All methods are safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	exts    map[string]struct{}
	folder  string
	tracks  []string
	index   int
	shuffle bool
	log     *slog.Logger

	// intN is swapped in tests for deterministic shuffle picks.
	intN func(int) int
}

// NewManager builds a manager that recognizes files with the given
// extensions (with or without a leading dot, any case).
func NewManager(exts []string, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}

	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[normalizeExt(e)] = struct{}{}
	}

	return &Manager{
		exts:  set,
		index: -1,
		log:   log,
		intN:  rand.IntN,
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Load points the playlist at path and scans its folder for sibling tracks.
// When the folder is the one already scanned, the listing is reused and only
// the current position moves. A folder that cannot be read degrades to a
// single-entry playlist holding just path.
func (m *Manager) Load(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	folder := filepath.Dir(path)
	if folder != m.folder || len(m.tracks) == 0 {
		m.tracks = m.scan(folder, path)
		m.folder = folder
	}

	m.index = 0
	for i, t := range m.tracks {
		if t == path {
			m.index = i
			break
		}
	}
}

// scan lists the playable files in folder, sorted by name. On any error it
// falls back to just path.
func (m *Manager) scan(folder, path string) []string {
	entries, err := os.ReadDir(folder)
	if err != nil {
		m.log.Warn("playlist scan failed", "folder", folder, "error", err)
		return []string{path}
	}

	var tracks []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := m.exts[normalizeExt(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		tracks = append(tracks, filepath.Join(folder, e.Name()))
	}

	sort.Strings(tracks)

	if len(tracks) == 0 {
		return []string{path}
	}

	return tracks
}

// Next advances to the following track and returns it. In shuffle mode the
// pick is uniform over every track except the current one, so the same track
// never plays twice in a row unless it is the only one. Returns false when
// the playlist is empty.
func (m *Manager) Next() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.step(1)
}

// Previous steps back one track in sequential mode. In shuffle mode there is
// no history; it behaves like Next and picks a random other track.
func (m *Manager) Previous() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.step(-1)
}

func (m *Manager) step(dir int) (string, bool) {
	n := len(m.tracks)
	if n == 0 {
		return "", false
	}
	if n == 1 {
		m.index = 0
		return m.tracks[0], true
	}

	if m.shuffle {
		// Pick among the other n-1 indices.
		idx := m.intN(n - 1)
		if idx >= m.index {
			idx++
		}
		m.index = idx
	} else {
		m.index = (m.index + dir + n) % n
	}

	return m.tracks[m.index], true
}

// ToggleShuffle flips shuffle mode and returns the new state.
func (m *Manager) ToggleShuffle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shuffle = !m.shuffle
	return m.shuffle
}

// Shuffle reports whether shuffle mode is on.
func (m *Manager) Shuffle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.shuffle
}

// Len returns the number of tracks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.tracks)
}

// Index returns the position of the current track, or -1 before any Load.
func (m *Manager) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.index
}

// Current returns the current track path. Returns false before any Load.
func (m *Manager) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index < 0 || m.index >= len(m.tracks) {
		return "", false
	}
	return m.tracks[m.index], true
}

// Tracks returns a copy of the playlist in play order.
func (m *Manager) Tracks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.tracks))
	copy(out, m.tracks)
	return out
}
