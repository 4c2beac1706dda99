// SPDX-License-Identifier: EPL-2.0

package spectrum

import "sync"

// Buffer is the shared handoff point between the analyzer goroutine and
// readers such as a UI thread. The analyzer publishes a full set of bins at
// once; readers copy them out under the same lock, so a snapshot is never a
// mix of two analysis frames.
type Buffer struct {
	mu   sync.Mutex
	bins []float64
}

// NewBuffer returns a zeroed buffer with the given number of bins.
func NewBuffer(bins int) *Buffer {
	return &Buffer{bins: make([]float64, bins)}
}

// Len returns the number of bins.
func (b *Buffer) Len() int {
	return len(b.bins)
}

// Snapshot copies the current bins into dst and returns the number of bins
// copied. dst should hold Len() values.
func (b *Buffer) Snapshot(dst []float64) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return copy(dst, b.bins)
}

// Zero clears every bin. The playback engine calls this when output stops so
// a stale frame does not linger on screen.
func (b *Buffer) Zero() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.bins {
		b.bins[i] = 0
	}
}

// publishIf overwrites the bins with src only while ok still holds. The
// check runs under the buffer lock, so a concurrent Zero either lands after
// this frame or makes it a no-op, never in between.
func (b *Buffer) publishIf(src []float64, ok func() bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ok() {
		copy(b.bins, src)
	}
}
