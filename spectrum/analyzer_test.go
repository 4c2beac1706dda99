package spectrum

import (
	"math"
	"testing"
	"time"
)

// sineChunk produces n mono samples of a sine at freq Hz, amplitude amp in
// integer scale, at rate Hz.
func sineChunk(n int, freq, amp, rate float64) []float32 {
	chunk := make([]float32, n)
	for i := range chunk {
		chunk[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/rate))
	}
	return chunk
}

func newTestAnalyzer(cfg Config) *Analyzer {
	return New(cfg, NewBuffer(cfg.Bins), nil)
}

func TestAnalyzer_SilenceStaysZero(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(DefaultConfig())
	a.process(make([]float32, a.cfg.FFTSize))

	snap := make([]float64, a.cfg.Bins)
	a.out.Snapshot(snap)

	for i, v := range snap {
		if v != 0 {
			t.Errorf("bin %d = %v after silence, want 0", i, v)
		}
	}
}

func TestAnalyzer_SignalProducesFiniteBins(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(DefaultConfig())
	for range 20 {
		a.process(sineChunk(a.cfg.FFTSize, 440, 16000, 44100))
	}

	snap := make([]float64, a.cfg.Bins)
	a.out.Snapshot(snap)

	any := false
	for i, v := range snap {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("bin %d = %v, want finite", i, v)
		}
		if v < 0 {
			t.Errorf("bin %d = %v, want non-negative", i, v)
		}
		if v > 0 {
			any = true
		}
	}
	if !any {
		t.Error("all bins zero for a loud sine")
	}
}

// TestAnalyzer_BassBoostExceedsUnity drives the dominant bin into the bass
// range; the published value must carry the boost rather than saturate at 1.
func TestAnalyzer_BassBoostExceedsUnity(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Smoothing = 1.0 // single frame is fully visible
	cfg.BeatThreshold = 10

	a := newTestAnalyzer(cfg)
	// 100 Hz at 44100 Hz lands well inside the first BassBins bins, so the
	// frame's peak bin is normalized to 1 and then doubled.
	for range 40 {
		a.process(sineChunk(cfg.FFTSize, 100, 16000, 44100))
	}

	snap := make([]float64, cfg.Bins)
	a.out.Snapshot(snap)

	peak := 0.0
	for _, v := range snap[:cfg.BassBins] {
		if v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Errorf("peak bass bin = %v, want > 1 after a %v boost", peak, cfg.BassBoost)
	}
	want := cfg.BassBoost
	if math.Abs(peak-want) > 1e-6 {
		t.Errorf("peak bass bin = %v, want %v", peak, want)
	}
}

// TestAnalyzer_AttackReleaseAsymmetry checks that the normalization ceiling
// jumps to a loud frame instantly but decays slowly after it.
func TestAnalyzer_AttackReleaseAsymmetry(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(DefaultConfig())

	loud := sineChunk(a.cfg.FFTSize, 440, 16000, 44100)
	quiet := sineChunk(a.cfg.FFTSize, 440, 160, 44100)

	a.process(loud)
	afterLoud := a.persistentMax
	if afterLoud <= 0 {
		t.Fatal("ceiling did not rise on a loud frame")
	}

	a.process(quiet)
	afterQuiet := a.persistentMax

	if afterQuiet >= afterLoud {
		t.Errorf("ceiling did not release: %v -> %v", afterLoud, afterQuiet)
	}
	// One release step keeps at least ReleaseAlpha of the ceiling.
	if afterQuiet < afterLoud*a.cfg.ReleaseAlpha*0.999 {
		t.Errorf("ceiling released too fast: %v -> %v", afterLoud, afterQuiet)
	}
}

// TestAnalyzer_CeilingPersistsAcrossReset verifies Reset is the only way the
// ceiling forgets, and that it does forget.
func TestAnalyzer_CeilingPersistsAcrossReset(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(DefaultConfig())
	a.process(sineChunk(a.cfg.FFTSize, 440, 16000, 44100))

	if a.persistentMax == 0 {
		t.Fatal("ceiling still zero after a loud frame")
	}

	a.Reset()

	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if a.persistentMax != 0 {
		t.Errorf("persistentMax = %v after Reset, want 0", a.persistentMax)
	}
	for i, v := range a.last {
		if v != 0 {
			t.Errorf("last[%d] = %v after Reset, want 0", i, v)
		}
	}
}

func TestAnalyzer_BeatAccent(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Bins = 8
	cfg.Smoothing = 1.0 // no history, single frame is fully visible
	cfg.BassBoost = 1.0
	cfg.BassBins = 0
	cfg.BeatBins = 1
	cfg.BeatBoost = 1.2

	plain := cfg
	plain.BeatThreshold = 10 // never trips

	accented := cfg
	accented.BeatThreshold = 0.01 // always trips on a loud low end

	chunk := sineChunk(cfg.FFTSize, 100, 16000, 44100)

	pa := newTestAnalyzer(plain)
	pa.process(chunk)
	pSnap := make([]float64, cfg.Bins)
	pa.out.Snapshot(pSnap)

	aa := newTestAnalyzer(accented)
	aa.process(chunk)
	aSnap := make([]float64, cfg.Bins)
	aa.out.Snapshot(aSnap)

	boosted := false
	for i := range pSnap {
		if pSnap[i] > 0 {
			want := pSnap[i] * cfg.BeatBoost
			if math.Abs(aSnap[i]-want) > 1e-9 {
				t.Errorf("bin %d = %v with accent, want %v", i, aSnap[i], want)
			}
			boosted = true
		}
	}
	if !boosted {
		t.Fatal("all bins zero, nothing to observe the accent on")
	}
}

func TestAnalyzer_PushDropsWhenFull(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	a := newTestAnalyzer(cfg)
	chunk := sineChunk(cfg.FFTSize, 440, 16000, 44100)

	// Analyzer not started, so the queue only drains into the pool by hand.
	accepted := 0
	for range cfg.QueueDepth + 10 {
		if a.Push(chunk) {
			accepted++
		}
	}

	if accepted != cfg.QueueDepth {
		t.Errorf("accepted %d chunks, want %d", accepted, cfg.QueueDepth)
	}
	if a.Dropped() == 0 {
		t.Error("Dropped() = 0, want drops once the queue filled")
	}
}

func TestAnalyzer_PushZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	cfg := DefaultConfig()
	a := newTestAnalyzer(cfg)
	chunk := sineChunk(cfg.FFTSize, 440, 16000, 44100)

	allocs := testing.AllocsPerRun(100, func() {
		a.Push(chunk)
		a.pool <- <-a.chunks
	})

	if allocs > 0 {
		t.Errorf("Push allocated %v times, want 0", allocs)
	}
}

func TestAnalyzer_StartStop(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(DefaultConfig())
	a.Start()
	a.Start() // idempotent

	chunk := sineChunk(a.cfg.FFTSize, 440, 16000, 44100)
	snap := make([]float64, a.cfg.Bins)

	deadline := time.Now().Add(2 * time.Second)
	for {
		a.Push(chunk)
		a.out.Snapshot(snap)

		nonzero := false
		for _, v := range snap {
			if v > 0 {
				nonzero = true
				break
			}
		}
		if nonzero {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no bins published before deadline")
		}
		time.Sleep(time.Millisecond)
	}

	a.Stop()
	a.Stop() // idempotent

	// Pool refilled, so a stopped analyzer accepts a full queue again.
	accepted := 0
	for range a.cfg.QueueDepth {
		if a.Push(chunk) {
			accepted++
		}
	}
	if accepted != a.cfg.QueueDepth {
		t.Errorf("accepted %d chunks after Stop, want %d", accepted, a.cfg.QueueDepth)
	}
}

func TestAnalyzer_ShortChunkZeroPadded(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(DefaultConfig())

	// A short chunk must not reuse stale tail samples from the pool slot.
	if !a.Push(sineChunk(100, 440, 16000, 44100)) {
		t.Fatal("Push rejected a short chunk")
	}
	buf := <-a.chunks
	for i := 100; i < len(buf); i++ {
		if buf[i] != 0 {
			t.Fatalf("tail sample %d = %v, want 0", i, buf[i])
		}
	}
}

func BenchmarkAnalyzer_Process(b *testing.B) {
	a := newTestAnalyzer(DefaultConfig())
	chunk := sineChunk(a.cfg.FFTSize, 440, 16000, 44100)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		a.process(chunk)
	}
}

// TestAnalyzer_SilenceDecaysToZero feeds silence after a loud stretch; the
// published bins must fall to zero through the smoothing, with no NaN along
// the way.
func TestAnalyzer_SilenceDecaysToZero(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(DefaultConfig())
	loud := sineChunk(a.cfg.FFTSize, 440, 16000, 44100)
	for range 5 {
		a.process(loud)
	}

	silence := make([]float32, a.cfg.FFTSize)
	snap := make([]float64, a.cfg.Bins)
	for range 60 {
		a.process(silence)
		a.out.Snapshot(snap)
		for i, v := range snap {
			if math.IsNaN(v) || v < 0 {
				t.Fatalf("bin %d = %v during decay", i, v)
			}
		}
	}

	a.out.Snapshot(snap)
	for i, v := range snap {
		if v > 1e-6 {
			t.Errorf("bin %d = %v after sustained silence, want ~0", i, v)
		}
	}
}
