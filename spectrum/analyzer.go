// SPDX-License-Identifier: EPL-2.0

package spectrum

import (
	"log/slog"
	"math"
	"math/cmplx"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Config controls the analysis pipeline. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// FFTSize is the number of mono samples per analysis frame. Shorter
	// chunks are zero padded, longer ones truncated.
	FFTSize int

	// Bins is the number of display bins the magnitude spectrum is reduced
	// to.
	Bins int

	// Smoothing is the weight of the new frame when blending with the
	// previous one. 0.3 means 30% new, 70% old.
	Smoothing float64

	// BassBoost multiplies the lowest BassBins bins after smoothing.
	BassBoost float64
	BassBins  int

	// BeatBoost multiplies every bin when the mean of the lowest BeatBins
	// bins exceeds BeatThreshold.
	BeatBins      int
	BeatThreshold float64
	BeatBoost     float64

	// ReleaseAlpha sets how fast the normalization ceiling decays when the
	// signal gets quieter. Attack is instant.
	ReleaseAlpha float64

	// Baseline is the floor of the normalization ceiling, keeping the
	// divisor away from zero.
	Baseline float64

	// NoiseFloor is the ceiling below which the frame is treated as
	// silence and zeroed instead of normalized.
	NoiseFloor float64

	// QueueDepth is the number of chunks that may wait for analysis before
	// Push starts dropping.
	QueueDepth int
}

// DefaultConfig returns the tuning used by the player.
func DefaultConfig() Config {
	return Config{
		FFTSize:       2048,
		Bins:          50,
		Smoothing:     0.3,
		BassBoost:     2.0,
		BassBins:      15,
		BeatBins:      10,
		BeatThreshold: 0.6,
		BeatBoost:     1.2,
		ReleaseAlpha:  0.88,
		Baseline:      1e-3,
		NoiseFloor:    0.1,
		QueueDepth:    4,
	}
}

// Analyzer turns mono sample chunks into normalized display bins on its own
// goroutine. Push never blocks; under load, chunks are dropped rather than
// stalling the audio callback that feeds them.
type Analyzer struct {
	cfg Config
	out *Buffer
	log *slog.Logger

	fft *fourier.FFT

	chunks chan []float32
	pool   chan []float32
	stopCh chan struct{}
	wg     sync.WaitGroup

	running atomic.Bool
	dropped atomic.Uint64
	epoch   atomic.Uint64

	// Analysis state, guarded by stateMu so Reset can run while the worker
	// is live.
	stateMu       sync.Mutex
	persistentMax float64
	last          []float64

	// Worker scratch, touched only by the analysis goroutine.
	real   []float64
	coeffs []complex128
	mags   []float64
	bins   []float64
}

// New builds an analyzer publishing into out. out must have cfg.Bins bins.
func New(cfg Config, out *Buffer, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}

	a := &Analyzer{
		cfg:    cfg,
		out:    out,
		log:    log,
		fft:    fourier.NewFFT(cfg.FFTSize),
		chunks: make(chan []float32, cfg.QueueDepth),
		pool:   make(chan []float32, cfg.QueueDepth+1),
		stopCh: make(chan struct{}),
		last:   make([]float64, cfg.Bins),
		real:   make([]float64, cfg.FFTSize),
		coeffs: make([]complex128, cfg.FFTSize/2+1),
		mags:   make([]float64, cfg.FFTSize/2),
		bins:   make([]float64, cfg.Bins),
	}

	// Preallocated chunk slots keep Push allocation free.
	for range cfg.QueueDepth + 1 {
		a.pool <- make([]float32, cfg.FFTSize)
	}

	return a
}

// Output returns the buffer the analyzer publishes into.
func (a *Analyzer) Output() *Buffer { return a.out }

// Dropped reports how many chunks were discarded because the queue was full.
func (a *Analyzer) Dropped() uint64 { return a.dropped.Load() }

// Start launches the analysis goroutine. Starting a running analyzer is a
// no-op.
func (a *Analyzer) Start() {
	if !a.running.CompareAndSwap(false, true) {
		return
	}

	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go a.run()
}

// Stop halts the analysis goroutine and waits for it to exit. Stopping a
// stopped analyzer is a no-op. Queued chunks are discarded.
func (a *Analyzer) Stop() {
	if !a.running.CompareAndSwap(true, false) {
		return
	}

	close(a.stopCh)
	a.wg.Wait()

	a.log.Debug("analyzer stopped", "dropped_chunks", a.dropped.Load())

	// Drain anything left so the pool is full again for the next Start.
	for {
		select {
		case buf := <-a.chunks:
			a.pool <- buf
		default:
			return
		}
	}
}

// Push copies samples into the analysis queue. It returns false when the
// queue is full or no chunk slot is free; the chunk is dropped. Safe to call
// from the audio callback.
func (a *Analyzer) Push(samples []float32) bool {
	var buf []float32
	select {
	case buf = <-a.pool:
	default:
		a.dropped.Add(1)
		return false
	}

	n := copy(buf, samples)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}

	select {
	case a.chunks <- buf:
		return true
	default:
		a.pool <- buf
		a.dropped.Add(1)
		return false
	}
}

// Zero clears the published bins and invalidates frames already in flight,
// so a chunk queued before the call cannot repaint stale bins after it.
func (a *Analyzer) Zero() {
	a.epoch.Add(1)

	for {
		select {
		case buf := <-a.chunks:
			a.pool <- buf
		default:
			a.out.Zero()
			return
		}
	}
}

// Reset forgets the adaptive normalization ceiling and the smoothing history.
// It is not called automatically on track changes; carrying the ceiling
// across tracks keeps the display steady through a playlist.
func (a *Analyzer) Reset() {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()

	a.persistentMax = 0
	for i := range a.last {
		a.last[i] = 0
	}
}

func (a *Analyzer) run() {
	defer a.wg.Done()

	for {
		select {
		case <-a.stopCh:
			return
		case buf := <-a.chunks:
			a.process(buf)
			a.pool <- buf
		}
	}
}

// process runs one chunk through the pipeline and publishes the result.
func (a *Analyzer) process(chunk []float32) {
	epoch := a.epoch.Load()

	for i, s := range chunk {
		a.real[i] = float64(s)
	}

	a.fft.Coefficients(a.coeffs, a.real)

	half := len(a.mags)
	for i := range half {
		a.mags[i] = cmplx.Abs(a.coeffs[i])
	}

	// Reduce to display bins by nearest-index sampling.
	bins := len(a.bins)
	for i := range bins {
		a.bins[i] = a.mags[i*half/bins]
	}

	a.stateMu.Lock()

	currentMax := 0.0
	for _, v := range a.bins {
		if v > currentMax {
			currentMax = v
		}
	}

	// Fast attack, slow release. Loud frames raise the ceiling instantly;
	// quiet stretches let it drift down.
	if currentMax > a.persistentMax {
		a.persistentMax = currentMax
	} else {
		a.persistentMax = a.cfg.ReleaseAlpha*a.persistentMax +
			(1-a.cfg.ReleaseAlpha)*currentMax
	}

	effectiveMax := math.Max(a.persistentMax, a.cfg.Baseline)
	if effectiveMax > a.cfg.NoiseFloor {
		inv := 1 / effectiveMax
		for i := range a.bins {
			a.bins[i] *= inv
		}
	} else {
		for i := range a.bins {
			a.bins[i] = 0
		}
	}

	// Temporal smoothing against the previous frame. The smoothed values
	// are saved before the visual boosts so the boosts do not compound
	// frame over frame.
	for i := range a.bins {
		a.bins[i] = a.bins[i]*a.cfg.Smoothing + a.last[i]*(1-a.cfg.Smoothing)
		a.last[i] = a.bins[i]
	}

	a.stateMu.Unlock()

	for i := 0; i < a.cfg.BassBins && i < len(a.bins); i++ {
		a.bins[i] *= a.cfg.BassBoost
	}

	beatSum := 0.0
	beatBins := min(a.cfg.BeatBins, len(a.bins))
	for i := range beatBins {
		beatSum += a.bins[i]
	}
	if beatBins > 0 && beatSum/float64(beatBins) > a.cfg.BeatThreshold {
		for i := range a.bins {
			a.bins[i] *= a.cfg.BeatBoost
		}
	}

	a.out.publishIf(a.bins, func() bool {
		return a.epoch.Load() == epoch
	})
}
