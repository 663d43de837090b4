package celebration

import (
	"context"
	"fmt"
	"sync"

	"github.com/simukka/candle-celebration/common"
)

// InputStream is a live microphone capture. Stop releases the hardware.
type InputStream interface {
	Stop()
}

// Analyser exposes per-frame frequency magnitudes (0-255 per bin). It fills
// dst when it is large enough and returns the filled slice.
type Analyser interface {
	FrequencyData(dst []uint8) []uint8
}

// Microphone acquires an input stream. Open may block on a permission prompt.
type Microphone interface {
	Open(ctx context.Context) (InputStream, Analyser, error)
}

// Extinguisher is the target a loud sound triggers.
type Extinguisher interface {
	Extinguish() Transition
}

// LoudnessConfig tunes blow detection.
type LoudnessConfig struct {
	Threshold float64 // mean bin magnitude, 0-255
	Bins      int     // analyser size hint
	Window    int     // frames averaged before comparing
}

// DefaultLoudness is tuned for a short blow into a laptop microphone.
var DefaultLoudness = LoudnessConfig{
	Threshold: 55,
	Bins:      128,
	Window:    3,
}

// LoudnessTrigger samples an analyser once per frame and extinguishes its
// target the first time the running level crosses the threshold.
type LoudnessTrigger struct {
	stream   InputStream
	analyser Analyser
	frames   common.FrameScheduler
	target   Extinguisher
	cfg      LoudnessConfig

	mu       sync.Mutex
	buf      []uint8
	history  []float64
	next     int
	filled   int
	level    float64
	frameID  int
	sampling bool
	stopped  bool
	fired    bool
	release  sync.Once
}

// NewLoudnessTrigger wraps an acquired stream. Call Start to begin sampling.
func NewLoudnessTrigger(stream InputStream, analyser Analyser, frames common.FrameScheduler, target Extinguisher, cfg LoudnessConfig) *LoudnessTrigger {
	if cfg.Window < 1 {
		cfg.Window = 1
	}
	if cfg.Bins < 1 {
		cfg.Bins = DefaultLoudness.Bins
	}
	return &LoudnessTrigger{
		stream:   stream,
		analyser: analyser,
		frames:   frames,
		target:   target,
		cfg:      cfg,
		buf:      make([]uint8, cfg.Bins),
		history:  make([]float64, cfg.Window),
	}
}

// Start schedules sampling on the next frame. It does nothing once stopped.
func (t *LoudnessTrigger) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.sampling {
		return
	}
	t.sampling = true
	t.frameID = t.frames.RequestFrame(t.onFrame)
}

// Stop ends sampling for good and releases the stream. Safe to call more
// than once and from any goroutine.
func (t *LoudnessTrigger) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.sampling = false
	if t.frameID != 0 {
		t.frames.CancelFrame(t.frameID)
		t.frameID = 0
	}
	t.mu.Unlock()

	t.release.Do(func() {
		if t.stream != nil {
			t.stream.Stop()
		}
		common.Debug("[celebration] microphone released")
	})
}

// Fired reports whether the trigger has extinguished its target.
func (t *LoudnessTrigger) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Level returns the last averaged level.
func (t *LoudnessTrigger) Level() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level
}

func (t *LoudnessTrigger) onFrame(float64) {
	t.mu.Lock()
	if !t.sampling {
		t.mu.Unlock()
		return
	}
	t.frameID = 0
	level := t.sample()
	if level <= t.cfg.Threshold {
		t.frameID = t.frames.RequestFrame(t.onFrame)
		t.mu.Unlock()
		return
	}
	t.fired = true
	t.mu.Unlock()

	common.Debugf("[celebration] blow detected: level %.1f > %.1f", level, t.cfg.Threshold)
	t.Stop()
	if t.target != nil {
		t.target.Extinguish()
	}
}

// sample reads one analyser snapshot and returns the windowed mean.
func (t *LoudnessTrigger) sample() float64 {
	data := t.buf
	if t.analyser != nil {
		data = t.analyser.FrequencyData(t.buf)
		t.buf = data
	}
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	var mean float64
	if len(data) > 0 {
		mean = sum / float64(len(data))
	}

	t.history[t.next] = mean
	t.next = (t.next + 1) % len(t.history)
	if t.filled < len(t.history) {
		t.filled++
	}
	var total float64
	for i := 0; i < t.filled; i++ {
		total += t.history[i]
	}
	t.level = total / float64(t.filled)
	return t.level
}

// Listener acquires the microphone in the background and runs a
// LoudnessTrigger once it succeeds.
type Listener struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	trigger *LoudnessTrigger
	stopped bool
	err     error
}

// Listen starts acquiring mic without blocking. Denial or absence is logged
// and recorded in Err; the celebration works without it.
func Listen(ctx context.Context, mic Microphone, frames common.FrameScheduler, target Extinguisher, cfg LoudnessConfig) *Listener {
	ctx, cancel := context.WithCancel(ctx)
	l := &Listener{cancel: cancel, done: make(chan struct{})}
	if mic == nil {
		l.err = ErrNoMicrophone
		close(l.done)
		return l
	}
	go l.acquire(ctx, mic, frames, target, cfg)
	return l
}

func (l *Listener) acquire(ctx context.Context, mic Microphone, frames common.FrameScheduler, target Extinguisher, cfg LoudnessConfig) {
	defer close(l.done)

	stream, analyser, err := openMic(ctx, mic)
	if err != nil {
		common.Debug("[celebration] microphone unavailable:", err)
		l.mu.Lock()
		l.err = err
		l.mu.Unlock()
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped || ctx.Err() != nil {
		stream.Stop()
		common.Debug("[celebration] microphone acquired after cancel; released")
		return
	}
	l.trigger = NewLoudnessTrigger(stream, analyser, frames, target, cfg)
	l.trigger.Start()
	common.Debug("[celebration] listening for a blow")
}

func openMic(ctx context.Context, mic Microphone) (stream InputStream, analyser Analyser, err error) {
	defer func() {
		if r := recover(); r != nil {
			stream, analyser, err = nil, nil, fmt.Errorf("%w: %v", ErrNoMicrophone, r)
		}
	}()
	stream, analyser, err = mic.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	if stream == nil || analyser == nil {
		if stream != nil {
			stream.Stop()
		}
		return nil, nil, ErrNoMicrophone
	}
	return stream, analyser, nil
}

// Stop cancels a pending acquisition or stops the running trigger.
func (l *Listener) Stop() {
	l.mu.Lock()
	l.stopped = true
	tr := l.trigger
	l.mu.Unlock()

	l.cancel()
	if tr != nil {
		tr.Stop()
	}
}

// Done is closed once acquisition has finished, successfully or not.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

// Err returns the acquisition error, if any.
func (l *Listener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Trigger returns the running trigger, or nil before acquisition completes.
func (l *Listener) Trigger() *LoudnessTrigger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.trigger
}
