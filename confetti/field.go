package confetti

import (
	"math"
	"time"

	"github.com/simukka/candle-celebration/common"
)

// Field owns a particle population and the frame loop that animates it.
// All methods must be called from the frame thread.
type Field struct {
	cfg      Config
	surface  Surface
	frames   common.FrameScheduler
	rng      *common.SeededRNG
	baseSeed uint32
	pool     *Pool

	mode       Mode
	running    bool
	frameID    int
	generation int
	seeded     int
	frame      int
	lastTime   float64
	hasLast    bool

	width, height float64
}

// NewField creates a field drawing on surface with FieldConfig. A nil rng
// seeds from the wall clock.
func NewField(surface Surface, frames common.FrameScheduler, rng *common.SeededRNG) *Field {
	return NewFieldWithConfig(surface, frames, rng, FieldConfig)
}

// NewFieldWithConfig creates a field with custom tunables.
func NewFieldWithConfig(surface Surface, frames common.FrameScheduler, rng *common.SeededRNG, cfg Config) *Field {
	if rng == nil {
		rng = common.NewSeededRNG(uint32(time.Now().UnixNano()))
	}
	size := cfg.ContinuousCount
	if cfg.BurstCount > size {
		size = cfg.BurstCount
	}
	f := &Field{
		cfg:      cfg,
		surface:  surface,
		frames:   frames,
		rng:      rng,
		baseSeed: rng.Seed(),
		pool:     NewPool(size),
	}
	f.width, f.height = surface.Size()
	return f
}

// Start seeds a fresh population for mode and starts the frame loop. A
// running field is restarted from scratch.
func (f *Field) Start(mode Mode) {
	f.cancelFrame()
	f.generation++
	f.seeded++
	f.rng.SetSeed(common.MixSeed(f.baseSeed, f.seeded))
	f.width, f.height = f.surface.Size()
	f.pool.Clear()
	f.frame = 0
	f.hasLast = false
	f.mode = mode

	switch mode {
	case ModeBurst:
		f.seedBurst()
	case ModeContinuous:
		f.seedContinuous()
	default:
		f.mode = ModeNone
		f.running = false
		return
	}

	f.running = true
	common.Debug("[confetti] start", mode.String(), "particles:", f.pool.ActiveCount)
	f.requestFrame()
}

// Stop cancels the pending frame, drops the population and clears the
// surface. It is safe to call at any time, including before Start.
func (f *Field) Stop() {
	f.cancelFrame()
	f.generation++
	if f.running {
		common.Debug("[confetti] stop", f.mode.String())
	}
	f.running = false
	f.mode = ModeNone
	f.pool.Clear()
	f.surface.Clear()
}

// Tick advances the simulation by dtMillis. Long gaps are clamped to
// MaxFrameScale frames; skipped frames are not replayed.
func (f *Field) Tick(dtMillis float64) {
	scale := f.frameScale(dtMillis)
	if scale == 0 {
		return
	}
	f.frame++

	switch f.mode {
	case ModeContinuous:
		f.pool.ForEach(func(p *Particle) {
			f.stepContinuous(p, scale)
		})
	case ModeBurst:
		f.pool.ForEachReverse(func(p *Particle, i int) {
			if !f.stepBurst(p, scale) {
				f.pool.Release(i)
			}
		})
	}
}

// Render clears the surface and draws every particle at its transform.
func (f *Field) Render() {
	f.surface.Clear()
	f.pool.ForEach(func(p *Particle) {
		t := Transform{X: p.X, Y: p.Y, Angle: degToRad(p.Rotation)}
		if p.Shape == ShapeHeart {
			f.surface.FillPath(t, HeartPath(p.Size), p.Color)
			return
		}
		f.surface.FillRect(t, p.Size, p.Size*f.cfg.RectAspect, p.Color)
	})
}

// Resize rescales in-flight particles into a w×h surface.
func (f *Field) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	oldW, oldH := f.width, f.height
	f.width, f.height = w, h
	if oldW <= 0 || oldH <= 0 {
		return
	}
	sx, sy := w/oldW, h/oldH
	f.pool.ForEach(func(p *Particle) {
		p.X *= sx
		p.Y *= sy
	})
}

// Population returns the number of live particles.
func (f *Field) Population() int {
	return f.pool.ActiveCount
}

// Running reports whether the frame loop is active.
func (f *Field) Running() bool {
	return f.running
}

// Mode returns the current emission mode, ModeNone when stopped.
func (f *Field) Mode() Mode {
	return f.mode
}

// Seeded returns how many populations Start has created.
func (f *Field) Seeded() int {
	return f.seeded
}

// Frame returns the number of simulated frames since Start.
func (f *Field) Frame() int {
	return f.frame
}

// Particles returns a copy of the live particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, 0, f.pool.ActiveCount)
	f.pool.ForEach(func(p *Particle) {
		out = append(out, *p)
	})
	return out
}

func (f *Field) requestFrame() {
	gen := f.generation
	f.frameID = f.frames.RequestFrame(func(ts float64) {
		f.onFrame(gen, ts)
	})
}

func (f *Field) cancelFrame() {
	if f.frameID != 0 {
		f.frames.CancelFrame(f.frameID)
		f.frameID = 0
	}
}

func (f *Field) onFrame(gen int, ts float64) {
	// A callback dequeued before Stop or a restart must not touch the new state.
	if gen != f.generation || !f.running {
		return
	}
	f.frameID = 0

	dt := f.cfg.FrameMillis
	if f.hasLast {
		dt = ts - f.lastTime
	}
	f.lastTime, f.hasLast = ts, true

	f.Tick(dt)
	f.Render()

	if f.mode == ModeBurst && (f.pool.ActiveCount == 0 || f.frame >= f.cfg.BurstMaxFrames) {
		common.Debug("[confetti] burst finished after", f.frame, "frames")
		f.running = false
		f.mode = ModeNone
		f.pool.Clear()
		f.surface.Clear()
		return
	}
	f.requestFrame()
}

func (f *Field) frameScale(dtMillis float64) float64 {
	if dtMillis <= 0 || f.cfg.FrameMillis <= 0 {
		return 0
	}
	scale := dtMillis / f.cfg.FrameMillis
	if f.cfg.MaxFrameScale > 0 && scale > f.cfg.MaxFrameScale {
		scale = f.cfg.MaxFrameScale
	}
	return scale
}

func (f *Field) seedContinuous() {
	for i := 0; i < f.cfg.ContinuousCount; i++ {
		p := f.pool.Acquire()
		if p == nil {
			return
		}
		f.spawnHeart(p)
		p.X = f.rng.Random() * f.width
		p.Y = -f.rng.Random() * f.height
	}
}

// spawnHeart gives p fresh random state above the viewport.
func (f *Field) spawnHeart(p *Particle) {
	p.Shape = ShapeHeart
	p.X = f.rng.Random() * f.width
	p.Y = -f.cfg.RecycleMargin - f.rng.Random()*f.height
	p.Size = f.rng.RandomFloat(f.cfg.MinSize, f.cfg.MaxSize)
	p.Color = common.Pick(f.rng, f.cfg.HeartColors)
	p.VX = f.rng.RandomFloat(f.cfg.MinVX, f.cfg.MaxVX)
	p.VY = f.rng.RandomFloat(f.cfg.MinVY, f.cfg.MaxVY)
	p.Rotation = f.rng.RandomFloat(0, 360)
	p.Spin = f.rng.Spread(f.cfg.MaxSpin)
	p.Life = 0
	p.MaxLife = 0
}

func (f *Field) stepContinuous(p *Particle, scale float64) {
	p.X += p.VX * scale
	p.Y += p.VY * scale
	p.Rotation = math.Mod(p.Rotation+p.Spin*scale, 360)

	if p.Y > f.height+f.cfg.RecycleMargin {
		f.spawnHeart(p)
	}
}

func (f *Field) seedBurst() {
	ox, oy := f.width/2, f.height/3
	for i := 0; i < f.cfg.BurstCount; i++ {
		p := f.pool.Acquire()
		if p == nil {
			return
		}
		angle := f.rng.RandomFloat(0, 2*math.Pi)
		speed := f.rng.RandomFloat(f.cfg.BurstMinSpeed, f.cfg.BurstMaxSpeed)
		p.Shape = ShapeConfetti
		p.X, p.Y = ox, oy
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle)*speed - f.cfg.BurstLift
		p.Size = f.rng.RandomFloat(f.cfg.MinSize, f.cfg.MaxSize)
		p.Color = common.Pick(f.rng, f.cfg.BurstColors)
		p.Rotation = f.rng.RandomFloat(0, 360)
		p.Spin = f.rng.Spread(f.cfg.MaxSpin * 3)
		p.MaxLife = f.rng.RandomInt(f.cfg.BurstMinLife, f.cfg.BurstMaxLife+1)
	}
}

// stepBurst moves a burst particle and reports whether it is still alive.
func (f *Field) stepBurst(p *Particle, scale float64) bool {
	p.VY += f.cfg.Gravity * scale
	p.X += p.VX * scale
	p.Y += p.VY * scale
	p.Rotation = math.Mod(p.Rotation+p.Spin*scale, 360)
	p.Life++

	if p.Expired() {
		return false
	}
	m := f.cfg.RecycleMargin
	return p.Y <= f.height+m && p.X >= -m && p.X <= f.width+m
}
