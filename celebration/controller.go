package celebration

import (
	"fmt"

	"github.com/simukka/candle-celebration/audio"
	"github.com/simukka/candle-celebration/common"
	"github.com/simukka/candle-celebration/confetti"
)

// Step names used in Transition failures.
const (
	StepFlames    = "flames"
	StepMelody    = "melody"
	StepParticles = "particles"
	StepSong      = "song"
	StepAudio     = "audio"
	StepTrigger   = "trigger"
	StepObserver  = "observer"
)

// FlameDisplay shows or hides the candle flames.
type FlameDisplay interface {
	SetLit(lit bool)
}

// Emitter is the particle effect; *confetti.Field implements it.
type Emitter interface {
	Start(mode confetti.Mode)
	Stop()
}

// Session is an open audio session; *audio.Session implements it.
type Session interface {
	PlayMelody(m audio.Melody) audio.Report
	Prime() audio.Outcome
	Close() error
}

// SessionOpener creates a fresh audio session.
type SessionOpener func() (Session, error)

// Track is an optional recorded song played alongside the melody.
type Track interface {
	Restart() error
	Pause()
}

// Stopper is anything the controller must stop on reset, such as a
// microphone listener.
type Stopper interface {
	Stop()
}

// AudioOpener adapts a graph factory to a SessionOpener.
func AudioOpener(factory audio.GraphFactory) SessionOpener {
	return func() (Session, error) {
		s, err := audio.OpenSession(factory)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Options wires a Controller to its collaborators. Every field is optional.
type Options struct {
	Flames    FlameDisplay
	Particles Emitter
	OpenAudio SessionOpener
	Melody    audio.Melody  // defaults to audio.HappyBirthday()
	Mode      confetti.Mode // defaults to confetti.ModeContinuous
	Song      Track
}

// Controller runs the candle state machine. It is not safe for concurrent
// use; drive it from the frame thread.
type Controller struct {
	opts      Options
	state     State
	session   Session
	trigger   Stopper
	observers []func(State)
	closed    bool
}

// NewController creates a controller in the Lit state.
func NewController(opts Options) *Controller {
	if opts.Melody == nil {
		opts.Melody = audio.HappyBirthday()
	}
	if opts.Mode == confetti.ModeNone {
		opts.Mode = confetti.ModeContinuous
	}
	return &Controller{opts: opts, state: Lit}
}

// State returns the current candle state.
func (c *Controller) State() State {
	return c.state
}

// Session returns the live audio session, or nil.
func (c *Controller) Session() Session {
	return c.session
}

// OnChange registers fn to run after every state change.
func (c *Controller) OnChange(fn func(State)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// Attach hands s to the controller; it is stopped on reset and on Close.
// A previously attached Stopper is stopped first.
func (c *Controller) Attach(s Stopper) {
	if c.trigger != nil && c.trigger != s {
		c.trigger.Stop()
	}
	c.trigger = s
}

// Prime opens the audio session if needed and plays an inaudible blip so the
// backend unlocks on the current user gesture.
func (c *Controller) Prime() audio.Outcome {
	if c.closed {
		return audio.OutcomeAbsorbed
	}
	s, err := c.ensureSession()
	if err != nil {
		common.Debug("[celebration] prime skipped:", err)
		return audio.OutcomeAbsorbed
	}
	return s.Prime()
}

// Extinguish blows the candles out: flames off, melody, particles, song.
// It is a no-op unless the candles are lit.
func (c *Controller) Extinguish() Transition {
	if c.closed || c.state != Lit {
		return Transition{From: c.state, To: c.state}
	}
	c.state = Extinguished
	t := Transition{From: Lit, To: Extinguished, Changed: true}

	t.run(StepFlames, func() error {
		if c.opts.Flames != nil {
			c.opts.Flames.SetLit(false)
		}
		return nil
	})
	t.run(StepMelody, c.playMelody)
	t.run(StepParticles, func() error {
		if c.opts.Particles != nil {
			c.opts.Particles.Start(c.opts.Mode)
		}
		return nil
	})
	t.run(StepSong, func() error {
		if c.opts.Song != nil {
			return c.opts.Song.Restart()
		}
		return nil
	})
	c.notify(&t)

	c.log(t)
	return t
}

// Reset relights the candles and releases everything Extinguish started.
// It is a no-op unless the candles are out.
func (c *Controller) Reset() Transition {
	if c.closed || c.state != Extinguished {
		return Transition{From: c.state, To: c.state}
	}
	c.state = Lit
	t := Transition{From: Extinguished, To: Lit, Changed: true}

	t.run(StepFlames, func() error {
		if c.opts.Flames != nil {
			c.opts.Flames.SetLit(true)
		}
		return nil
	})
	c.teardown(&t)
	c.notify(&t)

	c.log(t)
	return t
}

// Close tears everything down regardless of state, for page navigation or
// process exit. Later calls to Extinguish and Reset are no-ops.
func (c *Controller) Close() Transition {
	if c.closed {
		return Transition{From: c.state, To: c.state}
	}
	c.closed = true
	t := Transition{From: c.state, To: c.state}
	c.teardown(&t)
	common.Debug("[celebration] closed")
	return t
}

// Closed reports whether Close has run.
func (c *Controller) Closed() bool {
	return c.closed
}

func (c *Controller) teardown(t *Transition) {
	t.run(StepParticles, func() error {
		if c.opts.Particles != nil {
			c.opts.Particles.Stop()
		}
		return nil
	})
	t.run(StepAudio, c.closeSession)
	t.run(StepTrigger, func() error {
		if c.trigger != nil {
			tr := c.trigger
			c.trigger = nil
			tr.Stop()
		}
		return nil
	})
	t.run(StepSong, func() error {
		if c.opts.Song != nil {
			c.opts.Song.Pause()
		}
		return nil
	})
}

func (c *Controller) ensureSession() (Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	if c.opts.OpenAudio == nil {
		return nil, ErrNoAudio
	}
	s, err := c.opts.OpenAudio()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoAudio
	}
	c.session = s
	return s, nil
}

func (c *Controller) playMelody() error {
	s, err := c.ensureSession()
	if err != nil {
		return err
	}
	report := s.PlayMelody(c.opts.Melody)
	if report.Absorbed > 0 {
		return fmt.Errorf("%d of %d notes absorbed", report.Absorbed, len(report.Notes))
	}
	return nil
}

// closeSession drops the session before closing it so a failing Close
// still leaves nothing to reuse.
func (c *Controller) closeSession() error {
	if c.session == nil {
		return nil
	}
	s := c.session
	c.session = nil
	return s.Close()
}

func (c *Controller) notify(t *Transition) {
	state := c.state
	for _, fn := range c.observers {
		t.run(StepObserver, func() error {
			fn(state)
			return nil
		})
	}
}

func (c *Controller) log(t Transition) {
	if t.OK() {
		common.Debug("[celebration]", t.String())
		return
	}
	common.DebugWarn("[celebration]", t.String(), t.Err())
}
