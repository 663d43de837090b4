package celebration

import (
	"errors"

	"github.com/simukka/candle-celebration/audio"
	"github.com/simukka/candle-celebration/confetti"
)

type fakeFlames struct {
	calls []bool
}

func (f *fakeFlames) SetLit(lit bool) { f.calls = append(f.calls, lit) }

type fakeEmitter struct {
	starts       []confetti.Mode
	stops        int
	panicOnStart bool
}

func (e *fakeEmitter) Start(mode confetti.Mode) {
	if e.panicOnStart {
		panic("canvas gone")
	}
	e.starts = append(e.starts, mode)
}

func (e *fakeEmitter) Stop() { e.stops++ }

type fakeSession struct {
	plays    int
	primes   int
	closes   int
	absorb   bool
	closeErr error
}

func (s *fakeSession) PlayMelody(m audio.Melody) audio.Report {
	s.plays++
	r := audio.Report{Notes: make([]audio.ScheduledNote, len(m))}
	if s.absorb {
		r.Absorbed = len(m)
	}
	return r
}

func (s *fakeSession) Prime() audio.Outcome {
	s.primes++
	return audio.OutcomeScheduled
}

func (s *fakeSession) Close() error {
	s.closes++
	return s.closeErr
}

// fakeOpener hands out a new fakeSession per call.
type fakeOpener struct {
	sessions []*fakeSession
	err      error
}

func (o *fakeOpener) open() (Session, error) {
	if o.err != nil {
		return nil, o.err
	}
	s := &fakeSession{}
	o.sessions = append(o.sessions, s)
	return s, nil
}

func (o *fakeOpener) plays() int {
	n := 0
	for _, s := range o.sessions {
		n += s.plays
	}
	return n
}

func (o *fakeOpener) closes() int {
	n := 0
	for _, s := range o.sessions {
		n += s.closes
	}
	return n
}

type fakeTrack struct {
	restarts int
	pauses   int
	err      error
}

func (t *fakeTrack) Restart() error {
	t.restarts++
	return t.err
}

func (t *fakeTrack) Pause() { t.pauses++ }

type countingStopper struct {
	stops int
}

func (s *countingStopper) Stop() { s.stops++ }

var errDenied = errors.New("permission denied")
