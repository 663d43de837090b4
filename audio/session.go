package audio

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/simukka/candle-celebration/common"
)

// Session owns one audio graph for the lifetime of a celebration. It is
// created lazily on the first extinguish and closed on reset.
type Session struct {
	id     uuid.UUID
	graph  Graph
	voice  *ToneVoice
	seq    *Sequencer
	closed bool
}

// OpenSession builds a graph with factory and wraps it.
func OpenSession(factory GraphFactory) (s *Session, err error) {
	if factory == nil {
		return nil, ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
	}()
	graph, err := factory()
	if err != nil {
		return nil, fmt.Errorf("open audio graph: %w", err)
	}
	if graph == nil {
		return nil, ErrUnavailable
	}
	return NewSession(graph), nil
}

// NewSession wraps an existing graph.
func NewSession(graph Graph) *Session {
	voice := NewToneVoice(graph)
	s := &Session{
		id:    uuid.New(),
		graph: graph,
		voice: voice,
		seq:   NewSequencer(graph, voice),
	}
	common.Debug("[audio] session opened", s.id.String())
	return s
}

// ID identifies the session.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Graph returns the underlying graph.
func (s *Session) Graph() Graph {
	return s.graph
}

// Now returns the graph clock, or 0 once closed.
func (s *Session) Now() float64 {
	if s.closed {
		return 0
	}
	return s.graph.CurrentTime()
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	return s.closed
}

// PlayMelody schedules m starting at the graph's current time.
func (s *Session) PlayMelody(m Melody) Report {
	if s.closed {
		r := Report{Notes: make([]ScheduledNote, 0, len(m))}
		for _, e := range m {
			r.Notes = append(r.Notes, ScheduledNote{Note: e.Note, Frequency: Frequency(e.Note), Offset: e.Offset, Outcome: OutcomeAbsorbed})
		}
		r.Absorbed = len(m)
		common.Debug("[audio] melody absorbed by closed session", s.id.String())
		return r
	}
	return s.seq.Play(m, s.Now())
}

// Prime plays an inaudible blip and resumes a suspended graph.
func (s *Session) Prime() Outcome {
	if s.closed {
		return OutcomeAbsorbed
	}
	if s.graph.State() == StateSuspended {
		if err := s.graph.Resume(); err != nil {
			common.DebugWarn("[audio] resume failed:", err)
		}
	}
	return s.voice.Prime()
}

// Close releases the graph. Notes not yet started are dropped with it.
// Calling Close again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	common.Debug("[audio] session closed", s.id.String())
	if err := s.graph.Close(); err != nil {
		return fmt.Errorf("close audio graph: %w", err)
	}
	return nil
}
