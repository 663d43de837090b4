package audio

import (
	"errors"
	"testing"
)

func TestOpenSession_Failures(t *testing.T) {
	if _, err := OpenSession(nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable for nil factory, got %v", err)
	}

	boom := errors.New("no audio device")
	_, err := OpenSession(func() (Graph, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped factory error, got %v", err)
	}

	_, err = OpenSession(func() (Graph, error) { panic("AudioContext is not a constructor") })
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected panicking factory to map to ErrUnavailable, got %v", err)
	}

	_, err = OpenSession(func() (Graph, error) { return nil, nil })
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected nil graph to map to ErrUnavailable, got %v", err)
	}
}

func TestSession_FreshPerOpen(t *testing.T) {
	factory := func() (Graph, error) { return newRecordingGraph(), nil }

	a, err := OpenSession(factory)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := OpenSession(factory)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if a.ID() == b.ID() {
		t.Error("Expected distinct session IDs")
	}
	if a.Graph() == b.Graph() {
		t.Error("Expected distinct graphs")
	}
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	g := newRecordingGraph()
	s := NewSession(g)

	if err := s.Close(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Unexpected error on second close: %v", err)
	}
	if g.closes != 1 {
		t.Errorf("Expected graph closed once, got %d", g.closes)
	}
	if !s.Closed() {
		t.Error("Expected session to report closed")
	}
	if s.Now() != 0 {
		t.Errorf("Expected closed session clock 0, got %f", s.Now())
	}
}

func TestSession_ClosedAbsorbsMelody(t *testing.T) {
	g := newRecordingGraph()
	s := NewSession(g)
	s.Close()

	report := s.PlayMelody(HappyBirthday())

	if report.Absorbed != 25 || report.Scheduled() != 0 {
		t.Errorf("Expected all 25 absorbed, got %d (scheduled %d)", report.Absorbed, report.Scheduled())
	}
	if len(g.oscs) != 0 {
		t.Errorf("Expected no oscillators after close, got %d", len(g.oscs))
	}
	if s.Prime() != OutcomeAbsorbed {
		t.Error("Expected prime on closed session to be absorbed")
	}
}

func TestSession_PlayMelodyAnchorsAtNow(t *testing.T) {
	g := newRecordingGraph()
	g.now = 7.25
	s := NewSession(g)

	report := s.PlayMelody(HappyBirthday())

	if report.ClockStart != 7.25 {
		t.Errorf("Expected clock start 7.25, got %f", report.ClockStart)
	}
	if report.Scheduled() != 25 {
		t.Errorf("Expected 25 scheduled, got %d", report.Scheduled())
	}
	if !floatNear(g.oscs[24].start, 7.25+14.4, 1e-9) {
		t.Errorf("Expected last note at %f, got %f", 7.25+14.4, g.oscs[24].start)
	}
}

func TestSession_PrimeResumes(t *testing.T) {
	g := newRecordingGraph()
	g.state = StateSuspended
	s := NewSession(g)

	if s.Prime() != OutcomeScheduled {
		t.Error("Expected prime to schedule")
	}
	if g.resumes != 1 {
		t.Errorf("Expected one resume, got %d", g.resumes)
	}
}
