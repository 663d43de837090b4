package audio

import (
	"github.com/simukka/candle-celebration/common"
)

// Voice schedules a single note relative to an anchor on the graph clock.
type Voice interface {
	Schedule(anchor, frequency, startOffset, duration float64) Outcome
}

// ScheduledNote records one note handed to the voice.
type ScheduledNote struct {
	Note          string
	Frequency     float64
	Offset        float64
	AbsoluteStart float64
	Outcome       Outcome
}

// Report summarizes a Play call.
type Report struct {
	ClockStart float64
	Resumed    bool
	Notes      []ScheduledNote
	Absorbed   int
}

// Scheduled returns how many notes reached the graph.
func (r Report) Scheduled() int {
	return len(r.Notes) - r.Absorbed
}

// Sequencer schedules a melody ahead of time against the graph clock.
type Sequencer struct {
	graph Graph
	voice Voice
}

// NewSequencer creates a sequencer feeding voice. graph may be nil, in which
// case no resume is attempted.
func NewSequencer(graph Graph, voice Voice) *Sequencer {
	return &Sequencer{graph: graph, voice: voice}
}

// Play hands every event to the voice with the same anchor, clockStart, so
// the time spent inside this loop never shifts later notes.
func (s *Sequencer) Play(m Melody, clockStart float64) Report {
	report := Report{ClockStart: clockStart, Notes: make([]ScheduledNote, 0, len(m))}
	report.Resumed = s.resume()

	for _, e := range m {
		freq := Frequency(e.Note)
		outcome := OutcomeAbsorbed
		if s.voice != nil {
			outcome = s.voice.Schedule(clockStart, freq, e.Offset, e.Duration)
		}
		if outcome == OutcomeAbsorbed {
			report.Absorbed++
		}
		report.Notes = append(report.Notes, ScheduledNote{
			Note:          e.Note,
			Frequency:     freq,
			Offset:        e.Offset,
			AbsoluteStart: clockStart + e.Offset,
			Outcome:       outcome,
		})
	}

	common.Debugf("[audio] melody scheduled: %d notes, %d absorbed, start=%.3f",
		len(m), report.Absorbed, clockStart)
	return report
}

// resume wakes a suspended graph. Failure is logged and ignored.
func (s *Sequencer) resume() (resumed bool) {
	if s.graph == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			common.DebugWarn("[audio] resume panicked:", r)
			resumed = false
		}
	}()
	if s.graph.State() != StateSuspended {
		return false
	}
	if err := s.graph.Resume(); err != nil {
		common.DebugWarn("[audio] resume failed:", err)
		return false
	}
	return true
}
