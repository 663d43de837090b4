package audio

import (
	"errors"
	"testing"
	"time"
)

// slowVoice records every call and burns wall-clock time on each one.
type slowVoice struct {
	delay   time.Duration
	anchors []float64
	offsets []float64
	freqs   []float64
}

func (v *slowVoice) Schedule(anchor, frequency, startOffset, duration float64) Outcome {
	time.Sleep(v.delay)
	v.anchors = append(v.anchors, anchor)
	v.offsets = append(v.offsets, startOffset)
	v.freqs = append(v.freqs, frequency)
	return OutcomeScheduled
}

func testMelody(n int) Melody {
	m := make(Melody, n)
	for i := range m {
		m[i] = Event{Note: "G4", Offset: float64(i) * 0.37, Duration: 0.44}
	}
	return m
}

func TestSequencer_OffsetsIndependentOfLoopTime(t *testing.T) {
	r := NewRenderer(8000)
	voice := &slowVoice{delay: 2 * time.Millisecond}
	seq := NewSequencer(r, voice)
	m := testMelody(24)

	report := seq.Play(m, 5)

	if len(voice.offsets) != 24 {
		t.Fatalf("Expected 24 voice calls, got %d", len(voice.offsets))
	}
	for i, e := range m {
		if voice.offsets[i] != e.Offset {
			t.Errorf("Event %d: expected offset %f, got %f", i, e.Offset, voice.offsets[i])
		}
		if voice.anchors[i] != 5 {
			t.Errorf("Event %d: expected anchor 5, got %f", i, voice.anchors[i])
		}
		if report.Notes[i].AbsoluteStart != 5+e.Offset {
			t.Errorf("Event %d: expected absolute start %f, got %f", i, 5+e.Offset, report.Notes[i].AbsoluteStart)
		}
	}
	if report.Scheduled() != 24 {
		t.Errorf("Expected 24 scheduled, got %d", report.Scheduled())
	}
}

func TestSequencer_RealVoiceOnAdvancingClock(t *testing.T) {
	g := newRecordingGraph()
	v := NewToneVoice(g)
	seq := NewSequencer(g, &clockBumpingVoice{graph: g, inner: v})

	seq.Play(HappyBirthday(), 0)

	for i, e := range HappyBirthday() {
		if !floatNear(g.oscs[i].start, e.Offset, 1e-9) {
			t.Errorf("Event %d: expected start %f, got %f", i, e.Offset, g.oscs[i].start)
		}
	}
}

// clockBumpingVoice advances the graph clock before each note, as a real
// backend would while the loop runs.
type clockBumpingVoice struct {
	graph *recordingGraph
	inner *ToneVoice
}

func (c *clockBumpingVoice) Schedule(anchor, frequency, startOffset, duration float64) Outcome {
	c.graph.now += 0.05
	return c.inner.Schedule(anchor, frequency, startOffset, duration)
}

func TestSequencer_ResumesSuspendedGraph(t *testing.T) {
	g := newRecordingGraph()
	g.state = StateSuspended
	seq := NewSequencer(g, NewToneVoice(g))

	report := seq.Play(testMelody(2), 0)

	if g.resumes != 1 || !report.Resumed {
		t.Errorf("Expected one successful resume, got resumes=%d resumed=%v", g.resumes, report.Resumed)
	}
}

func TestSequencer_ProceedsWhenResumeFails(t *testing.T) {
	g := newRecordingGraph()
	g.state = StateSuspended
	g.resumeErr = errors.New("not allowed")
	seq := NewSequencer(g, NewToneVoice(g))

	report := seq.Play(testMelody(3), 0)

	if report.Resumed {
		t.Error("Expected Resumed to be false")
	}
	if len(g.oscs) != 3 {
		t.Errorf("Expected scheduling to proceed, got %d oscillators", len(g.oscs))
	}
}

func TestSequencer_MalformedNotesUseFallback(t *testing.T) {
	voice := &slowVoice{}
	seq := NewSequencer(nil, voice)

	seq.Play(Melody{{Note: "H9", Offset: 0, Duration: 0.2}}, 0)

	if voice.freqs[0] != 440 {
		t.Errorf("Expected fallback 440, got %f", voice.freqs[0])
	}
}

func TestSequencer_NilVoiceAbsorbsEverything(t *testing.T) {
	seq := NewSequencer(nil, nil)
	report := seq.Play(testMelody(4), 0)

	if report.Absorbed != 4 || report.Scheduled() != 0 {
		t.Errorf("Expected 4 absorbed, got %d (scheduled %d)", report.Absorbed, report.Scheduled())
	}
}

func TestHappyBirthday_Shape(t *testing.T) {
	m := HappyBirthday()

	if len(m) != 25 {
		t.Fatalf("Expected 25 events, got %d", len(m))
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Expected canonical melody to validate, got %v", err)
	}
	if m[0].Note != "G4" || m[0].Offset != 0 {
		t.Errorf("Unexpected first event %+v", m[0])
	}
	last := m[len(m)-1]
	if last.Note != "C5" || last.Offset != 14.4 {
		t.Errorf("Unexpected last event %+v", last)
	}
	if !floatNear(m.Length(), 14.84, 1e-9) {
		t.Errorf("Expected length 14.84, got %f", m.Length())
	}
}

func TestMelody_Validate(t *testing.T) {
	if err := (Melody{{Note: "A4", Offset: -1, Duration: 1}}).Validate(); err == nil {
		t.Error("Expected negative offset to fail")
	}
	if err := (Melody{{Note: "A4", Offset: 0, Duration: 0}}).Validate(); err == nil {
		t.Error("Expected zero duration to fail")
	}
}
