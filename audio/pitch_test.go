package audio

import (
	"errors"
	"math"
	"testing"
)

func TestFrequency_ReferencePitches(t *testing.T) {
	if got := Frequency("A4"); got != 440.0 {
		t.Errorf("Expected A4 == 440.0, got %f", got)
	}
	if got := Frequency("A5"); got != 880.0 {
		t.Errorf("Expected A5 == 880.0, got %f", got)
	}
	if got := Frequency("C4"); math.Abs(got-261.63) > 0.01 {
		t.Errorf("Expected C4 ~ 261.63, got %f", got)
	}
}

func TestFrequency_TwelveTone(t *testing.T) {
	tests := []struct {
		note     string
		expected float64
	}{
		{"G4", 392.00},
		{"B4", 493.88},
		{"C5", 523.25},
		{"D5", 587.33},
		{"E5", 659.26},
		{"F5", 698.46},
		{"G5", 783.99},
		{"C#5", 554.37},
		{"A#3", 233.08},
		{"C0", 16.35},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			if got := Frequency(tt.note); math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("Expected %s ~ %.2f, got %f", tt.note, tt.expected, got)
			}
		})
	}
}

func TestFrequency_MalformedFallsBack(t *testing.T) {
	for _, name := range []string{"H9", "", "A", "a4", "A44", "Ab4", "#A4", "A#", "C##4", "G-1", " A4"} {
		if got := Frequency(name); got != 440.0 {
			t.Errorf("Expected fallback 440 for %q, got %f", name, got)
		}
	}
}

func TestParseNote(t *testing.T) {
	n, err := ParseNote("F#3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n.Letter != 'F' || !n.Sharp || n.Octave != 3 {
		t.Errorf("Unexpected parse result %+v", n)
	}
	if n.Semitone() != 6 {
		t.Errorf("Expected semitone 6, got %d", n.Semitone())
	}
	if n.String() != "F#3" {
		t.Errorf("Expected round-trip name F#3, got %s", n.String())
	}

	if _, err := ParseNote("X1"); !errors.Is(err, ErrMalformedNote) {
		t.Errorf("Expected ErrMalformedNote, got %v", err)
	}
}
