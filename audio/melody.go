package audio

import (
	"errors"
	"fmt"
)

// Event is one note of a melody. Offset is seconds after the melody start.
type Event struct {
	Note     string
	Offset   float64
	Duration float64
}

// Melody is played in insertion order, but offsets alone decide timing, so
// events may overlap.
type Melody []Event

var (
	errNegativeOffset = errors.New("negative offset")
	errEmptyDuration  = errors.New("non-positive duration")
)

// Validate checks offsets and durations. Note names are not checked; they
// fall back to 440 Hz at play time.
func (m Melody) Validate() error {
	for i, e := range m {
		if e.Offset < 0 {
			return fmt.Errorf("event %d (%s): %w", i, e.Note, errNegativeOffset)
		}
		if e.Duration <= 0 {
			return fmt.Errorf("event %d (%s): %w", i, e.Note, errEmptyDuration)
		}
	}
	return nil
}

// Length returns the time from the melody start to the end of its last note.
func (m Melody) Length() float64 {
	var end float64
	for _, e := range m {
		if t := e.Offset + e.Duration; t > end {
			end = t
		}
	}
	return end
}

type phraseNote struct {
	note   string
	offset float64
}

// Four phrases; the gaps between them are plain offset gaps.
var happyBirthdayPhrases = [][]phraseNote{
	{{"G4", 0}, {"G4", 0.4}, {"A4", 0.9}, {"G4", 1.4}, {"C5", 1.9}, {"B4", 2.4}},
	{{"G4", 3.2}, {"G4", 3.6}, {"A4", 4.1}, {"G4", 4.6}, {"D5", 5.1}, {"C5", 5.6}},
	{{"G4", 7.0}, {"G4", 7.6}, {"G5", 8.2}, {"E5", 8.8}, {"C5", 9.4}, {"B4", 9.9}, {"A4", 10.5}},
	{{"F5", 11.4}, {"F5", 12.0}, {"E5", 12.6}, {"C5", 13.2}, {"D5", 13.8}, {"C5", 14.4}},
}

// HappyBirthday returns the canonical celebration melody.
func HappyBirthday() Melody {
	m := make(Melody, 0, 25)
	for _, phrase := range happyBirthdayPhrases {
		for _, pn := range phrase {
			m = append(m, Event{Note: pn.note, Offset: pn.offset, Duration: AudioConfig.NoteDuration})
		}
	}
	return m
}
