package audio

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedNote is returned by ParseNote for names outside [A-G]#?[0-9].
var ErrMalformedNote = errors.New("audio: malformed note name")

// Note is a 12-TET pitch: letter, optional sharp, single-digit octave.
type Note struct {
	Letter byte
	Sharp  bool
	Octave int
}

var letterSemitones = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// ParseNote parses names such as "A4" or "C#5".
func ParseNote(name string) (Note, error) {
	if len(name) != 2 && len(name) != 3 {
		return Note{}, fmt.Errorf("%w: %q", ErrMalformedNote, name)
	}
	if _, ok := letterSemitones[name[0]]; !ok {
		return Note{}, fmt.Errorf("%w: %q", ErrMalformedNote, name)
	}
	n := Note{Letter: name[0]}
	rest := name[1:]
	if len(rest) == 2 {
		if rest[0] != '#' {
			return Note{}, fmt.Errorf("%w: %q", ErrMalformedNote, name)
		}
		n.Sharp = true
		rest = rest[1:]
	}
	if rest[0] < '0' || rest[0] > '9' {
		return Note{}, fmt.Errorf("%w: %q", ErrMalformedNote, name)
	}
	n.Octave = int(rest[0] - '0')
	return n, nil
}

// Semitone returns the pitch class, C=0 through B=11 (B# yields 12).
func (n Note) Semitone() int {
	s := letterSemitones[n.Letter]
	if n.Sharp {
		s++
	}
	return s
}

// Frequency returns the equal-tempered frequency relative to A4 = 440 Hz.
func (n Note) Frequency() float64 {
	fromA4 := n.Semitone() - 9 + (n.Octave-4)*12
	if fromA4 == 0 {
		return 440
	}
	return 440 * math.Pow(2, float64(fromA4)/12)
}

func (n Note) String() string {
	if n.Sharp {
		return fmt.Sprintf("%c#%d", n.Letter, n.Octave)
	}
	return fmt.Sprintf("%c%d", n.Letter, n.Octave)
}

// Frequency resolves a note name to Hz. Malformed names resolve to
// AudioConfig.FallbackFrequency instead of failing.
func Frequency(name string) float64 {
	n, err := ParseNote(name)
	if err != nil {
		return AudioConfig.FallbackFrequency
	}
	return n.Frequency()
}
