package audio

import "errors"

var (
	// ErrClosed is returned by a graph that has been closed.
	ErrClosed = errors.New("audio: context closed")
	// ErrUnavailable is returned when no audio backend can be created.
	ErrUnavailable = errors.New("audio: backend unavailable")
)

// ContextState mirrors the Web Audio AudioContext.state values.
type ContextState string

const (
	StateSuspended ContextState = "suspended"
	StateRunning   ContextState = "running"
	StateClosed    ContextState = "closed"
)

// Waveform is the oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

// String returns the Web Audio OscillatorNode.type name.
func (w Waveform) String() string {
	switch w {
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveTriangle:
		return "triangle"
	default:
		return "sine"
	}
}

// Graph is the audio output graph a session schedules onto. Times are seconds
// on the graph's own clock.
type Graph interface {
	CurrentTime() float64
	State() ContextState
	Resume() error
	Close() error
	CreateOscillator(wave Waveform, frequency float64) (Oscillator, error)
	CreateGain() (Gain, error)
	Destination() Node
}

// Node is anything that can feed another node.
type Node interface {
	Connect(dst Node) error
}

// Param is an automatable value such as a gain.
type Param interface {
	SetValueAtTime(value, at float64)
	ExponentialRampToValueAtTime(value, at float64)
}

// Oscillator is a scheduled tone source.
type Oscillator interface {
	Node
	Start(at float64)
	Stop(at float64)
}

// Gain is an amplitude stage.
type Gain interface {
	Node
	Gain() Param
}

// GraphFactory creates a fresh graph for a new session.
type GraphFactory func() (Graph, error)
