package celebration

import (
	"errors"
	"fmt"
	"strings"
)

// State is the candle state. There are exactly two.
type State int

const (
	Lit State = iota
	Extinguished
)

func (s State) String() string {
	if s == Extinguished {
		return "extinguished"
	}
	return "lit"
}

var (
	// ErrNoAudio is recorded when the controller has no way to open audio.
	ErrNoAudio = errors.New("celebration: no audio backend")
	// ErrNoMicrophone is reported when no input device can be acquired.
	ErrNoMicrophone = errors.New("celebration: no microphone")
)

// StepError is one failed side effect of a transition.
type StepError struct {
	Step string
	Err  error
}

func (e StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e StepError) Unwrap() error {
	return e.Err
}

// Transition describes what a call to Extinguish or Reset did. Failed steps
// never stop the remaining ones; they are collected here instead.
type Transition struct {
	From     State
	To       State
	Changed  bool
	Failures []StepError
}

// OK reports whether every step succeeded.
func (t Transition) OK() bool {
	return len(t.Failures) == 0
}

// Err joins the step failures, or returns nil.
func (t Transition) Err() error {
	if len(t.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(t.Failures))
	for i, f := range t.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Failed reports whether the named step failed.
func (t Transition) Failed(step string) bool {
	for _, f := range t.Failures {
		if f.Step == step {
			return true
		}
	}
	return false
}

func (t Transition) String() string {
	if !t.Changed {
		return fmt.Sprintf("%s (no-op)", t.From)
	}
	if t.OK() {
		return fmt.Sprintf("%s -> %s", t.From, t.To)
	}
	steps := make([]string, len(t.Failures))
	for i, f := range t.Failures {
		steps[i] = f.Step
	}
	return fmt.Sprintf("%s -> %s (failed: %s)", t.From, t.To, strings.Join(steps, ", "))
}

// run executes one side effect, turning a panic into a StepError.
func (t *Transition) run(step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			t.Failures = append(t.Failures, StepError{Step: step, Err: fmt.Errorf("panic: %v", r)})
		}
	}()
	if err := fn(); err != nil {
		t.Failures = append(t.Failures, StepError{Step: step, Err: err})
	}
}
