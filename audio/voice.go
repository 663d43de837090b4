package audio

import (
	"fmt"

	"github.com/simukka/candle-celebration/common"
)

// Outcome reports what happened to a single note request.
type Outcome int

const (
	OutcomeScheduled Outcome = iota
	OutcomeAbsorbed
)

func (o Outcome) String() string {
	if o == OutcomeScheduled {
		return "scheduled"
	}
	return "absorbed"
}

// ToneVoice renders notes as oscillator+gain pairs on a shared graph.
// Overlapping calls are independent; each pair is fire-and-forget.
type ToneVoice struct {
	graph Graph
	cfg   Config
}

// NewToneVoice creates a voice on graph using AudioConfig. A nil graph is
// allowed; every note is then absorbed.
func NewToneVoice(graph Graph) *ToneVoice {
	return &ToneVoice{graph: graph, cfg: AudioConfig}
}

// Play schedules a note startOffset seconds after the graph's current time.
func (v *ToneVoice) Play(frequency, startOffset, duration float64) Outcome {
	if v.graph == nil {
		return v.absorb(ErrUnavailable)
	}
	return v.Schedule(v.graph.CurrentTime(), frequency, startOffset, duration)
}

// Schedule places a note at anchor+startOffset on the graph clock.
func (v *ToneVoice) Schedule(anchor, frequency, startOffset, duration float64) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = v.absorb(fmt.Errorf("panic: %v", r))
		}
	}()

	if v.graph == nil {
		return v.absorb(ErrUnavailable)
	}
	if v.graph.State() == StateClosed {
		return v.absorb(ErrClosed)
	}
	if duration <= 0 {
		duration = v.cfg.NoteDuration
	}
	if startOffset < 0 {
		startOffset = 0
	}

	osc, err := v.graph.CreateOscillator(v.cfg.Waveform, frequency)
	if err != nil {
		return v.absorb(err)
	}
	gain, err := v.graph.CreateGain()
	if err != nil {
		return v.absorb(err)
	}
	if err := osc.Connect(gain); err != nil {
		return v.absorb(err)
	}
	if err := gain.Connect(v.graph.Destination()); err != nil {
		return v.absorb(err)
	}

	start := anchor + startOffset
	attackEnd := start + v.cfg.AttackTime
	end := start + duration
	if end <= attackEnd {
		end = attackEnd + v.cfg.AttackTime
	}

	g := gain.Gain()
	g.SetValueAtTime(v.cfg.FloorGain, start)
	g.ExponentialRampToValueAtTime(v.cfg.PeakGain, attackEnd)
	g.ExponentialRampToValueAtTime(v.cfg.FloorGain, end)

	osc.Start(start)
	osc.Stop(end + v.cfg.ReleaseTail)
	return OutcomeScheduled
}

// Prime plays an inaudible blip so browsers unlock output on the current
// user gesture.
func (v *ToneVoice) Prime() (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = v.absorb(fmt.Errorf("panic: %v", r))
		}
	}()

	if v.graph == nil {
		return v.absorb(ErrUnavailable)
	}
	osc, err := v.graph.CreateOscillator(WaveSine, v.cfg.FallbackFrequency)
	if err != nil {
		return v.absorb(err)
	}
	gain, err := v.graph.CreateGain()
	if err != nil {
		return v.absorb(err)
	}
	if err := osc.Connect(gain); err != nil {
		return v.absorb(err)
	}
	if err := gain.Connect(v.graph.Destination()); err != nil {
		return v.absorb(err)
	}
	now := v.graph.CurrentTime()
	gain.Gain().SetValueAtTime(v.cfg.PrimeGain, now)
	osc.Start(now)
	osc.Stop(now + v.cfg.PrimeDuration)
	return OutcomeScheduled
}

func (v *ToneVoice) absorb(err error) Outcome {
	common.Debug("[audio] note absorbed:", err)
	return OutcomeAbsorbed
}
