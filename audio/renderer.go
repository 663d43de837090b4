package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
)

var errForeignNode = errors.New("audio: node belongs to another graph")

// Renderer is a software Graph. Its clock advances only as samples are
// rendered, which makes it usable both as a real-time source (see the
// speaker package) and as an offline renderer.
type Renderer struct {
	mu         sync.Mutex
	sampleRate int
	frame      int64
	state      ContextState
	oscs       []*softOsc
	created    int
	dest       *softDest
}

// NewRenderer creates a running software graph.
func NewRenderer(sampleRate int) *Renderer {
	if sampleRate <= 0 {
		sampleRate = AudioConfig.SampleRate
	}
	r := &Renderer{sampleRate: sampleRate, state: StateRunning}
	r.dest = &softDest{owner: r}
	return r
}

// SampleRate returns frames per second.
func (r *Renderer) SampleRate() int {
	return r.sampleRate
}

func (r *Renderer) CurrentTime() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.now()
}

func (r *Renderer) now() float64 {
	return float64(r.frame) / float64(r.sampleRate)
}

func (r *Renderer) State() ContextState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Suspend stops the clock until Resume.
func (r *Renderer) Suspend() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateClosed {
		return ErrClosed
	}
	r.state = StateSuspended
	return nil
}

func (r *Renderer) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateClosed {
		return ErrClosed
	}
	r.state = StateRunning
	return nil
}

// Close rejects new nodes and drops oscillators that have not started yet.
// Oscillators already sounding keep rendering until their stop time.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateClosed {
		return nil
	}
	r.state = StateClosed
	now := r.now()
	live := r.oscs[:0]
	for _, o := range r.oscs {
		if o.started && o.startAt <= now {
			live = append(live, o)
		}
	}
	r.oscs = live
	return nil
}

// Drained reports whether a closed renderer has nothing left to play.
func (r *Renderer) Drained() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == StateClosed && len(r.oscs) == 0
}

// Voices returns the number of oscillators not yet finished.
func (r *Renderer) Voices() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.oscs)
}

// Created returns how many oscillators were ever created.
func (r *Renderer) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

func (r *Renderer) CreateOscillator(wave Waveform, frequency float64) (Oscillator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateClosed {
		return nil, ErrClosed
	}
	o := &softOsc{owner: r, wave: wave, frequency: frequency, stopAt: math.Inf(1)}
	r.oscs = append(r.oscs, o)
	r.created++
	return o, nil
}

func (r *Renderer) CreateGain() (Gain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateClosed {
		return nil, ErrClosed
	}
	return &softGain{owner: r, param: &softParam{defaultValue: 1}}, nil
}

func (r *Renderer) Destination() Node {
	return r.dest
}

// Render mixes the next len(out) mono frames. A suspended renderer writes
// silence without advancing its clock.
func (r *Renderer) Render(out []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range out {
		out[i] = 0
	}
	if r.state == StateSuspended {
		return
	}

	sr := float64(r.sampleRate)
	for i := range out {
		t := float64(r.frame+int64(i)) / sr
		var sum float64
		for _, o := range r.oscs {
			if !o.started || t < o.startAt || t >= o.stopAt {
				continue
			}
			amp, ok := o.chainGain(t)
			if ok {
				sum += o.sample() * amp
			}
			o.phase += o.frequency / sr
			o.phase -= math.Floor(o.phase)
		}
		out[i] = float32(sum)
	}
	r.frame += int64(len(out))

	end := r.now()
	live := r.oscs[:0]
	for _, o := range r.oscs {
		if o.stopAt > end {
			live = append(live, o)
		}
	}
	r.oscs = live
}

// Advance renders and discards the given number of seconds.
func (r *Renderer) Advance(seconds float64) {
	n := int(seconds * float64(r.sampleRate))
	buf := make([]float32, 1024)
	for n > 0 {
		chunk := len(buf)
		if n < chunk {
			chunk = n
		}
		r.Render(buf[:chunk])
		n -= chunk
	}
}

// Read streams float32 little-endian mono PCM. It returns io.EOF once a
// closed renderer has drained.
func (r *Renderer) Read(p []byte) (int, error) {
	if r.Drained() {
		return 0, io.EOF
	}
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	buf := make([]float32, frames)
	r.Render(buf)
	for i, s := range buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * 4, nil
}

type softDest struct {
	owner *Renderer
}

func (d *softDest) Connect(Node) error {
	return errors.New("audio: destination has no outputs")
}

type softOsc struct {
	owner     *Renderer
	wave      Waveform
	frequency float64
	phase     float64
	startAt   float64
	stopAt    float64
	started   bool
	out       Node
}

func (o *softOsc) Connect(dst Node) error {
	if !o.owner.owns(dst) {
		return errForeignNode
	}
	o.out = dst
	return nil
}

func (o *softOsc) Start(at float64) {
	o.owner.mu.Lock()
	defer o.owner.mu.Unlock()
	o.started = true
	o.startAt = at
}

func (o *softOsc) Stop(at float64) {
	o.owner.mu.Lock()
	defer o.owner.mu.Unlock()
	o.stopAt = at
}

func (o *softOsc) sample() float64 {
	p := o.phase
	switch o.wave {
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveSawtooth:
		return 2*p - 1
	case WaveTriangle:
		return 1 - 4*math.Abs(p-0.5)
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// chainGain multiplies gains along the output chain; ok is false when the
// chain never reaches the destination.
func (o *softOsc) chainGain(t float64) (float64, bool) {
	amp := 1.0
	node := o.out
	for depth := 0; depth < 16; depth++ {
		switch n := node.(type) {
		case *softDest:
			return amp, true
		case *softGain:
			amp *= n.param.valueAt(t)
			node = n.out
		default:
			return 0, false
		}
	}
	return 0, false
}

type softGain struct {
	owner *Renderer
	param *softParam
	out   Node
}

func (g *softGain) Connect(dst Node) error {
	if !g.owner.owns(dst) {
		return errForeignNode
	}
	g.out = dst
	return nil
}

func (g *softGain) Gain() Param {
	return lockedParam{owner: g.owner, p: g.param}
}

func (r *Renderer) owns(n Node) bool {
	switch v := n.(type) {
	case *softDest:
		return v.owner == r
	case *softGain:
		return v.owner == r
	case *softOsc:
		return v.owner == r
	}
	return false
}

type paramEvent struct {
	ramp  bool
	value float64
	at    float64
}

// softParam follows the AudioParam automation rules for setValueAtTime and
// exponentialRampToValueAtTime.
type softParam struct {
	defaultValue float64
	events       []paramEvent
}

func (p *softParam) insert(e paramEvent) {
	i := len(p.events)
	for i > 0 && p.events[i-1].at > e.at {
		i--
	}
	p.events = append(p.events, paramEvent{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
}

func (p *softParam) valueAt(t float64) float64 {
	prevValue, prevAt := p.defaultValue, 0.0
	for _, e := range p.events {
		if e.at <= t {
			prevValue, prevAt = e.value, e.at
			continue
		}
		if !e.ramp {
			return prevValue
		}
		if prevValue == 0 || e.value == 0 || (prevValue > 0) != (e.value > 0) || e.at <= prevAt {
			return prevValue
		}
		frac := (t - prevAt) / (e.at - prevAt)
		return prevValue * math.Pow(e.value/prevValue, frac)
	}
	return prevValue
}

type lockedParam struct {
	owner *Renderer
	p     *softParam
}

func (l lockedParam) SetValueAtTime(value, at float64) {
	l.owner.mu.Lock()
	defer l.owner.mu.Unlock()
	l.p.insert(paramEvent{value: value, at: at})
}

func (l lockedParam) ExponentialRampToValueAtTime(value, at float64) {
	l.owner.mu.Lock()
	defer l.owner.mu.Unlock()
	l.p.insert(paramEvent{ramp: true, value: value, at: at})
}
