package audio

import "errors"

// recordingGraph captures every call so tests can assert on exact schedules.
type recordingGraph struct {
	now        float64
	state      ContextState
	resumeErr  error
	createErr  error
	resumes    int
	closes     int
	oscs       []*recordingOsc
	gains      []*recordingGain
	panicOnOsc bool
}

func newRecordingGraph() *recordingGraph {
	return &recordingGraph{state: StateRunning}
}

func (g *recordingGraph) CurrentTime() float64 { return g.now }
func (g *recordingGraph) State() ContextState  { return g.state }

func (g *recordingGraph) Resume() error {
	g.resumes++
	if g.resumeErr != nil {
		return g.resumeErr
	}
	g.state = StateRunning
	return nil
}

func (g *recordingGraph) Close() error {
	g.closes++
	g.state = StateClosed
	return nil
}

func (g *recordingGraph) CreateOscillator(wave Waveform, frequency float64) (Oscillator, error) {
	if g.panicOnOsc {
		panic("backend exploded")
	}
	if g.createErr != nil {
		return nil, g.createErr
	}
	o := &recordingOsc{wave: wave, frequency: frequency, start: -1, stop: -1}
	g.oscs = append(g.oscs, o)
	return o, nil
}

func (g *recordingGraph) CreateGain() (Gain, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	gn := &recordingGain{param: &recordingParam{}}
	g.gains = append(g.gains, gn)
	return gn, nil
}

func (g *recordingGraph) Destination() Node { return recordingDest{} }

type recordingDest struct{}

func (recordingDest) Connect(Node) error { return errors.New("destination") }

type recordingOsc struct {
	wave      Waveform
	frequency float64
	start     float64
	stop      float64
	out       Node
}

func (o *recordingOsc) Connect(dst Node) error { o.out = dst; return nil }
func (o *recordingOsc) Start(at float64)       { o.start = at }
func (o *recordingOsc) Stop(at float64)        { o.stop = at }

type recordingGain struct {
	param *recordingParam
	out   Node
}

func (g *recordingGain) Connect(dst Node) error { g.out = dst; return nil }
func (g *recordingGain) Gain() Param            { return g.param }

type paramCall struct {
	ramp  bool
	value float64
	at    float64
}

type recordingParam struct {
	calls []paramCall
}

func (p *recordingParam) SetValueAtTime(value, at float64) {
	p.calls = append(p.calls, paramCall{value: value, at: at})
}

func (p *recordingParam) ExponentialRampToValueAtTime(value, at float64) {
	p.calls = append(p.calls, paramCall{ramp: true, value: value, at: at})
}
