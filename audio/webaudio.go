//go:build js
// +build js

package audio

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"
)

// WebGraph is a Graph backed by a browser AudioContext.
type WebGraph struct {
	ctx *js.Object
}

// NewWebGraph creates an AudioContext, falling back to webkitAudioContext.
func NewWebGraph() (g Graph, err error) {
	defer recoverJS(&err)

	audioCtx := js.Global.Get("AudioContext")
	if audioCtx == nil || audioCtx == js.Undefined {
		audioCtx = js.Global.Get("webkitAudioContext")
	}
	if audioCtx == nil || audioCtx == js.Undefined {
		return nil, ErrUnavailable
	}
	return &WebGraph{ctx: audioCtx.New()}, nil
}

func (g *WebGraph) CurrentTime() float64 {
	return g.ctx.Get("currentTime").Float()
}

func (g *WebGraph) State() ContextState {
	return ContextState(g.ctx.Get("state").String())
}

// Resume fires AudioContext.resume and swallows a rejected promise.
func (g *WebGraph) Resume() (err error) {
	defer recoverJS(&err)
	promise := g.ctx.Call("resume")
	if promise != nil && promise != js.Undefined {
		promise.Call("catch", func(*js.Object) {})
	}
	return nil
}

func (g *WebGraph) Close() (err error) {
	defer recoverJS(&err)
	if g.State() == StateClosed {
		return nil
	}
	if g.ctx.Get("close") == js.Undefined {
		return nil
	}
	promise := g.ctx.Call("close")
	if promise != nil && promise != js.Undefined {
		promise.Call("catch", func(*js.Object) {})
	}
	return nil
}

func (g *WebGraph) CreateOscillator(wave Waveform, frequency float64) (o Oscillator, err error) {
	defer recoverJS(&err)
	osc := g.ctx.Call("createOscillator")
	osc.Set("type", wave.String())
	osc.Get("frequency").Set("value", frequency)
	return &webOsc{webNode{osc}}, nil
}

func (g *WebGraph) CreateGain() (n Gain, err error) {
	defer recoverJS(&err)
	return &webGain{webNode{g.ctx.Call("createGain")}}, nil
}

func (g *WebGraph) Destination() Node {
	return &webNode{g.ctx.Get("destination")}
}

type webNode struct {
	obj *js.Object
}

func (n *webNode) Connect(dst Node) (err error) {
	defer recoverJS(&err)
	target, ok := dst.(interface{ jsObject() *js.Object })
	if !ok {
		return errForeignNode
	}
	n.obj.Call("connect", target.jsObject())
	return nil
}

func (n *webNode) jsObject() *js.Object {
	return n.obj
}

type webOsc struct {
	webNode
}

func (o *webOsc) Start(at float64) {
	o.obj.Call("start", at)
}

func (o *webOsc) Stop(at float64) {
	o.obj.Call("stop", at)
}

type webGain struct {
	webNode
}

func (g *webGain) Gain() Param {
	return webParam{g.obj.Get("gain")}
}

type webParam struct {
	obj *js.Object
}

func (p webParam) SetValueAtTime(value, at float64) {
	p.obj.Call("setValueAtTime", value, at)
}

func (p webParam) ExponentialRampToValueAtTime(value, at float64) {
	p.obj.Call("exponentialRampToValueAtTime", value, at)
}

// recoverJS turns a thrown JavaScript exception into an error.
func recoverJS(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(*js.Error); ok {
		*err = fmt.Errorf("%w: %s", ErrUnavailable, jsErr.Error())
		return
	}
	*err = fmt.Errorf("%w: %v", ErrUnavailable, r)
}
