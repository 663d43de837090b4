//go:build js
// +build js

package web

import (
	"strconv"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/candle-celebration/confetti"
)

// CanvasSurface draws particles on a full-window 2D canvas. The backing
// store is sized in device pixels and the context scaled, so callers work
// in CSS pixels.
type CanvasSurface struct {
	canvas *js.Object
	ctx    *js.Object
	width  float64
	height float64
	dpr    float64
}

// NewCanvasSurface sizes canvas to the window.
func NewCanvasSurface(canvas *js.Object) *CanvasSurface {
	s := &CanvasSurface{
		canvas: canvas,
		ctx:    canvas.Call("getContext", "2d"),
	}
	s.Fit()
	return s
}

// Fit re-applies window size and device pixel ratio and returns the new
// size in CSS pixels.
func (s *CanvasSurface) Fit() (w, h float64) {
	win := js.Global.Get("window")
	dpr := win.Get("devicePixelRatio").Float()
	if dpr <= 0 {
		dpr = 1
	}
	w = win.Get("innerWidth").Float()
	h = win.Get("innerHeight").Float()

	s.canvas.Set("width", backingSize(w, dpr))
	s.canvas.Set("height", backingSize(h, dpr))
	style := s.canvas.Get("style")
	style.Set("width", cssPixels(w))
	style.Set("height", cssPixels(h))

	// Resizing the backing store resets the transform.
	s.ctx.Call("setTransform", dpr, 0, 0, dpr, 0, 0)
	s.width, s.height, s.dpr = w, h, dpr
	return w, h
}

func (s *CanvasSurface) Size() (float64, float64) {
	return s.width, s.height
}

func (s *CanvasSurface) Clear() {
	s.ctx.Call("clearRect", 0, 0, s.width, s.height)
}

func (s *CanvasSurface) FillRect(t confetti.Transform, w, h float64, color string) {
	s.ctx.Call("save")
	s.ctx.Call("translate", t.X, t.Y)
	s.ctx.Call("rotate", t.Angle)
	s.ctx.Set("fillStyle", color)
	s.ctx.Call("fillRect", -w/2, -h/2, w, h)
	s.ctx.Call("restore")
}

func (s *CanvasSurface) FillPath(t confetti.Transform, p confetti.Path, color string) {
	s.ctx.Call("save")
	s.ctx.Call("translate", t.X, t.Y)
	s.ctx.Call("rotate", t.Angle)
	s.ctx.Set("fillStyle", color)
	s.ctx.Call("beginPath")
	for _, seg := range p {
		switch seg.Kind {
		case confetti.MoveTo:
			s.ctx.Call("moveTo", seg.To.X, seg.To.Y)
		case confetti.CubicTo:
			s.ctx.Call("bezierCurveTo", seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.To.X, seg.To.Y)
		case confetti.ClosePath:
			s.ctx.Call("closePath")
		}
	}
	s.ctx.Call("fill")
	s.ctx.Call("restore")
}

func backingSize(css, dpr float64) int {
	return int(css*dpr + 0.5)
}

func cssPixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
