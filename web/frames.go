//go:build js
// +build js

package web

import "github.com/gopherjs/gopherjs/js"

// AnimationFrames is a common.FrameScheduler on requestAnimationFrame.
type AnimationFrames struct{}

func (AnimationFrames) RequestFrame(cb func(timestamp float64)) int {
	return js.Global.Call("requestAnimationFrame", cb).Int()
}

func (AnimationFrames) CancelFrame(id int) {
	js.Global.Call("cancelAnimationFrame", id)
}
