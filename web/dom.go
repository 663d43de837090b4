//go:build js
// +build js

package web

import (
	"errors"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/candle-celebration/celebration"
	"github.com/simukka/candle-celebration/common"
)

// Image sources for the cake, lit and extinguished.
var (
	CakeLitSrc = "assets/Candle1.JPG"
	CakeOutSrc = "assets/Candle2.JPG"
)

// MessageDelayMillis is how long the birthday message waits after the
// candles go out.
var MessageDelayMillis = 300

var errNoSong = errors.New("web: no song element")

// Flames swaps the cake image and toggles the flame overlay.
type Flames struct {
	cake    *js.Object
	overlay *js.Object
}

func (f *Flames) SetLit(lit bool) {
	if present(f.cake) {
		f.cake.Set("src", flameSrc(lit))
	}
	if present(f.overlay) {
		f.overlay.Get("style").Set("display", display(lit))
	}
}

// Presenter reveals the birthday message once the candles are out and
// hides it again on reset.
type Presenter struct {
	subtitle *js.Object
	message  *js.Object
	timer    *js.Object
}

// Observe is registered with Controller.OnChange.
func (p *Presenter) Observe(s celebration.State) {
	p.cancel()
	if s == celebration.Lit {
		fade(p.subtitle, true)
		slide(p.message, false)
		return
	}
	fade(p.subtitle, false)
	p.timer = setTimeout(func() {
		p.timer = nil
		slide(p.message, true)
	}, MessageDelayMillis)
}

func (p *Presenter) cancel() {
	if p.timer != nil {
		clearTimeout(p.timer)
		p.timer = nil
	}
}

var (
	setTimeout = func(fn func(), millis int) *js.Object {
		return js.Global.Call("setTimeout", fn, millis)
	}
	clearTimeout = func(id *js.Object) {
		js.Global.Call("clearTimeout", id)
	}
)

// fade shows or hides el through its opacity so CSS transitions apply.
func fade(el *js.Object, visible bool) {
	if !present(el) {
		return
	}
	el.Get("style").Set("opacity", opacity(visible))
}

// slide drops el into place when visible and lifts it out otherwise.
func slide(el *js.Object, visible bool) {
	if !present(el) {
		return
	}
	style := el.Get("style")
	style.Set("opacity", opacity(visible))
	if visible {
		style.Set("transform", "translateY(0)")
	} else {
		style.Set("transform", "translateY(-50px)")
	}
}

func opacity(visible bool) string {
	if visible {
		return "1"
	}
	return "0"
}

// Song plays a recorded track from an <audio> element.
type Song struct {
	el *js.Object
}

func (s *Song) Restart() (err error) {
	if !present(s.el) {
		return errNoSong
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("web: song playback failed")
		}
	}()
	s.el.Set("currentTime", 0)
	s.el.Set("volume", 1)
	promise := s.el.Call("play")
	if present(promise) {
		promise.Call("catch", func(e *js.Object) {
			common.DebugWarn("[web] song playback rejected:", e)
		})
	}
	return nil
}

func (s *Song) Pause() {
	if !present(s.el) {
		return
	}
	s.el.Call("pause")
	s.el.Set("currentTime", 0)
}

func byID(doc *js.Object, id string) *js.Object {
	return doc.Call("getElementById", id)
}

func present(o *js.Object) bool {
	return o != nil && o != js.Undefined
}

func display(visible bool) string {
	if visible {
		return "block"
	}
	return "none"
}

func flameSrc(lit bool) string {
	if lit {
		return CakeLitSrc
	}
	return CakeOutSrc
}
