//go:build js
// +build js

package web

import (
	"context"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/candle-celebration/audio"
	"github.com/simukka/candle-celebration/celebration"
	"github.com/simukka/candle-celebration/confetti"
)

// Element IDs the page must provide. Only the canvas is required.
const (
	CanvasID   = "confetti"
	CakeID     = "cake-image-index"
	OverlayID  = "flame-overlay"
	SubtitleID = "birthday-subtitle"
	MessageID  = "birthday-message"
	PlayID     = "playBtn"
	ResetID    = "resetBtn"
	MicID      = "micBtn"
	SongID     = "birthday-song-index"
)

// App is the browser celebration: a controller wired to the DOM and a canvas
// particle field.
type App struct {
	Controller *celebration.Controller
	Field      *confetti.Field
	Surface    *CanvasSurface

	doc    *js.Object
	frames AnimationFrames
	cancel context.CancelFunc
}

// Mount wires the page. It panics if the canvas is missing.
func Mount(doc *js.Object) *App {
	canvas := byID(doc, CanvasID)
	if !present(canvas) {
		panic("canvas element not found")
	}

	a := &App{doc: doc}
	a.Surface = NewCanvasSurface(canvas)
	a.Field = confetti.NewField(a.Surface, a.frames, nil)

	opts := celebration.Options{
		Flames:    &Flames{cake: byID(doc, CakeID), overlay: byID(doc, OverlayID)},
		Particles: a.Field,
		OpenAudio: celebration.AudioOpener(audio.NewWebGraph),
	}
	if song := byID(doc, SongID); present(song) {
		opts.Song = &Song{el: song}
	}
	a.Controller = celebration.NewController(opts)

	p := &Presenter{subtitle: byID(doc, SubtitleID), message: byID(doc, MessageID)}
	a.Controller.OnChange(p.Observe)

	a.SetupInputHandlers()
	return a
}

// SetupInputHandlers registers the page event listeners.
func (a *App) SetupInputHandlers() {
	if cake := byID(a.doc, CakeID); present(cake) {
		cake.Call("addEventListener", "click", func(*js.Object) {
			a.Controller.Extinguish()
		})
		cake.Call("addEventListener", "keydown", func(event *js.Object) {
			if !isActivationKey(event.Get("key").String()) {
				return
			}
			event.Call("preventDefault")
			a.Controller.Extinguish()
		})
	}

	onClick(a.doc, PlayID, func() {
		// The click is the user gesture that unlocks audio.
		a.Controller.Prime()
		a.Controller.Extinguish()
	})
	onClick(a.doc, ResetID, func() {
		a.Controller.Reset()
	})
	onClick(a.doc, MicID, a.Listen)

	js.Global.Call("addEventListener", "resize", func() {
		w, h := a.Surface.Fit()
		a.Field.Resize(w, h)
	})

	// Release the microphone and audio when the page goes away
	js.Global.Call("addEventListener", "beforeunload", func() {
		a.Close()
	})
}

// Listen asks for the microphone and arms blow detection. A denied
// permission leaves every other trigger working.
func (a *App) Listen() {
	if a.Controller.State() != celebration.Lit {
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	l := celebration.Listen(ctx, Microphone{}, a.frames, a.Controller, celebration.DefaultLoudness)
	a.Controller.Attach(l)
}

// Close tears everything down.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Controller.Close()
}

func onClick(doc *js.Object, id string, fn func()) {
	el := byID(doc, id)
	if !present(el) {
		return
	}
	el.Call("addEventListener", "click", func(*js.Object) {
		fn()
	})
}

// isActivationKey reports whether key blows out the candles.
func isActivationKey(key string) bool {
	switch key {
	case "Enter", " ", "Spacebar":
		return true
	}
	return false
}
