//go:build js
// +build js

package main

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/candle-celebration/common"
	"github.com/simukka/candle-celebration/web"
)

func main() {
	common.SetSink(web.ConsoleSink{})

	doc := js.Global.Get("document")
	app := web.Mount(doc)

	// Expose a small API for the page and for manual testing
	js.Global.Set("CandleCelebration", map[string]interface{}{
		"extinguish": func() string {
			return app.Controller.Extinguish().String()
		},
		"reset": func() string {
			return app.Controller.Reset().String()
		},
		"listen": func() {
			app.Listen()
		},
		"state": func() string {
			return app.Controller.State().String()
		},
	})

	select {}
}
