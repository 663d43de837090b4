//go:build js
// +build js

package web

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/candle-celebration/common"
)

// ConsoleSink forwards debug lines to the browser console.
type ConsoleSink struct{}

func (ConsoleSink) Log(level common.Level, msg string) {
	console := js.Global.Get("console")
	switch level {
	case common.LevelWarn:
		console.Call("warn", msg)
	case common.LevelError:
		console.Call("error", msg)
	default:
		console.Call("log", msg)
	}
}
