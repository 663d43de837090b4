//go:build !js
// +build !js

package main

import (
	"flag"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simukka/candle-celebration/common"
	"github.com/simukka/candle-celebration/speaker"
	"github.com/simukka/candle-celebration/term"
)

func main() {
	noAudio := flag.Bool("no-audio", false, "Disable sound output")
	seed := flag.Uint("seed", 0, "Particle seed (0 picks one from the clock)")
	logFile := flag.String("log-file", "", "Write debug logs to this file")
	sampleRate := flag.Int("sample-rate", 44100, "Audio sample rate")
	candles := flag.Int("candles", 3, "Number of candles on the cake")
	flag.Parse()

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "celebrate")
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
		common.EnableDebug = false
	}

	s := uint32(*seed)
	if s == 0 {
		s = uint32(time.Now().UnixNano())
	}
	opts := term.Options{Seed: s, Candles: *candles}

	if !*noAudio {
		out := speaker.New(*sampleRate)
		defer out.Close()
		opts.Audio = out.Factory()
	}

	if err := term.Run(opts); err != nil {
		log.Fatalf("Terminal UI failed: %v", err)
	}
}
