//go:build !js
// +build !js

package main

import (
	"flag"
	"log"
	"os"

	"github.com/simukka/candle-celebration/audio"
)

func main() {
	out := flag.String("out", "happy-birthday.wav", "Output WAV file")
	sampleRate := flag.Int("sample-rate", audio.AudioConfig.SampleRate, "Sample rate in Hz")
	flag.Parse()

	samples, report, err := audio.RenderMelody(audio.HappyBirthday(), *sampleRate)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	if err := audio.WriteWAV(f, samples, *sampleRate); err != nil {
		f.Close()
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to close %s: %v", *out, err)
	}

	log.Printf("Wrote %s: %d notes, %.2fs at %dHz",
		*out, report.Scheduled(), float64(len(samples))/float64(*sampleRate), *sampleRate)
}
