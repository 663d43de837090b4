package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// RenderMelody plays m on a fresh software graph and returns the mono
// samples, including AudioConfig.RenderTail seconds of tail.
func RenderMelody(m Melody, sampleRate int) ([]float32, Report, error) {
	if err := m.Validate(); err != nil {
		return nil, Report{}, fmt.Errorf("render melody: %w", err)
	}
	r := NewRenderer(sampleRate)
	s := NewSession(r)
	report := s.PlayMelody(m)

	length := m.Length() + AudioConfig.ReleaseTail + AudioConfig.RenderTail
	out := make([]float32, int(length*float64(r.SampleRate())))
	r.Render(out)
	if err := s.Close(); err != nil {
		return nil, report, err
	}
	return out, report, nil
}

// WriteWAV encodes mono float samples as 16-bit PCM WAV.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * 32767)
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}
