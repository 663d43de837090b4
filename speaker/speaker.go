// Package speaker plays software audio graphs through the sound card.
package speaker

import (
	"fmt"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/simukka/candle-celebration/audio"
)

// player is the part of *oto.Player the output tracks.
type player interface {
	IsPlaying() bool
	Close() error
}

// Output owns the process-wide oto context. oto allows only one context per
// process, so every session shares it and gets its own player.
type Output struct {
	sampleRate int

	once   sync.Once
	otoCtx *oto.Context
	err    error

	mu      sync.Mutex
	players []player
	closed  bool
}

// New creates an output. The device is opened on first use.
func New(sampleRate int) *Output {
	if sampleRate <= 0 {
		sampleRate = audio.AudioConfig.SampleRate
	}
	return &Output{sampleRate: sampleRate}
}

// SampleRate returns the device rate.
func (o *Output) SampleRate() int {
	return o.sampleRate
}

func (o *Output) open() error {
	o.once.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   o.sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			o.err = fmt.Errorf("failed to create oto context: %w", err)
			return
		}
		<-ready
		o.otoCtx = ctx
		log.Printf("Audio output initialized: %dHz mono", o.sampleRate)
	})
	return o.err
}

// Factory returns a GraphFactory that opens the device on first call and
// streams each new graph through its own player. A closed graph keeps
// playing until its sounding notes have decayed, then its player finishes.
func (o *Output) Factory() audio.GraphFactory {
	return func() (audio.Graph, error) {
		o.mu.Lock()
		closed := o.closed
		o.mu.Unlock()
		if closed {
			return nil, audio.ErrUnavailable
		}
		if err := o.open(); err != nil {
			return nil, fmt.Errorf("%w: %v", audio.ErrUnavailable, err)
		}

		r := audio.NewRenderer(o.sampleRate)
		p := o.otoCtx.NewPlayer(r)
		p.Play()
		o.track(p)
		return r, nil
	}
}

// track remembers p and closes players that have finished.
func (o *Output) track(p player) {
	o.mu.Lock()
	defer o.mu.Unlock()
	live := o.players[:0]
	for _, old := range o.players {
		if old.IsPlaying() {
			live = append(live, old)
			continue
		}
		if err := old.Close(); err != nil {
			log.Printf("Warning: closing finished player: %v", err)
		}
	}
	o.players = append(live, p)
}

// Active returns the number of players still attached.
func (o *Output) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.players)
}

// Close stops every player and suspends the device.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	for _, p := range o.players {
		if err := p.Close(); err != nil {
			log.Printf("Warning: closing player: %v", err)
		}
	}
	o.players = nil
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("suspend audio output: %w", err)
		}
	}
	return nil
}
