package speaker

import (
	"errors"
	"testing"

	"github.com/simukka/candle-celebration/audio"
)

type fakePlayer struct {
	playing bool
	closed  int
}

func (p *fakePlayer) IsPlaying() bool { return p.playing }

func (p *fakePlayer) Close() error {
	p.closed++
	return nil
}

func TestOutput_TrackReapsFinishedPlayers(t *testing.T) {
	o := New(8000)
	done := &fakePlayer{}
	live := &fakePlayer{playing: true}
	o.players = []player{done, live}

	next := &fakePlayer{playing: true}
	o.track(next)

	if o.Active() != 2 {
		t.Errorf("Expected 2 active players, got %d", o.Active())
	}
	if done.closed != 1 || live.closed != 0 {
		t.Errorf("Expected only the finished player closed, got done=%d live=%d", done.closed, live.closed)
	}
}

func TestOutput_CloseIsIdempotent(t *testing.T) {
	o := New(8000)
	p := &fakePlayer{playing: true}
	o.players = []player{p}

	if err := o.Close(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := o.Close(); err != nil {
		t.Fatalf("Unexpected error on second close: %v", err)
	}
	if p.closed != 1 || o.Active() != 0 {
		t.Errorf("Expected player closed once, got %d", p.closed)
	}

	if _, err := o.Factory()(); !errors.Is(err, audio.ErrUnavailable) {
		t.Errorf("Expected closed output to refuse graphs, got %v", err)
	}
}

func TestNew_DefaultSampleRate(t *testing.T) {
	if New(0).SampleRate() != audio.AudioConfig.SampleRate {
		t.Error("Expected default sample rate")
	}
}
