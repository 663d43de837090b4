//go:build js
// +build js

package web

import (
	"context"
	"errors"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/candle-celebration/celebration"
	"github.com/simukka/candle-celebration/common"
)

// Microphone opens the default input through getUserMedia and feeds it to
// an AnalyserNode on its own AudioContext.
type Microphone struct {
	Bins int
}

type micResult struct {
	stream *js.Object
	err    error
}

func (m Microphone) Open(ctx context.Context) (celebration.InputStream, celebration.Analyser, error) {
	devices := js.Global.Get("navigator").Get("mediaDevices")
	if !present(devices) || !present(devices.Get("getUserMedia")) {
		return nil, nil, celebration.ErrNoMicrophone
	}

	results := make(chan micResult, 1)
	constraints := js.M{"audio": true}
	promise := devices.Call("getUserMedia", constraints)
	promise.Call("then", func(stream *js.Object) {
		results <- micResult{stream: stream}
	}, func(e *js.Object) {
		results <- micResult{err: errors.New("microphone: " + e.Get("name").String())}
	})

	var res micResult
	select {
	case res = <-results:
	case <-ctx.Done():
		// Permission may still be granted later; release the stream then.
		go func() {
			if late := <-results; late.stream != nil {
				stopTracks(late.stream)
			}
		}()
		return nil, nil, ctx.Err()
	}
	if res.err != nil {
		return nil, nil, res.err
	}

	in, err := newInput(res.stream, m.bins())
	if err != nil {
		stopTracks(res.stream)
		return nil, nil, err
	}
	return in, in, nil
}

func (m Microphone) bins() int {
	if m.Bins > 0 {
		return m.Bins
	}
	return celebration.DefaultLoudness.Bins
}

// input is both the InputStream and the Analyser for one capture.
type input struct {
	stream   *js.Object
	ctx      *js.Object
	analyser *js.Object
	data     *js.Object
	bins     int
}

func newInput(stream *js.Object, bins int) (in *input, err error) {
	defer func() {
		if r := recover(); r != nil {
			in, err = nil, celebration.ErrNoMicrophone
		}
	}()

	ctor := js.Global.Get("AudioContext")
	if !present(ctor) {
		ctor = js.Global.Get("webkitAudioContext")
	}
	if !present(ctor) {
		return nil, celebration.ErrNoMicrophone
	}
	ctx := ctor.New()
	analyser := ctx.Call("createAnalyser")
	analyser.Set("fftSize", bins*2)
	ctx.Call("createMediaStreamSource", stream).Call("connect", analyser)

	return &input{
		stream:   stream,
		ctx:      ctx,
		analyser: analyser,
		data:     js.Global.Get("Uint8Array").New(bins),
		bins:     bins,
	}, nil
}

func (in *input) FrequencyData(dst []uint8) []uint8 {
	in.analyser.Call("getByteFrequencyData", in.data)
	if cap(dst) < in.bins {
		dst = make([]uint8, in.bins)
	}
	dst = dst[:in.bins]
	for i := range dst {
		dst[i] = uint8(in.data.Index(i).Int())
	}
	return dst
}

func (in *input) Stop() {
	stopTracks(in.stream)
	if in.ctx.Get("state").String() != "closed" {
		in.ctx.Call("close")
	}
	common.Debug("[web] microphone released")
}

func stopTracks(stream *js.Object) {
	tracks := stream.Call("getTracks")
	for i := 0; i < tracks.Length(); i++ {
		tracks.Index(i).Call("stop")
	}
}
