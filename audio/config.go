package audio

// Config holds the voice and sequencing tunables.
type Config struct {
	// Envelope
	PeakGain    float64 // Gain reached at the end of the attack
	FloorGain   float64 // Near-zero start/end gain (exponential ramps cannot hit 0)
	AttackTime  float64 // Seconds from note start to peak
	ReleaseTail float64 // Seconds the oscillator keeps running after the decay

	// Timbre
	Waveform Waveform

	// Melody
	NoteDuration      float64 // Default duration for canonical melody notes
	FallbackFrequency float64 // Returned for malformed note names

	// Priming
	PrimeGain     float64 // Inaudible gain for the unlock blip
	PrimeDuration float64 // Seconds

	// Offline rendering
	SampleRate int
	RenderTail float64 // Seconds of silence appended after the last note
}

// AudioConfig is the active configuration.
var AudioConfig = Config{
	PeakGain:    0.16,
	FloorGain:   0.0001,
	AttackTime:  0.02,
	ReleaseTail: 0.02,

	Waveform: WaveTriangle,

	NoteDuration:      0.44,
	FallbackFrequency: 440,

	PrimeGain:     0.00001,
	PrimeDuration: 0.01,

	SampleRate: 44100,
	RenderTail: 0.5,
}
