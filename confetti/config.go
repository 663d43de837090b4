package confetti

// Config holds the particle tunables. The numbers shape the look of the
// effect only; nothing else depends on them.
type Config struct {
	// Continuous mode: falling hearts recycled forever.
	ContinuousCount int
	HeartColors     []string
	MinSize         float64
	MaxSize         float64
	MinVX           float64
	MaxVX           float64
	MinVY           float64
	MaxVY           float64
	MaxSpin         float64 // degrees per frame, either direction
	RecycleMargin   float64

	// Burst mode: one-shot confetti thrown from the top third of the screen.
	BurstCount     int
	BurstColors    []string
	BurstMinSpeed  float64
	BurstMaxSpeed  float64
	BurstLift      float64 // extra upward velocity at launch
	BurstMinLife   int     // frames
	BurstMaxLife   int     // frames
	BurstMaxFrames int
	Gravity        float64 // added to vy every frame, burst only
	RectAspect     float64 // confetti height / width

	// Frame timing.
	FrameMillis   float64
	MaxFrameScale float64
}

// FieldConfig is the default particle configuration.
var FieldConfig = Config{
	ContinuousCount: 140,
	HeartColors:     []string{"#ff9bb3", "#ffd1e6", "#ffefef", "#ffc1d9", "#ff7aa2", "#ffb3c1", "#d4567a"},
	MinSize:         6,
	MaxSize:         18,
	MinVX:           -1,
	MaxVX:           1,
	MinVY:           1,
	MaxVY:           4,
	MaxSpin:         3,
	RecycleMargin:   20,

	BurstCount:     160,
	BurstColors:    []string{"#ffd166", "#ef476f", "#06d6a0", "#118ab2", "#ff9bb3", "#f78c6b"},
	BurstMinSpeed:  2,
	BurstMaxSpeed:  9,
	BurstLift:      4,
	BurstMinLife:   90,
	BurstMaxLife:   180,
	BurstMaxFrames: 360,
	Gravity:        0.15,
	RectAspect:     0.6,

	FrameMillis:   1000.0 / 60.0,
	MaxFrameScale: 3,
}
