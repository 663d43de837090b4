package confetti

// ShapeKind selects how a particle is drawn.
type ShapeKind int

const (
	ShapeConfetti ShapeKind = iota // rotated rectangle
	ShapeHeart                     // two-bezier silhouette
)

func (k ShapeKind) String() string {
	if k == ShapeHeart {
		return "heart"
	}
	return "confetti"
}

// Mode is the emission mode of a Field.
type Mode int

const (
	ModeNone Mode = iota
	ModeBurst
	ModeContinuous
)

func (m Mode) String() string {
	switch m {
	case ModeBurst:
		return "burst"
	case ModeContinuous:
		return "continuous"
	default:
		return "none"
	}
}

// Particle is one piece of confetti or one heart.
type Particle struct {
	X, Y      float64 // surface pixels
	VX, VY    float64 // pixels per frame
	Rotation  float64 // degrees
	Spin      float64 // degrees per frame
	Size      float64
	Color     string
	Shape     ShapeKind
	Life      int // frames lived, burst only
	MaxLife   int // 0 means recycle forever
	PoolIndex int // index in pool for swap-and-pop
}

// Expired reports whether a burst particle has outlived its life.
func (p *Particle) Expired() bool {
	return p.MaxLife > 0 && p.Life >= p.MaxLife
}
