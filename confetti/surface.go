package confetti

import "math"

// Transform places a shape: translate to (X, Y), then rotate by Angle radians.
type Transform struct {
	X, Y  float64
	Angle float64
}

// Surface is the 2D target a Field draws on. Coordinates are CSS pixels;
// any device-pixel scaling is the surface's business.
type Surface interface {
	Size() (width, height float64)
	Clear()
	// FillRect fills a w×h rectangle centered on the transform origin.
	FillRect(t Transform, w, h float64, color string)
	FillPath(t Transform, p Path, color string)
}

// SegmentKind is a path command.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	CubicTo
	ClosePath
)

// Segment is one path command. CubicTo uses all three points (two control
// points, then the end point); MoveTo uses only the end point.
type Segment struct {
	Kind   SegmentKind
	C1, C2 Point
	To     Point
}

// Point is a 2D coordinate in shape space.
type Point struct {
	X, Y float64
}

// Path is a closed outline in shape space, centered on the origin.
type Path []Segment

// HeartPath returns a heart of the given size: two mirrored cubic curves
// meeting at the top notch and the bottom tip.
func HeartPath(size float64) Path {
	return Path{
		{Kind: MoveTo, To: Point{0, -size / 2}},
		{Kind: CubicTo, C1: Point{size / 2, -size}, C2: Point{size, -size / 4}, To: Point{0, size / 2}},
		{Kind: CubicTo, C1: Point{-size, -size / 4}, C2: Point{-size / 2, -size}, To: Point{0, -size / 2}},
		{Kind: ClosePath},
	}
}

// Bounds returns the control-point bounding box of the path.
func (p Path) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(pt Point) {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	for _, s := range p {
		switch s.Kind {
		case MoveTo:
			grow(s.To)
		case CubicTo:
			grow(s.C1)
			grow(s.C2)
			grow(s.To)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
