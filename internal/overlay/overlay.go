// Package overlay turns a camera's depth-of-field limits into world-space
// draw primitives: the focus band along the view axis, limit circles, and
// the focus cross marker. It also resolves target-point focus picks into
// distances along the view axis.
package overlay

import (
	"errors"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl64"

	"dofscope/internal/optics"
)

// ErrDegenerateProjection reports a zero-length camera forward vector
// during target-point resolution. Callers skip drawing for the frame.
var ErrDegenerateProjection = errors.New("overlay: degenerate camera forward vector")

// localForward is the camera's view axis in its own frame.
var localForward = mgl64.Vec3{0, 0, -1}

// Pose is a camera's world transform with any scale stripped.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Normalized returns the pose with a unit rotation quaternion,
// discarding any scale carried in from the host's world matrix.
func (p Pose) Normalized() Pose {
	p.Rotation = p.Rotation.Normalize()
	return p
}

// Forward returns the world-space view direction.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Rotation.Rotate(localForward)
}

// At returns the world-space point dist scene units down the view axis.
func (p Pose) At(dist float64) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(mgl64.Vec3{0, 0, -dist}))
}

// Right and Up span the camera's local XY plane in world space.
func (p Pose) Right() mgl64.Vec3 { return p.Rotation.Rotate(mgl64.Vec3{1, 0, 0}) }
func (p Pose) Up() mgl64.Vec3    { return p.Rotation.Rotate(mgl64.Vec3{0, 1, 0}) }

// FocusSpec is one evaluation's focus input: either a scalar distance
// along the view axis or a world-space target point.
type FocusSpec interface {
	isFocus()
}

// ScalarFocus is a direct focus distance in scene units.
type ScalarFocus float64

// TargetFocus is a world-space point whose projection onto the view
// axis drives the focus distance.
type TargetFocus mgl64.Vec3

func (ScalarFocus) isFocus() {}
func (TargetFocus) isFocus() {}

// Style is the visual configuration, owned by the host. The zero value
// draws nothing useful; start from DefaultStyle.
type Style struct {
	FocusColor      fauxgl.Color // in-focus band
	DimColor        fauxgl.Color // out-of-focus clip-range remainder
	MarkerRadius    float64      // limit circle radius; <= 0 disables circles
	Segments        int          // limit circle vertex count
	FillMarkers     bool
	DrawFocusMarker bool
	Overlay         bool // draw above other scene elements
}

// DefaultStyle mirrors the original viewport colors: faint white for the
// out-of-focus range, strong green for the band in focus.
func DefaultStyle() Style {
	return Style{
		FocusColor:      fauxgl.Color{R: 0, G: 1, B: 0, A: 0.8},
		DimColor:        fauxgl.Color{R: 1, G: 1, B: 1, A: 0.1},
		MarkerRadius:    0.1,
		Segments:        16,
		DrawFocusMarker: true,
		Overlay:         true,
	}
}

// Primitive is one transient draw command. Implementations are Segment
// and Polygon; nothing outlives the call that produced it.
type Primitive interface {
	isPrimitive()
}

// Segment is a single world-space line segment.
type Segment struct {
	A, B  mgl64.Vec3
	Color fauxgl.Color
}

// Polygon is an ordered world-space polyline; closed rings repeat the
// first vertex as the last.
type Polygon struct {
	Points []mgl64.Vec3
	Filled bool
	Color  fauxgl.Color
}

func (Segment) isPrimitive() {}
func (Polygon) isPrimitive() {}

// ResolveFocusDistance reduces a FocusSpec to a distance along the view
// axis. Target points are projected onto the infinite forward ray; the
// distance is measured from the camera position to the projection, plus
// the clip start offset so the result lines up with the near clip
// reference plane. Scalar focus passes through, clamped to >= 0.
func ResolveFocusDistance(pose Pose, clipStart float64, focus FocusSpec) (float64, error) {
	switch f := focus.(type) {
	case ScalarFocus:
		d := float64(f)
		if d < 0 {
			d = 0
		}
		return d, nil
	case TargetFocus:
		fwd := pose.Forward()
		if fwd.Len() < 1e-12 {
			return 0, ErrDegenerateProjection
		}
		fwd = fwd.Normalize()
		w := mgl64.Vec3(f).Sub(pose.Position)
		closest := pose.Position.Add(fwd.Mul(w.Dot(fwd)))
		return closest.Sub(pose.Position).Len() + clipStart, nil
	default:
		return 0, nil
	}
}

// BuildLimitGeometry resolves the focus input, evaluates the optical
// model, and emits the overlay primitives in world space. Primitives are
// rebuilt from scratch on every call; the builder keeps no state.
func BuildLimitGeometry(pose Pose, in optics.Intrinsics, focus FocusSpec, style Style) (optics.Limits, float64, []Primitive, error) {
	// Guard before normalizing: Normalize rescales a degenerate rotation
	// into a valid one (a zero quaternion becomes the identity), masking
	// the collapsed view axis.
	if pose.Forward().Len() < 1e-12 {
		return optics.Limits{}, 0, nil, ErrDegenerateProjection
	}
	pose = pose.Normalized()

	d, err := ResolveFocusDistance(pose, in.ClipStart, focus)
	if err != nil {
		return optics.Limits{}, 0, nil, err
	}
	lim, err := optics.ComputeLimits(in, d)
	if err != nil {
		return optics.Limits{}, 0, nil, err
	}

	start := pose.At(in.ClipStart)
	end := pose.At(in.ClipEnd)
	nearPt := pose.At(lim.Near)
	farPt := pose.At(lim.Far)

	prims := make([]Primitive, 0, 8)
	prims = append(prims,
		Segment{A: farPt, B: end, Color: style.DimColor},
		Segment{A: nearPt, B: start, Color: style.DimColor},
		Segment{A: farPt, B: nearPt, Color: style.FocusColor},
	)

	if style.MarkerRadius > 0 {
		segs := style.Segments
		if segs <= 0 {
			segs = DefaultStyle().Segments
		}
		prims = append(prims,
			limitCircle(pose, lim.Near, style.MarkerRadius, segs, style.FillMarkers, style.FocusColor),
			limitCircle(pose, lim.Far, style.MarkerRadius, segs, style.FillMarkers, style.FocusColor),
		)
		if style.DrawFocusMarker {
			prims = append(prims, focusCross(pose, d, style.MarkerRadius, style.FocusColor)...)
		}
	}

	return lim, d, prims, nil
}

// limitCircle builds a closed circle polygon in the camera's local XY
// plane at the given depth, using the incremental rotation recurrence
// x' = cosθ·x − sinθ·y, y' = sinθ·x + cosθ·y.
func limitCircle(pose Pose, depth, radius float64, segments int, filled bool, col fauxgl.Color) Polygon {
	center := pose.At(depth)
	right := pose.Right()
	up := pose.Up()

	theta := 2 * math.Pi / float64(segments)
	cos, sin := math.Cos(theta), math.Sin(theta)

	pts := make([]mgl64.Vec3, 0, segments+1)
	x, y := radius, 0.0
	for i := 0; i < segments; i++ {
		pts = append(pts, center.Add(right.Mul(x)).Add(up.Mul(y)))
		x, y = cos*x-sin*y, sin*x+cos*y
	}
	pts = append(pts, pts[0]) // close the ring
	return Polygon{Points: pts, Filled: filled, Color: col}
}

// focusCross builds the 2D cross marker at the focus plane, sized
// relative to the limit circle radius.
func focusCross(pose Pose, depth, radius float64, col fauxgl.Color) []Primitive {
	center := pose.At(depth)
	arm := radius * 0.5
	right := pose.Right().Mul(arm)
	up := pose.Up().Mul(arm)
	return []Primitive{
		Segment{A: center.Sub(right), B: center.Add(right), Color: col},
		Segment{A: center.Sub(up), B: center.Add(up), Color: col},
	}
}
