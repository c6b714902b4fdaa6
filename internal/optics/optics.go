// Package optics computes depth-of-field limits from physical camera
// parameters using the thin-lens approximation. All distances are in
// meters; focal length and sensor dimensions are accepted in millimeters
// and converted here, in one place.
package optics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidIntrinsics reports camera parameters the model cannot work
// with (non-positive focal length or f-stop).
var ErrInvalidIntrinsics = errors.New("optics: invalid intrinsics")

// saturationThreshold is the margin below the hyperfocal distance at
// which the far limit is considered unbounded and saturates to the far
// clip distance. Empirical constant, kept for compatibility.
const saturationThreshold = 0.01

// minApertureRadius guards the radius→f-number division. Radii at or
// below this are treated as a closed aperture.
const minApertureRadius = 1e-5

// ApertureMode selects how the aperture is specified.
type ApertureMode int

const (
	// ApertureFStop specifies the aperture as an f-number.
	ApertureFStop ApertureMode = iota
	// ApertureRadius specifies the aperture as a physical radius in meters.
	ApertureRadius
)

// Aperture is a camera aperture in one of two modes.
type Aperture struct {
	Mode   ApertureMode
	FStop  float64 // f-number, used when Mode == ApertureFStop
	Radius float64 // meters, used when Mode == ApertureRadius
}

// FNumber returns the effective f-number. In radius mode the conversion
// is N = f / (2r) with f in meters. A near-zero radius returns sentinel,
// standing in for an infinitely large f-number; callers pass the far
// clip distance to match the historical behavior.
func (a Aperture) FNumber(focalLengthMm, sentinel float64) float64 {
	if a.Mode != ApertureRadius {
		return a.FStop
	}
	if a.Radius <= minApertureRadius {
		return sentinel
	}
	return (focalLengthMm / 1000) / (2 * a.Radius)
}

// Intrinsics are the immutable camera parameters of one evaluation.
type Intrinsics struct {
	FocalLength  float64 // mm
	SensorWidth  float64 // mm
	SensorHeight float64 // mm
	ClipStart    float64 // meters
	ClipEnd      float64 // meters
	Aperture     Aperture
}

// Validate rejects intrinsics the optical model would divide by.
func (in Intrinsics) Validate() error {
	if in.FocalLength <= 0 {
		return fmt.Errorf("%w: focal length %.3fmm", ErrInvalidIntrinsics, in.FocalLength)
	}
	if in.Aperture.Mode == ApertureFStop && in.Aperture.FStop <= 0 {
		return fmt.Errorf("%w: f-stop %.3f", ErrInvalidIntrinsics, in.Aperture.FStop)
	}
	if in.SensorWidth <= 0 || in.SensorHeight <= 0 {
		return fmt.Errorf("%w: sensor %.1fx%.1fmm", ErrInvalidIntrinsics, in.SensorWidth, in.SensorHeight)
	}
	if in.ClipStart < 0 || in.ClipEnd <= in.ClipStart {
		return fmt.Errorf("%w: clip range [%.3f, %.3f]", ErrInvalidIntrinsics, in.ClipStart, in.ClipEnd)
	}
	return nil
}

// CircleOfConfusion returns the blur diameter limit in millimeters,
// derived from the sensor diagonal by the classical d/1500 rule.
func (in Intrinsics) CircleOfConfusion() float64 {
	return math.Sqrt(in.SensorWidth*in.SensorWidth+in.SensorHeight*in.SensorHeight) / 1500
}

// Limits is the depth-of-field envelope for one focus distance. All
// fields are finite; Far saturates to the far clip distance when focus
// reaches the hyperfocal distance.
type Limits struct {
	Hyperfocal float64
	Near       float64
	Far        float64
}

// Depth returns the total depth of field Far - Near.
func (l Limits) Depth() float64 { return l.Far - l.Near }

// InFront returns the portion of the field in front of the focus plane.
func (l Limits) InFront(focusDistance float64) float64 { return focusDistance - l.Near }

// Behind returns the portion of the field behind the focus plane.
func (l Limits) Behind(focusDistance float64) float64 { return l.Far - focusDistance }

// ComputeLimits evaluates the thin-lens model at the given focus
// distance (meters, measured along the camera's view axis). The result
// always satisfies 0 <= Near <= focusDistance <= Far.
func ComputeLimits(in Intrinsics, focusDistance float64) (Limits, error) {
	if err := in.Validate(); err != nil {
		return Limits{}, err
	}
	f := in.FocalLength / 1000
	n := in.Aperture.FNumber(in.FocalLength, in.ClipEnd)
	c := in.CircleOfConfusion()

	// a = f² / (N·c), with c converted mm→m. Equals H - f.
	a := (f * f) / (n * c / 1000)
	h := a + f

	d := focusDistance
	lim := Limits{Hyperfocal: h}
	lim.Near = (a * d) / (a + (d - f))
	if lim.Near < 0 {
		lim.Near = 0
	}
	if lim.Near > d {
		lim.Near = d
	}
	if h-d < saturationThreshold {
		// Focus at or beyond hyperfocal: everything out to the clip
		// plane is acceptably sharp.
		lim.Far = in.ClipEnd
	} else {
		lim.Far = (a * d) / (a - (d - f))
	}
	if lim.Far < d {
		lim.Far = d
	}
	return lim, nil
}
