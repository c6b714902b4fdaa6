package optics

import (
	"errors"
	"math"
	"testing"
)

func fullFrame50mm() Intrinsics {
	return Intrinsics{
		FocalLength:  50,
		SensorWidth:  36,
		SensorHeight: 24,
		ClipStart:    0.1,
		ClipEnd:      1000,
		Aperture:     Aperture{Mode: ApertureFStop, FStop: 2.8},
	}
}

// TestComputeLimitsRegression pins the 50mm f/2.8 full-frame baseline at
// a 3m focus distance.
func TestComputeLimitsRegression(t *testing.T) {
	lim, err := ComputeLimits(fullFrame50mm(), 3.0)
	if err != nil {
		t.Fatalf("ComputeLimits: %v", err)
	}
	if lim.Near < 2.7 || lim.Near > 2.95 {
		t.Errorf("near limit %.4f outside [2.7, 2.95]", lim.Near)
	}
	if lim.Far < 3.05 || lim.Far > 3.4 {
		t.Errorf("far limit %.4f outside [3.05, 3.4]", lim.Far)
	}
	if lim.Hyperfocal < 30 || lim.Hyperfocal > 35 {
		t.Errorf("hyperfocal %.4f outside [30, 35]", lim.Hyperfocal)
	}
}

// TestLimitsOrdering checks 0 <= near <= d <= far over a parameter grid,
// including focus distances below the focal length and beyond hyperfocal.
func TestLimitsOrdering(t *testing.T) {
	fstops := []float64{0.95, 1.8, 2.8, 8, 22}
	focals := []float64{18, 35, 50, 85, 200}
	dists := []float64{0.01, 0.1, 0.5, 3, 10, 50, 500, 2000}
	for _, n := range fstops {
		for _, f := range focals {
			for _, d := range dists {
				in := fullFrame50mm()
				in.FocalLength = f
				in.Aperture.FStop = n
				lim, err := ComputeLimits(in, d)
				if err != nil {
					t.Fatalf("f=%v N=%v d=%v: %v", f, n, d, err)
				}
				if math.IsNaN(lim.Near) || math.IsInf(lim.Near, 0) ||
					math.IsNaN(lim.Far) || math.IsInf(lim.Far, 0) {
					t.Fatalf("f=%v N=%v d=%v: non-finite limits %+v", f, n, d, lim)
				}
				if lim.Near < 0 || lim.Near > d {
					t.Errorf("f=%v N=%v d=%v: near %.4f outside [0, %v]", f, n, d, lim.Near, d)
				}
				if lim.Far < d {
					t.Errorf("f=%v N=%v d=%v: far %.4f < focus distance", f, n, d, lim.Far)
				}
			}
		}
	}
}

// TestFarLimitSaturation verifies the far limit equals ClipEnd exactly
// once the focus distance crosses hyperfocal - 0.01, with no NaN or
// negative excursion on either side.
func TestFarLimitSaturation(t *testing.T) {
	in := fullFrame50mm()
	lim, err := ComputeLimits(in, 1.0)
	if err != nil {
		t.Fatalf("ComputeLimits: %v", err)
	}
	h := lim.Hyperfocal

	for _, d := range []float64{h - 0.009, h, h + 1, h * 2} {
		lim, err := ComputeLimits(in, d)
		if err != nil {
			t.Fatalf("d=%v: %v", d, err)
		}
		if lim.Far != in.ClipEnd {
			t.Errorf("d=%v: far %.4f, want ClipEnd %.1f", d, lim.Far, in.ClipEnd)
		}
	}
	// Just below the threshold the analytic formula still applies.
	lim, err = ComputeLimits(in, h-0.02)
	if err != nil {
		t.Fatalf("ComputeLimits: %v", err)
	}
	if lim.Far == in.ClipEnd {
		t.Errorf("d just below threshold: far saturated prematurely")
	}
	if lim.Far < 0 || math.IsNaN(lim.Far) {
		t.Errorf("d just below threshold: far %.4f invalid", lim.Far)
	}
}

// TestNearLimitMonotonic checks the near limit strictly increases with
// focus distance while below hyperfocal.
func TestNearLimitMonotonic(t *testing.T) {
	in := fullFrame50mm()
	prev := -1.0
	for d := 0.5; d < 25; d += 0.5 {
		lim, err := ComputeLimits(in, d)
		if err != nil {
			t.Fatalf("d=%v: %v", d, err)
		}
		if d >= lim.Hyperfocal {
			break
		}
		if lim.Near <= prev {
			t.Fatalf("d=%v: near %.5f not greater than previous %.5f", d, lim.Near, prev)
		}
		prev = lim.Near
	}
}

// TestApertureNarrowsField verifies a smaller f-number (wider aperture)
// produces a narrower depth of field at a fixed focus distance.
func TestApertureNarrowsField(t *testing.T) {
	in := fullFrame50mm()
	const d = 3.0
	prevDepth := -1.0
	for _, n := range []float64{1.4, 2.8, 5.6, 11} {
		in.Aperture.FStop = n
		lim, err := ComputeLimits(in, d)
		if err != nil {
			t.Fatalf("N=%v: %v", n, err)
		}
		if prevDepth >= 0 && lim.Depth() <= prevDepth {
			t.Errorf("N=%v: depth %.5f not wider than %.5f at the previous stop", n, lim.Depth(), prevDepth)
		}
		prevDepth = lim.Depth()
	}
}

// TestApertureRadiusMode checks the radius→f-number conversion and the
// closed-aperture sentinel fallback.
func TestApertureRadiusMode(t *testing.T) {
	a := Aperture{Mode: ApertureRadius, Radius: 0.005}
	// N = (50/1000) / (2 * 0.005) = 5
	if n := a.FNumber(50, 1000); math.Abs(n-5) > 1e-12 {
		t.Errorf("FNumber = %v, want 5", n)
	}

	a.Radius = 0 // division guard
	if n := a.FNumber(50, 1000); n != 1000 {
		t.Errorf("closed aperture FNumber = %v, want sentinel 1000", n)
	}

	// A closed aperture yields an enormous f-number, hence a tiny
	// hyperfocal distance and a saturated far limit at any focus.
	in := fullFrame50mm()
	in.Aperture = Aperture{Mode: ApertureRadius, Radius: 1e-9}
	lim, err := ComputeLimits(in, 3.0)
	if err != nil {
		t.Fatalf("ComputeLimits: %v", err)
	}
	if lim.Far != in.ClipEnd {
		t.Errorf("closed aperture: far %.4f, want ClipEnd", lim.Far)
	}
}

// TestValidateRejectsDegenerate covers the InvalidIntrinsics taxonomy.
func TestValidateRejectsDegenerate(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Intrinsics)
	}{
		{"zero focal length", func(in *Intrinsics) { in.FocalLength = 0 }},
		{"negative f-stop", func(in *Intrinsics) { in.Aperture.FStop = -1 }},
		{"zero sensor width", func(in *Intrinsics) { in.SensorWidth = 0 }},
		{"inverted clip range", func(in *Intrinsics) { in.ClipEnd = in.ClipStart }},
	}
	for _, tc := range cases {
		in := fullFrame50mm()
		tc.mod(&in)
		if _, err := ComputeLimits(in, 3.0); !errors.Is(err, ErrInvalidIntrinsics) {
			t.Errorf("%s: error %v, want ErrInvalidIntrinsics", tc.name, err)
		}
	}
}
