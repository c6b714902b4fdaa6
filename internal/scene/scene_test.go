package scene

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"dofscope/internal/optics"
	"dofscope/internal/overlay"
)

// TestLoadStudioScene exercises the JSON loader and defaulting against
// the fixture document.
func TestLoadStudioScene(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "studio.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Cameras) != 2 || len(s.Objects) != 2 {
		t.Fatalf("got %d cameras, %d objects; want 2 and 2", len(s.Cameras), len(s.Objects))
	}

	main := s.Camera("main")
	if main == nil {
		t.Fatal("camera \"main\" missing")
	}
	in := main.Intrinsics()
	if in.FocalLength != 50 || in.ClipEnd != 1000 {
		t.Errorf("main intrinsics %+v not matching document", in)
	}
	if in.Aperture.Mode != optics.ApertureFStop || in.Aperture.FStop != 2.8 {
		t.Errorf("main aperture %+v, want f/2.8", in.Aperture)
	}

	// "detail" omits sensor and clip: full-frame defaults apply, and its
	// radius-mode aperture survives the round trip.
	detail := s.Camera("detail")
	if detail == nil {
		t.Fatal("camera \"detail\" missing")
	}
	din := detail.Intrinsics()
	if din.SensorWidth != 36 || din.SensorHeight != 24 {
		t.Errorf("detail sensor %.0fx%.0f, want defaulted 36x24", din.SensorWidth, din.SensorHeight)
	}
	if din.Aperture.Mode != optics.ApertureRadius || din.Aperture.Radius != 0.012 {
		t.Errorf("detail aperture %+v, want radius 0.012", din.Aperture)
	}
	if _, ok := s.FocusSpec(detail).(overlay.TargetFocus); !ok {
		t.Errorf("detail focus spec %T, want target focus on \"prop\"", s.FocusSpec(detail))
	}
}

// TestParseRejectsBadDocuments covers decode and validation failures.
func TestParseRejectsBadDocuments(t *testing.T) {
	if _, err := Parse([]byte("{")); err == nil {
		t.Error("malformed JSON accepted")
	}
	if _, err := Parse([]byte(`{"cameras": [], "objects": []}`)); !errors.Is(err, ErrEmptyScene) {
		t.Errorf("empty document error %v, want ErrEmptyScene", err)
	}
	bad := []byte(`{"cameras": [{"name": "c", "lens_mm": -50}]}`)
	if _, err := Parse(bad); !errors.Is(err, optics.ErrInvalidIntrinsics) {
		t.Errorf("negative lens error %v, want ErrInvalidIntrinsics", err)
	}
}

// TestActiveCameraSelection checks the active-object-then-scene-camera
// fallback chain.
func TestActiveCameraSelection(t *testing.T) {
	s := Default()
	cam, ok := s.ActiveCamera()
	if !ok || cam.Name != "camera" {
		t.Fatalf("ActiveCamera = %v, %v; want the default camera", cam, ok)
	}

	// Active names a plain object: fall back to the scene camera.
	s.Active = "subject"
	cam, ok = s.ActiveCamera()
	if !ok || cam.Name != "camera" {
		t.Errorf("fallback ActiveCamera = %v, %v; want scene camera", cam, ok)
	}

	// Neither resolves to a camera.
	s.SceneCamera = ""
	if _, ok := s.ActiveCamera(); ok {
		t.Error("ActiveCamera found a camera in a camera-less selection")
	}
}

// TestBuildOverlayWritesBackLimits verifies the display triple lands on
// the scene after a successful build.
func TestBuildOverlayWritesBackLimits(t *testing.T) {
	s := Default()
	res, err := s.BuildOverlay(overlay.DefaultStyle())
	if err != nil {
		t.Fatalf("BuildOverlay: %v", err)
	}
	if len(res.Primitives) == 0 {
		t.Fatal("no primitives for the default scene")
	}
	if !s.LimitsValid {
		t.Fatal("limits write-back not marked valid")
	}
	if s.Limits[0] != res.Distance || s.Limits[1] != res.Limits.Near || s.Limits[2] != res.Limits.Far {
		t.Errorf("write-back %v does not match result %+v", s.Limits, res)
	}
	if !(s.Limits[1] <= s.Limits[0] && s.Limits[0] <= s.Limits[2]) {
		t.Errorf("write-back triple %v not ordered near <= d <= far", s.Limits)
	}
}

// TestBuildOverlayNoCamera checks the empty "nothing to draw" result:
// zero primitives, no error, unset limits.
func TestBuildOverlayNoCamera(t *testing.T) {
	s := &Scene{
		Objects: []Object{{Name: "cube"}},
		Active:  "cube",
	}
	s.LimitsValid = true // stale from a previous evaluation
	res, err := s.BuildOverlay(overlay.DefaultStyle())
	if err != nil {
		t.Fatalf("BuildOverlay: %v", err)
	}
	if len(res.Primitives) != 0 {
		t.Errorf("got %d primitives without a camera, want 0", len(res.Primitives))
	}
	if res.Camera != "" || res.Distance != 0 {
		t.Errorf("result not empty: %+v", res)
	}
	if s.LimitsValid {
		t.Error("stale limits left valid with no camera")
	}
}

// TestBuildOverlayTargetFocus checks a focus target drives the resolved
// distance through the projection path.
func TestBuildOverlayTargetFocus(t *testing.T) {
	s := Default()
	s.Cameras[0].FocusTarget = "subject"
	// Camera at (0,1,6) facing -Z; subject at (0,1,2) projects 4 units
	// down the axis, plus the 0.1 clip start offset.
	res, err := s.BuildOverlay(overlay.DefaultStyle())
	if err != nil {
		t.Fatalf("BuildOverlay: %v", err)
	}
	if math.Abs(res.Distance-4.1) > 1e-9 {
		t.Errorf("resolved distance %.6f, want 4.1", res.Distance)
	}
}
