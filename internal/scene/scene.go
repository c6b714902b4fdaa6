// Package scene is the host-side camera and object provider: it loads
// JSON scene documents, selects the camera the overlay should follow,
// and carries the write-back slot for the resolved focus limits.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"dofscope/internal/optics"
	"dofscope/internal/overlay"
)

// ErrEmptyScene reports a document with neither cameras nor objects.
var ErrEmptyScene = errors.New("scene: empty document")

// ApertureSpec is the on-disk aperture description. Type selects the
// mode: "FSTOP" (default) or "RADIUS".
type ApertureSpec struct {
	Type   string  `json:"type"`
	FStop  float64 `json:"fstop"`
	Radius float64 `json:"radius"` // meters
}

// Camera is one camera entity in the scene document.
type Camera struct {
	Name        string       `json:"name"`
	Position    [3]float64   `json:"position"`
	RotationDeg [3]float64   `json:"rotation"` // Euler XYZ, degrees
	LensMm      float64      `json:"lens_mm"`
	SensorMm    [2]float64   `json:"sensor_mm"`
	Clip        [2]float64   `json:"clip"` // [start, end], scene units
	Aperture    ApertureSpec `json:"aperture"`

	// Focus: a named target object takes precedence over the scalar
	// distance, matching the original tool's dof_object behavior.
	FocusDistance float64 `json:"focus_distance"`
	FocusTarget   string  `json:"focus_target,omitempty"`
}

// Object is a named point in the scene, usable as a focus target.
type Object struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
}

// Scene is a loaded scene document. Limits is the display write-back
// slot for the most recent (distance, near, far) evaluation.
type Scene struct {
	Cameras     []Camera   `json:"cameras"`
	Objects     []Object   `json:"objects"`
	Active      string     `json:"active"`       // active object name, may be a non-camera
	SceneCamera string     `json:"scene_camera"` // designated render camera
	Cursor      [3]float64 `json:"cursor"`

	Limits      [3]float64 `json:"-"`
	LimitsValid bool       `json:"-"`
}

// Pose returns the camera's world transform with scale already absent:
// scene documents carry only position and rotation.
func (c *Camera) Pose() overlay.Pose {
	return overlay.Pose{
		Position: mgl64.Vec3{c.Position[0], c.Position[1], c.Position[2]},
		Rotation: mgl64.AnglesToQuat(
			mgl64.DegToRad(c.RotationDeg[0]),
			mgl64.DegToRad(c.RotationDeg[1]),
			mgl64.DegToRad(c.RotationDeg[2]),
			mgl64.XYZ,
		),
	}
}

// Intrinsics maps the document fields onto the optical model's input.
func (c *Camera) Intrinsics() optics.Intrinsics {
	ap := optics.Aperture{Mode: optics.ApertureFStop, FStop: c.Aperture.FStop}
	if c.Aperture.Type == "RADIUS" {
		ap = optics.Aperture{Mode: optics.ApertureRadius, Radius: c.Aperture.Radius}
	}
	return optics.Intrinsics{
		FocalLength:  c.LensMm,
		SensorWidth:  c.SensorMm[0],
		SensorHeight: c.SensorMm[1],
		ClipStart:    c.Clip[0],
		ClipEnd:      c.Clip[1],
		Aperture:     ap,
	}
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scene document, applies camera defaults, and
// validates every camera's intrinsics.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if len(s.Cameras) == 0 && len(s.Objects) == 0 {
		return nil, ErrEmptyScene
	}
	for i := range s.Cameras {
		c := &s.Cameras[i]
		applyDefaults(c)
		if err := c.Intrinsics().Validate(); err != nil {
			return nil, fmt.Errorf("scene: camera %q: %w", c.Name, err)
		}
	}
	return &s, nil
}

// applyDefaults fills unset camera fields with full-frame defaults.
func applyDefaults(c *Camera) {
	if c.LensMm == 0 {
		c.LensMm = 50
	}
	if c.SensorMm == [2]float64{} {
		c.SensorMm = [2]float64{36, 24}
	}
	if c.Clip == [2]float64{} {
		c.Clip = [2]float64{0.1, 100}
	}
	if c.Aperture.Type == "" {
		c.Aperture.Type = "FSTOP"
	}
	if c.Aperture.Type == "FSTOP" && c.Aperture.FStop == 0 {
		c.Aperture.FStop = 2.8
	}
}

// Default returns the built-in demo scene: one camera focused near a
// pair of target objects.
func Default() *Scene {
	s := &Scene{
		Cameras: []Camera{{
			Name:          "camera",
			Position:      [3]float64{0, 1, 6},
			LensMm:        50,
			SensorMm:      [2]float64{36, 24},
			Clip:          [2]float64{0.1, 100},
			Aperture:      ApertureSpec{Type: "FSTOP", FStop: 2.8},
			FocusDistance: 4,
		}},
		Objects: []Object{
			{Name: "subject", Position: [3]float64{0, 1, 2}},
			{Name: "backdrop", Position: [3]float64{0.5, 1, -3}},
		},
		Active:      "camera",
		SceneCamera: "camera",
		Cursor:      [3]float64{0, 1, 2},
	}
	return s
}

// Camera returns the named camera, or nil.
func (s *Scene) Camera(name string) *Camera {
	for i := range s.Cameras {
		if s.Cameras[i].Name == name {
			return &s.Cameras[i]
		}
	}
	return nil
}

// Object returns the named object, or nil.
func (s *Scene) Object(name string) *Object {
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return &s.Objects[i]
		}
	}
	return nil
}

// ActiveCamera picks the camera the overlay follows: the active object
// when it is a camera, otherwise the designated scene camera. Returns
// false when neither qualifies; that is a "nothing to draw" state, not
// an error.
func (s *Scene) ActiveCamera() (*Camera, bool) {
	if c := s.Camera(s.Active); c != nil {
		return c, true
	}
	if c := s.Camera(s.SceneCamera); c != nil {
		return c, true
	}
	return nil, false
}

// FocusSpec builds the focus input for a camera: the target object's
// position when set and present, else the scalar distance.
func (s *Scene) FocusSpec(c *Camera) overlay.FocusSpec {
	if c.FocusTarget != "" {
		if obj := s.Object(c.FocusTarget); obj != nil {
			return overlay.TargetFocus(mgl64.Vec3{obj.Position[0], obj.Position[1], obj.Position[2]})
		}
	}
	return overlay.ScalarFocus(c.FocusDistance)
}

// Result is one overlay evaluation.
type Result struct {
	Camera     string
	Distance   float64
	Limits     optics.Limits
	Primitives []overlay.Primitive
}

// BuildOverlay runs the full pipeline for the active camera and writes
// the (distance, near, far) display triple back onto the scene. With no
// qualifying camera it returns an empty result and clears the triple.
func (s *Scene) BuildOverlay(style overlay.Style) (Result, error) {
	cam, ok := s.ActiveCamera()
	if !ok {
		s.Limits = [3]float64{}
		s.LimitsValid = false
		return Result{}, nil
	}
	lim, d, prims, err := overlay.BuildLimitGeometry(cam.Pose(), cam.Intrinsics(), s.FocusSpec(cam), style)
	if err != nil {
		return Result{}, err
	}
	s.Limits = [3]float64{d, lim.Near, lim.Far}
	s.LimitsValid = true
	return Result{Camera: cam.Name, Distance: d, Limits: lim, Primitives: prims}, nil
}
