// Package config holds the editor's manipulation tunables, persisted across
// runs. In-scene data is separate and handled by the world package.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Path is the tunables file, relative to the process working directory.
const Path = "config/editor.yaml"

// Drag tunes pointer-to-world projection for the Q/E drags.
type Drag struct {
	// Damping maps pixel motion to a comfortable world speed. Chosen by feel.
	Damping float32 `yaml:"damping"`
	// MinDistance clamps the camera-to-selection distance used for scaling.
	MinDistance float32 `yaml:"min_distance"`
	// TiltFloor is the lower clamp on the view-tilt correction.
	TiltFloor float32 `yaml:"tilt_floor"`
	// CloseDistance/MinCloseRatio taper vertical-drag sensitivity up close.
	CloseDistance float32 `yaml:"close_distance"`
	MinCloseRatio float32 `yaml:"min_close_ratio"`
}

// Scale tunes the R uniform-scale drag.
type Scale struct {
	// Sensitivity converts radial pixel motion to multiplier delta
	// (~250 px of drag doubles the object at 0.004).
	Sensitivity float32 `yaml:"sensitivity"`
	// MinMultiplier floors the multiplier so scale never reaches zero.
	MinMultiplier float32 `yaml:"min_multiplier"`
}

// Rotate tunes the scroll-wheel rotation.
type Rotate struct {
	// IncrementDegrees is the per-tick angle when rotation snapping is off.
	IncrementDegrees float32 `yaml:"increment_degrees"`
}

// GroundSnap tunes the ground projection raycast.
type GroundSnap struct {
	Clearance      float32 `yaml:"clearance"`
	RayStartHeight float32 `yaml:"ray_start_height"`
	RayDepth       float32 `yaml:"ray_depth"`
	MaxAttempts    int     `yaml:"max_attempts"`
}

// Tunables is every constant the manipulation engine exposes for adjustment.
type Tunables struct {
	Drag       Drag       `yaml:"drag"`
	Scale      Scale      `yaml:"scale"`
	Rotate     Rotate     `yaml:"rotate"`
	GroundSnap GroundSnap `yaml:"ground_snap"`
}

// Default returns the shipped tunables.
func Default() Tunables {
	return Tunables{
		Drag: Drag{
			Damping:       0.4,
			MinDistance:   1,
			TiltFloor:     0.1,
			CloseDistance: 20,
			MinCloseRatio: 0.3,
		},
		Scale: Scale{
			Sensitivity:   0.004,
			MinMultiplier: 0.01,
		},
		Rotate: Rotate{
			IncrementDegrees: 15,
		},
		GroundSnap: GroundSnap{
			Clearance:      0.05,
			RayStartHeight: 5,
			RayDepth:       2000,
			MaxAttempts:    50,
		},
	}
}

// Load reads tunables from Path. A missing file is not an error; any other
// failure returns Default() alongside the error so the caller can log it and
// keep going.
func Load() (Tunables, error) {
	return LoadFrom(Path)
}

// LoadFrom reads tunables from an explicit path (tests use a temp dir).
func LoadFrom(path string) (Tunables, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), err
	}
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), err
	}
	return t, nil
}

// Save writes tunables to Path, creating the config directory if needed.
func Save(t Tunables) error {
	return SaveTo(Path, t)
}

// SaveTo writes tunables to an explicit path.
func SaveTo(path string, t Tunables) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
