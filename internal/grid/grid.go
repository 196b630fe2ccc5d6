// Package grid is the editor's grid/snap settings store: current position,
// rotation and scale increments, their enabled flags, and the size lists the
// G+scroll shortcut steps through.
package grid

// RotationMode selects which list the rotation increment comes from.
type RotationMode int

const (
	// RotationFixedList uses the hand-picked common angles.
	RotationFixedList RotationMode = iota
	// RotationDivisionsOf360 uses angles that divide a full turn evenly.
	RotationDivisionsOf360
)

// Default size lists. Position sizes are world units; rotation sizes degrees.
var (
	defaultDecimalSizes = []float32{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	defaultPow2Sizes    = []float32{0.0625, 0.125, 0.25, 0.5, 1, 2, 4, 8}
	defaultCommonRot    = []float32{5, 10, 15, 30, 45, 60, 90, 120}
	defaultDiv360Rot    = []float32{7.5, 9, 11.25, 15, 22.5, 30, 45, 90}
)

const defaultScaleSize = 0.25

// Settings holds all snap state. Construct with Defaults; the zero value has
// empty size lists and is not usable.
type Settings struct {
	posEnabled bool
	posIndex   int
	usePow2    bool
	decimal    []float32
	pow2       []float32

	rotEnabled bool
	rotMode    RotationMode
	rotIndex   int
	commonRot  []float32
	div360Rot  []float32

	scaleEnabled bool
	scaleSize    float32
}

// Defaults returns settings with all three grids enabled and mid-list sizes
// (position 0.5, rotation 15°, scale 0.25).
func Defaults() *Settings {
	return &Settings{
		posEnabled:   true,
		posIndex:     3,
		decimal:      defaultDecimalSizes,
		pow2:         defaultPow2Sizes,
		rotEnabled:   true,
		rotMode:      RotationFixedList,
		rotIndex:     2,
		commonRot:    defaultCommonRot,
		div360Rot:    defaultDiv360Rot,
		scaleEnabled: true,
		scaleSize:    defaultScaleSize,
	}
}

func (s *Settings) posSizes() []float32 {
	if s.usePow2 {
		return s.pow2
	}
	return s.decimal
}

func (s *Settings) rotSizes() []float32 {
	if s.rotMode == RotationDivisionsOf360 {
		return s.div360Rot
	}
	return s.commonRot
}

// PositionGrid returns the current position increment and whether snapping is on.
func (s *Settings) PositionGrid() (float32, bool) {
	sizes := s.posSizes()
	if len(sizes) == 0 {
		return 0, false
	}
	return sizes[clamp(s.posIndex, len(sizes))], s.posEnabled
}

// RotationGrid returns the current rotation increment in degrees and whether
// rotation snapping is on.
func (s *Settings) RotationGrid() (float32, bool) {
	sizes := s.rotSizes()
	if len(sizes) == 0 {
		return 0, false
	}
	return sizes[clamp(s.rotIndex, len(sizes))], s.rotEnabled
}

// ScaleGrid returns the scale-multiplier increment and whether scale snapping is on.
func (s *Settings) ScaleGrid() (float32, bool) {
	return s.scaleSize, s.scaleEnabled
}

// TogglePositionGrid flips position snapping on/off (G tap).
func (s *Settings) TogglePositionGrid() {
	s.posEnabled = !s.posEnabled
}

// StepPositionGrid moves the position size up or down its list, clamped at the
// ends (G+scroll).
func (s *Settings) StepPositionGrid(up bool) {
	last := len(s.posSizes()) - 1
	if up && s.posIndex < last {
		s.posIndex++
	} else if !up && s.posIndex > 0 {
		s.posIndex--
	}
}

// SetRotationGridEnabled sets rotation snapping (Shift+LMB suppression).
func (s *Settings) SetRotationGridEnabled(enabled bool) {
	s.rotEnabled = enabled
}

// SetRotationMode selects the fixed-list or divisions-of-360 rotation sizes.
func (s *Settings) SetRotationMode(m RotationMode) {
	s.rotMode = m
}

// SetUsePow2 selects the power-of-two position size list.
func (s *Settings) SetUsePow2(use bool) {
	s.usePow2 = use
}

// SetScaleGrid sets the scale increment; size <= 0 disables scale snapping.
func (s *Settings) SetScaleGrid(size float32) {
	if size <= 0 {
		s.scaleEnabled = false
		return
	}
	s.scaleSize = size
	s.scaleEnabled = true
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
