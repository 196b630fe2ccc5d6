// Package snap converts continuous drag deltas into discrete grid-aligned steps
// without losing sub-step motion. Each axis accumulates and snaps independently
// so diagonal movement does not bias one axis.
package snap

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Accumulator tracks the unsnapped remainder per axis between calls.
// The zero value is ready to use.
type Accumulator struct {
	rest rl.Vector3
}

// Feed adds delta to the accumulated motion and returns the emitted step:
// per axis, the largest multiple of grid not exceeding the accumulated total,
// with the remainder retained for the next call. A grid of 0 (or less) means
// no snapping: the full accumulated motion is emitted and the remainder resets,
// so repeated unsnapped calls are exactly identity.
func (a *Accumulator) Feed(delta rl.Vector3, grid float32) rl.Vector3 {
	a.rest = rl.Vector3Add(a.rest, delta)
	if grid <= 0 {
		out := a.rest
		a.rest = rl.NewVector3(0, 0, 0)
		return out
	}
	return rl.NewVector3(
		stepAxis(&a.rest.X, grid),
		stepAxis(&a.rest.Y, grid),
		stepAxis(&a.rest.Z, grid),
	)
}

// Reset clears the accumulated remainder (gesture end).
func (a *Accumulator) Reset() {
	a.rest = rl.NewVector3(0, 0, 0)
}

// stepAxis emits whole grid steps from *rest and keeps the remainder.
// Below one increment it emits zero and leaves the accumulation untouched.
func stepAxis(rest *float32, grid float32) float32 {
	if math32.Abs(*rest) < grid {
		return 0
	}
	out := math32.Trunc(*rest/grid) * grid
	*rest -= out
	return out
}

// Nearest rounds v to the nearest multiple of grid. Used for the uniform-scale
// multiplier, which snaps as a whole rather than per axis. grid <= 0 returns v.
func Nearest(v, grid float32) float32 {
	if grid <= 0 {
		return v
	}
	return math32.Round(v/grid) * grid
}

// IsNearlyZero reports whether every axis of v is within tolerance of zero.
func IsNearlyZero(v rl.Vector3, tolerance float32) bool {
	return math32.Abs(v.X) <= tolerance && math32.Abs(v.Y) <= tolerance && math32.Abs(v.Z) <= tolerance
}
