package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay holds runtime debugging readouts (FPS, heap, selection, snap state).
// FPS and memory are off by default; the status line is always drawn.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool

	// Status returns the bottom-left status line (selection + snap state).
	// Recomputed every frame; nil means no status line.
	Status func() string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns an Overlay with the FPS and memory readouts hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Overlay) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Overlay) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Draw renders the enabled readouts. Call after the viewport in the draw loop.
// FPS/Mem text is only recomputed every updateInterval frames to limit allocations.
func (d *Overlay) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y, rl.Green)
		y += lineHeight
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, screenW, y, rl.Green)
	}

	if d.Status != nil {
		if text := d.Status(); text != "" {
			y := int32(rl.GetScreenHeight()) - lineHeight - padding
			rl.DrawText(text, padding, y, fontSize, rl.RayWhite)
		}
	}
}

func drawRight(text string, screenW, y int32, color rl.Color) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, color)
}
