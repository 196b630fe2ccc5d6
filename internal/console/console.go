// Package console is the editor's drop-down command console: an input bar at
// the bottom of the screen with the recent log lines above it. Lines are
// tokenized and dispatched through the command registry. While the console is
// open it captures the keyboard, so the manipulation shortcuts treat the
// viewport as unfocused.
package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/commands"
	"level-editor/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxHistory       = 64
)

var (
	// Reused every frame when drawing the console bar to avoid per-frame color allocations.
	barColor  = rl.NewColor(40, 40, 40, 255)
	lineColor = rl.NewColor(80, 80, 80, 255)
	historyBg = rl.NewColor(24, 24, 24, 240)
)

// Console is the command input bar. It is shown/hidden with ESC. When open, it
// handles typing, history recall and drawing; when closed, nothing is drawn and
// input goes to the viewport.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool

	// history holds submitted lines, newest last; histIdx is the recall cursor
	// (len(history) = not recalling).
	history []string
	histIdx int
}

// New returns a Console that logs lines and dispatches them through reg.
// It starts closed; press ESC to open.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen returns true when the console is visible and capturing the keyboard.
func (c *Console) IsOpen() bool {
	return c.open
}

// Update handles ESC (toggle open/closed), and when open: typing, paste,
// history recall with up/down, backspace and enter. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		c.open = !c.open
	}
	if !c.open {
		return
	}

	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.inputBuf += pasted
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			c.inputBuf += string(rune(ch))
		}
	}

	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}

	if rl.IsKeyPressed(rl.KeyUp) && c.histIdx > 0 {
		c.histIdx--
		c.inputBuf = c.history[c.histIdx]
	}
	if rl.IsKeyPressed(rl.KeyDown) && c.histIdx < len(c.history) {
		c.histIdx++
		if c.histIdx == len(c.history) {
			c.inputBuf = ""
		} else {
			c.inputBuf = c.history[c.histIdx]
		}
	}

	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.submit(line)
	}
}

func (c *Console) submit(line string) {
	c.log.Log(prompt + line)
	c.history = append(c.history, line)
	if len(c.history) > maxHistory {
		c.history = c.history[len(c.history)-maxHistory:]
	}
	c.histIdx = len(c.history)

	args, ok := commands.Parse(line)
	if !ok {
		return
	}
	if err := c.reg.Execute(args); err != nil {
		c.log.Log(err.Error())
	}
}

// Draw draws the input bar at the bottom when open, and the recent log lines above it.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinate system.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight

	// Log area above the bar: last maxLinesOnScreen lines
	logHeight := maxLinesOnScreen * lineHeight
	logY := barY - logHeight
	if logY < 0 {
		logHeight = barY
		logY = 0
	}
	if logHeight > 0 {
		rl.DrawRectangle(0, int32(logY), int32(screenW), int32(logHeight), historyBg)
	}
	lines := c.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := logY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		rl.DrawText(line, int32(padding), int32(y), int32(fontSize), rl.LightGray)
	}

	// Input bar
	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, lineColor)
	rl.DrawText(prompt+c.inputBuf+"|", int32(padding), int32(barY+padding), int32(fontSize), rl.White)
}
