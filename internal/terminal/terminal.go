package terminal

import (
	"errors"
	"image/color"
	"strings"
	"unicode/utf8"

	"orbits/internal/commands"
	"orbits/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineChars     = 200
	toggleKey        = rl.KeyTab
)

var (
	// Reused every frame when drawing the console to avoid per-frame color allocations.
	barColor  = rl.NewColor(40, 40, 40, 255)
	lineColor = rl.NewColor(80, 80, 80, 255)
	historyBg = rl.NewColor(24, 24, 24, 220)
)

// Terminal is the command console at the bottom of the screen, toggled with TAB.
// Submitted lines are logged and run through the command registry; errors are logged too.
// UP and DOWN walk through previously submitted lines.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	history  []string
	recall   int // index into history while browsing; len(history) when not
}

// New returns a closed Terminal that logs to log and executes lines with reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the console is visible and capturing keyboard input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetFont sets the font used to draw the console. Zero texture ID = use raylib default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// Update handles TAB (toggle open/closed), and when open: typing, paste, backspace,
// history and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(toggleKey) {
		t.open = !t.open
		return
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		t.inputBuf += strings.ReplaceAll(rl.GetClipboardText(), "\n", " ")
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		t.inputBuf = t.browse(-1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		t.inputBuf = t.browse(1)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		t.Submit(t.inputBuf)
		t.inputBuf = ""
	}
}

// Submit logs line, runs it through the registry and logs any error. Blank lines are ignored.
func (t *Terminal) Submit(line string) {
	args := commands.Parse(line)
	if len(args) == 0 {
		return
	}
	t.log.Log(prompt + line)
	if n := len(t.history); n == 0 || t.history[n-1] != line {
		t.history = append(t.history, line)
	}
	t.recall = len(t.history)

	if err := t.reg.Execute(args); err != nil {
		if errors.Is(err, commands.ErrHelp) {
			t.log.Log(strings.TrimPrefix(err.Error(), commands.ErrHelp.Error()+": "))
			return
		}
		t.log.Log("error: " + err.Error())
	}
}

// browse moves through the submitted history by delta and returns the line to show.
// Stepping past the newest entry returns an empty input.
func (t *Terminal) browse(delta int) string {
	t.recall += delta
	if t.recall < 0 {
		t.recall = 0
	}
	if t.recall >= len(t.history) {
		t.recall = len(t.history)
		return ""
	}
	return t.history[t.recall]
}

// Draw draws the input bar at the bottom when open, and the most recent log lines above it.
// Uses GetScreenWidth/GetScreenHeight so the bar follows window resizes.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	barY := screenH - BarHeight

	chatHeight := int32(maxLinesOnScreen * lineHeight)
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, chatY, screenW, chatHeight, historyBg)
	}
	lines := t.log.Lines()
	start := max(0, len(lines)-maxLinesOnScreen)
	for i := start; i < len(lines); i++ {
		y := chatY + int32(i-start)*lineHeight + padding
		t.text(clip(lines[i]), padding, y, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	t.text(prompt+t.inputBuf+"|", padding, barY+padding, rl.White)
}

func (t *Terminal) text(s string, x, y int32, c color.RGBA) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(s, x, y, fontSize, c)
}

func clip(line string) string {
	if len(line) <= maxLineChars {
		return line
	}
	return line[:maxLineChars-3] + "..."
}
