package debug

import (
	"fmt"
	"image/color"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats is the simulation state shown by the stats overlay.
type Stats struct {
	Scenario    string
	Policy      string
	Frame       uint64
	Bodies      int
	Collisions  int
	Merges      int
	Kinetic     float64
	Momentum    float64
	Penetration float64
	Paused      bool
}

// Lines formats the stats one item per line.
func (s Stats) Lines() []string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("%s (%s, %s)", s.Scenario, s.Policy, state),
		fmt.Sprintf("frame %d", s.Frame),
		fmt.Sprintf("bodies %d  collisions %d  merges %d", s.Bodies, s.Collisions, s.Merges),
		fmt.Sprintf("KE %.4g  |p| %.4g", s.Kinetic, s.Momentum),
		fmt.Sprintf("overlap %.3g", s.Penetration),
	}
}

// Debug holds the overlays: FPS and memory at the top-right, simulation stats at the
// top-left. All are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	fpsText      string
	memText      string
	statsText    []string
	stats        Stats
	memStats     runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the font used to draw overlays. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// SetStats records the latest simulation stats; they are drawn on the next refresh.
func (d *Debug) SetStats(s Stats) {
	d.stats = s
}

// Draw renders the enabled overlays. Call last in the draw loop.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 ||
		(d.ShowFPS && d.fpsText == "") ||
		(d.ShowMemAlloc && d.memText == "") ||
		(d.ShowStats && d.statsText == nil)

	if update {
		d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		runtime.ReadMemStats(&d.memStats)
		d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		d.statsText = d.stats.Lines()
	}

	y := float32(padding)
	if d.ShowFPS {
		d.drawRight(d.fpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		d.drawRight(d.memText, y)
	}

	if d.ShowStats {
		y = padding
		for _, line := range d.statsText {
			d.draw(line, padding, y, rl.RayWhite)
			y += lineHeight
		}
	}
}

func (d *Debug) drawRight(text string, y float32) {
	w := d.measure(text)
	d.draw(text, float32(rl.GetScreenWidth())-w-padding, y, rl.Green)
}

func (d *Debug) measure(text string) float32 {
	if d.font.Texture.ID != 0 {
		return rl.MeasureTextEx(d.font, text, fontSize, 1).X
	}
	return float32(rl.MeasureText(text, fontSize))
}

func (d *Debug) draw(text string, x, y float32, c color.RGBA) {
	if d.font.Texture.ID != 0 {
		rl.DrawTextEx(d.font, text, rl.NewVector2(x, y), fontSize, 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), fontSize, c)
}
