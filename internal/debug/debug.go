package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fpsFontSize   = 18
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
	// logLines is how many recent log lines are shown under the readout.
	logLines = 6
)

// Probe is what the overlay reads each frame from the globe viewer.
type Probe struct {
	CameraDistance float32
	Rotation       mgl32.Vec3
	Selected       string
}

// Debug holds runtime debugging overlays (FPS, heap, globe readout, recent log lines).
// All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowGlobe    bool
	// Lines, when set, supplies recent log lines (logger.Logger.Lines).
	Lines func() []string

	font         rl.Font // optional; when set, Draw uses it instead of the default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
	lastLog      []string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetEnabled shows or hides every readout at once.
func (d *Debug) SetEnabled(on bool) {
	d.ShowFPS = on
	d.ShowMemAlloc = on
	d.ShowGlobe = on
}

// Toggle flips all readouts, keyed off ShowFPS.
func (d *Debug) Toggle() {
	d.SetEnabled(!d.ShowFPS)
}

// SetFont sets the font used to draw the readouts. Zero texture ID = raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders the enabled overlays at the top-right in green. FPS, heap and log text are only
// recomputed every updateInterval frames; the globe readout follows p every frame.
func (d *Debug) Draw(p Probe) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0 ||
		(d.ShowFPS && d.lastFpsText == "") ||
		(d.ShowMemAlloc && d.lastMemText == "")

	y := int32(fpsPadding)
	line := func(text string) {
		d.drawRight(text, y)
		y += fpsLineHeight
	}

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		line(d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		line(d.lastMemText)
	}
	if d.ShowGlobe {
		line(fmt.Sprintf("Distance: %.1f", p.CameraDistance))
		line(fmt.Sprintf("Rotation: %.3f, %.3f", p.Rotation.X(), p.Rotation.Y()))
		if p.Selected != "" {
			line("Selected: " + p.Selected)
		}
		if d.Lines != nil {
			if update || d.lastLog == nil {
				all := d.Lines()
				d.lastLog = all[max(0, len(all)-logLines):]
			}
			for _, l := range d.lastLog {
				line(l)
			}
		}
	}
}

func (d *Debug) drawRight(text string, y int32) {
	if text == "" {
		return
	}
	screenW := float32(rl.GetScreenWidth())
	font := d.font
	if font.Texture.ID == 0 {
		font = rl.GetFontDefault()
	}
	sz := float32(fpsFontSize)
	w := rl.MeasureTextEx(font, text, sz, 1).X
	rl.DrawTextEx(font, text, rl.NewVector2(screenW-w-fpsPadding, float32(y)), sz, 1, rl.Green)
}
