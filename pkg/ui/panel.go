package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel is the simulation's GUI control surface: two momentary
// inputs, toggle_running and restart, plus one debug affordance. A
// flock's Params are fixed per preset at construction, so the only
// thing left to expose live is a visualization toggle rather than a
// bank of tunable sliders.
type Panel struct {
	X, Y          float64
	Width, Height float64

	playPause *Button
	restart   *Button
	vectors   *Checkbox

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel builds the play/pause, restart, and "show velocity
// vectors" controls at the given top-left corner.
func NewPanel(x, y float64, running bool) *Panel {
	p := &Panel{
		X: x, Y: y, Width: 160, Height: 90,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
	p.playPause = NewButton(x+10, y+10, 140, 28, playPauseLabel(running), nil)
	p.restart = NewButton(x+10, y+48, 140, 28, "Restart", nil)
	p.vectors = NewCheckbox(x+10, y+84, "Show velocity", false)
	return p
}

func playPauseLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Play"
}

// SetRunning refreshes the play/pause button's label to match the
// simulation's current state; the button itself carries no state of
// its own beyond its click-debounce.
func (p *Panel) SetRunning(running bool) {
	p.playPause.Label = playPauseLabel(running)
}

// ToggleRunningClicked reports whether the play/pause button was
// clicked this frame.
func (p *Panel) ToggleRunningClicked() bool { return p.playPause.WasClicked() }

// RestartClicked reports whether the restart button was clicked this
// frame.
func (p *Panel) RestartClicked() bool { return p.restart.WasClicked() }

// ShowVelocityVectors reports whether the debug overlay toggle is on.
func (p *Panel) ShowVelocityVectors() bool { return p.vectors.Value }

// Update polls input for every widget in the panel. Call once per
// frame before reading the *Clicked accessors.
func (p *Panel) Update() {
	p.playPause.Update()
	p.restart.Update()
	p.vectors.Update()
}

// Draw renders the panel chrome and every widget.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, p.BorderColor, true)

	p.playPause.Draw(screen)
	textOffset := (len(p.playPause.Label) * 8) / 2
	ebitenutil.DebugPrintAt(screen, p.playPause.Label,
		int(p.playPause.X+p.playPause.Width/2-float64(textOffset)), int(p.playPause.Y+8))

	p.restart.Draw(screen)
	textOffset = (len(p.restart.Label) * 8) / 2
	ebitenutil.DebugPrintAt(screen, p.restart.Label,
		int(p.restart.X+p.restart.Width/2-float64(textOffset)), int(p.restart.Y+8))

	p.vectors.Draw(screen)
	ebitenutil.DebugPrintAt(screen, p.vectors.Label, int(p.vectors.X+p.vectors.Size+8), int(p.vectors.Y))
}
