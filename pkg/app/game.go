// Package app wires the boids engine, the Ebiten render adapter, and
// the play/pause/restart GUI into a single ebiten.Game: main loop,
// window, GUI buttons, and preset dispatch.
package app

import (
	"errors"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/boids"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/demo"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/render"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/ui"
)

// State is one of the simulation's four lifecycle states.
type State int

const (
	Initialized State = iota
	Running
	Paused
	Terminated
)

// ErrTerminated is returned from Update once the simulation has been
// asked to stop, so the host's RunGame call returns cleanly.
var ErrTerminated = errors.New("boids3d: simulation terminated")

const screenWidth, screenHeight = 900, 700

// Game is the ebiten.Game implementation driving one simulation: it
// owns the current Flock and Engine, the render adapter's scene and
// the active flock's Group, the GUI panel, and the state machine.
type Game struct {
	logger *zap.Logger

	preset    boids.Preset
	overrides boids.Overrides
	seed      int64

	flock  *boids.Flock
	engine *boids.Engine

	scene render.Scene
	group render.Group

	// demoScene is true when the CLI argument named one of
	// pkg/demo's static scenes instead of a boid preset; demo scenes
	// only place static points and never tick.
	demoScene bool

	panel *ui.Panel
	state State
}

// NewGame resolves name against the boid preset registry first, then
// the static demo scene registry, builds its render adapter and
// initial flock (or static scene), and returns a Game in the
// Running state. An unrecognized name, or a preset whose Params with
// overrides applied fail Validate, is a *boids.ConfigError: startup
// fails rather than falling back to a default scene.
func NewGame(logger *zap.Logger, name string, overrides boids.Overrides, seed int64) (*Game, error) {
	scene := render.NewEbitenScene(geometry.Vector2D{X: screenWidth / 2, Y: screenHeight / 2}, screenWidth*0.8)

	g := &Game{
		logger:    logger,
		overrides: overrides,
		seed:      seed,
		scene:     scene,
		engine:    boids.NewEngine(),
		panel:     ui.NewPanel(10, 10, true),
		state:     Initialized,
	}

	preset, err := boids.LookupPreset(name)
	if err == nil {
		if err := overrides.Apply(preset.Params).Validate(); err != nil {
			return nil, err
		}
		g.preset = preset
		g.rebuildFlock()
		g.state = Running
		return g, nil
	}

	group := scene.NewGroup()
	if !demo.Build(name, scene, group, rand.New(rand.NewSource(seed))) {
		return nil, &boids.ConfigError{Reason: "unknown preset or demo scene name: " + name}
	}
	g.group = group
	g.demoScene = true
	g.state = Running
	return g, nil
}

// rebuildFlock destroys the current flock's render group (if any) and
// instantiates a fresh one from g.preset. Restart is an application
// shell concern: the engine itself has no notion of restart, only
// disposal and creation of a new flock.
func (g *Game) rebuildFlock() {
	if g.group != nil {
		g.group.Unlink()
	}

	params := g.overrides.Apply(g.preset.Params)
	flock, err := boids.NewFlock(params)
	if err != nil {
		// preset.Params and overrides were already validated at
		// startup (see NewGame); a failure here is a programmer
		// error, not a runtime condition a restart can recover from.
		g.logger.Panic("rebuilding flock with previously-valid params", zap.Error(err))
	}
	boids.Generate(flock, g.preset.N, g.preset.Radius, rand.New(rand.NewSource(g.seed)))

	group := g.scene.NewGroup()
	up := geometry.Vector3{Y: 1}
	for i := range flock.Agents {
		node := group.AddMesh(g.scene.SharedMesh(), 1e-1)
		node.SetColor(1, 1, 1)
		a := &flock.Agents[i]
		a.Pose = renderPose{node}
		a.Pose.SetLocalTranslation(a.Position)
		a.Pose.SetLocalRotation(geometry.RotationBetween(up, a.Velocity))
	}

	g.flock = flock
	g.group = group
}

// renderPose adapts a render.Node to boids.PoseHandle.
type renderPose struct{ node render.Node }

func (p renderPose) SetLocalTranslation(v geometry.Vector3) { p.node.SetLocalTranslation(v) }
func (p renderPose) SetLocalRotation(r geometry.Rotation)    { p.node.SetLocalRotation(r) }

// Update implements ebiten.Game. One call advances the state machine
// by one host step: the host calls one tick per frame.
func (g *Game) Update() error {
	g.panel.Update()

	if g.panel.RestartClicked() && !g.demoScene {
		g.logger.Info("restarting flock", zap.String("preset", g.preset.Name))
		g.rebuildFlock()
	}
	if g.panel.ToggleRunningClicked() {
		g.toggleRunning()
	}

	if g.state == Running && !g.demoScene {
		g.engine.Tick(g.flock)
	}
	if g.state == Terminated {
		return ErrTerminated
	}
	return nil
}

func (g *Game) toggleRunning() {
	switch g.state {
	case Running:
		g.state = Paused
	case Paused, Initialized:
		g.state = Running
	}
	g.panel.SetRunning(g.state == Running)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 16, A: 255})

	if es, ok := g.scene.(*render.EbitenScene); ok {
		es.Draw(screen, g.group)
	}
	if g.panel.ShowVelocityVectors() && g.flock != nil {
		g.drawVelocityVectors(screen)
	}
	g.panel.Draw(screen)
}

func (g *Game) drawVelocityVectors(screen *ebiten.Image) {
	es, ok := g.scene.(*render.EbitenScene)
	if !ok {
		return
	}
	for _, a := range g.flock.Agents {
		from := geometry.Vector2D{
			X: es.Origin.X + a.Position.X*es.ProjectionScale,
			Y: es.Origin.Y + a.Position.Y*es.ProjectionScale,
		}
		to := geometry.Vector2D{
			X: from.X + a.Velocity.X*es.ProjectionScale*10,
			Y: from.Y + a.Velocity.Y*es.ProjectionScale*10,
		}
		vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y),
			1, color.RGBA{R: 255, G: 220, B: 100, A: 180}, true)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// Stop transitions the simulation to Terminated; the next Update call
// returns ErrTerminated so ebiten.RunGame exits.
func (g *Game) Stop() { g.state = Terminated }
