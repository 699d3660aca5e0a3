package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// EbitenScene is the render adapter for the Ebiten application shell.
// Ebiten only draws in 2-D, so every Node stores its 3-D world pose as
// pushed and projects it down to a screen-space translation and
// heading angle at draw time; EbitenScene.Draw (called from
// pkg/app.Game.Draw) renders the pre-rendered sprite (see
// generateBoidSprite) at that translation and angle using a
// pre-rendered-sprite-plus-GeoM-rotation technique.
type EbitenScene struct {
	mesh *ebiten.Image
	// ProjectionScale converts world units to pixels; Origin is the
	// screen point that world (0,0,0) maps to.
	ProjectionScale float64
	Origin          geometry.Vector2D
}

// NewEbitenScene builds a scene around a single shared boid sprite,
// pre-rendered once from an ASCII design.
func NewEbitenScene(origin geometry.Vector2D, projectionScale float64) *EbitenScene {
	return &EbitenScene{
		mesh:            generateBoidSprite(),
		ProjectionScale: projectionScale,
		Origin:          origin,
	}
}

func (s *EbitenScene) SharedMesh() Mesh { return s.mesh }

func (s *EbitenScene) NewGroup() Group {
	return &ebitenGroup{scene: s}
}

// Draw renders every live node of group onto screen: the shared
// sprite, translated and rotated per the node's last pushed pose.
// group is expected to be one returned by this scene's NewGroup; any
// other Group implementation draws nothing.
func (s *EbitenScene) Draw(screen *ebiten.Image, group Group) {
	g, ok := group.(*ebitenGroup)
	if !ok {
		return
	}
	for _, n := range g.Nodes() {
		screenPos := n.ScreenPosition()
		w, h := n.img.Bounds().Dx(), n.img.Bounds().Dy()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Scale(n.scale, n.scale)
		op.GeoM.Rotate(n.HeadingAngle() + math.Pi/2)
		op.GeoM.Translate(screenPos.X, screenPos.Y)
		op.ColorScale.Scale(float32(n.color.R)/255, float32(n.color.G)/255, float32(n.color.B)/255, float32(n.color.A)/255)

		screen.DrawImage(n.img, op)
	}
}

// ebitenGroup tracks the live nodes spawned under it so Unlink can
// drop them all at once on restart.
type ebitenGroup struct {
	scene *EbitenScene
	nodes []*ebitenNode
	live  bool
}

func (g *ebitenGroup) AddMesh(mesh Mesh, uniformScale float64) Node {
	img, _ := mesh.(*ebiten.Image)
	n := &ebitenNode{
		scene: g.scene,
		group: g,
		img:   img,
		scale: uniformScale,
		color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
	g.nodes = append(g.nodes, n)
	g.live = true
	return n
}

func (g *ebitenGroup) Unlink() {
	g.nodes = nil
	g.live = false
}

// Nodes returns the group's live nodes for Draw to iterate; an
// unlinked group always returns nil.
func (g *ebitenGroup) Nodes() []*ebitenNode {
	if !g.live {
		return nil
	}
	return g.nodes
}

// ebitenNode is one boid's render state: a translation, a rotation
// (from which Draw derives the on-screen heading), a tint, and the
// uniform scale it was added at.
type ebitenNode struct {
	scene *EbitenScene
	group *ebitenGroup

	img   *ebiten.Image
	scale float64
	color color.RGBA

	translation geometry.Vector3
	rotation    geometry.Rotation
}

func (n *ebitenNode) SetColor(r, g, b float64) {
	n.color = color.RGBA{R: toByte(r), G: toByte(g), B: toByte(b), A: 255}
}

func (n *ebitenNode) SetLocalTranslation(p geometry.Vector3) {
	n.translation = p
}

func (n *ebitenNode) SetLocalRotation(rot geometry.Rotation) {
	n.rotation = rot
}

// ScreenPosition projects the node's 3-D translation to 2-D screen
// space: x/y scaled and offset by the scene's origin, z discarded
// (the simple orthographic projection this 2-D host renderer uses).
func (n *ebitenNode) ScreenPosition() geometry.Vector2D {
	return geometry.Vector2D{
		X: n.scene.Origin.X + n.translation.X*n.scene.ProjectionScale,
		Y: n.scene.Origin.Y + n.translation.Y*n.scene.ProjectionScale,
	}
}

// HeadingAngle recovers the on-screen facing angle from the node's
// stored rotation by applying it to world "up" (the same axis
// RotationBetween maps from, see boids.Engine.pushPose) and projecting
// the result to the XY plane: atan2 of the rotated direction's Y and X
// components.
func (n *ebitenNode) HeadingAngle() float64 {
	up := r3.Vec{Y: 1}
	dir := n.rotation.Rotate(up)
	return math.Atan2(dir.Y, dir.X)
}

func (n *ebitenNode) Color() color.RGBA { return n.color }
func (n *ebitenNode) Scale() float64    { return n.scale }

func toByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v * 255)
}

// generateBoidSprite pre-renders the single shared triangle-ish boid
// mesh from an ASCII design. Every boid shares this one immutable
// mesh, so rasterizing it once up front and reusing the image avoids
// redrawing per-agent geometry every frame.
func generateBoidSprite() *ebiten.Image {
	design := []string{
		"...T...",
		"..TTT..",
		".TTTTT.",
		"TTTTTTT",
		".T.T.T.",
	}
	palette := map[rune]color.RGBA{
		'T': {R: 230, G: 230, B: 255, A: 255},
	}

	h := len(design)
	w := len(design[0])
	img := ebiten.NewImage(w, h)
	for y, row := range design {
		for x, char := range row {
			if col, ok := palette[char]; ok {
				img.Set(x, y, col)
			}
		}
	}
	return img
}
