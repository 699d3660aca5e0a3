package demo

import (
	"math/rand"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/render"
)

type fakeNode struct {
	translation geometry.Vector3
	color       [3]float64
}

func (n *fakeNode) SetColor(r, g, b float64)               { n.color = [3]float64{r, g, b} }
func (n *fakeNode) SetLocalTranslation(p geometry.Vector3) { n.translation = p }
func (n *fakeNode) SetLocalRotation(rot geometry.Rotation) {}

type fakeGroup struct{ nodes []*fakeNode }

func (g *fakeGroup) AddMesh(mesh render.Mesh, uniformScale float64) render.Node {
	n := &fakeNode{}
	g.nodes = append(g.nodes, n)
	return n
}
func (g *fakeGroup) Unlink() { g.nodes = nil }

type fakeScene struct{}

func (fakeScene) NewGroup() render.Group   { return &fakeGroup{} }
func (fakeScene) SharedMesh() render.Mesh { return "mesh" }

func TestBuild_UnknownNameReturnsFalse(t *testing.T) {
	group := &fakeGroup{}
	ok := Build("not_a_scene", fakeScene{}, group, rand.New(rand.NewSource(0)))
	if ok {
		t.Fatal("expected Build to report false for an unrecognized scene name")
	}
}

func TestBuild_KnownScenesPopulateNodes(t *testing.T) {
	for _, name := range Names {
		group := &fakeGroup{}
		ok := Build(name, fakeScene{}, group, rand.New(rand.NewSource(0)))
		if !ok {
			t.Fatalf("%s: expected Build to recognize the scene name", name)
		}
		if len(group.nodes) == 0 {
			t.Fatalf("%s: expected at least one node to be placed", name)
		}
	}
}
