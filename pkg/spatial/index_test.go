package spatial

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

func TestIndex_NearestOrdering(t *testing.T) {
	ids := []int{0, 1, 2, 3}
	positions := []geometry.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
	}

	idx := Build(ids, positions)
	got := idx.Nearest(geometry.Vector3{}, 3)

	if len(got) == 0 {
		t.Fatal("expected at least one neighbor")
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Fatalf("neighbors not in nondecreasing distance order: %+v", got)
		}
	}
	// The query point itself (id 0, distance 0) must be present first.
	if got[0].ID != 0 || got[0].Distance != 0 {
		t.Errorf("expected self (id 0, dist 0) first, got %+v", got[0])
	}
}

func TestIndex_DistanceIsSquared(t *testing.T) {
	ids := []int{0, 1}
	positions := []geometry.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 3, Y: 4, Z: 0},
	}
	idx := Build(ids, positions)
	got := idx.Nearest(geometry.Vector3{}, 1)

	for _, n := range got {
		if n.ID == 1 && math.Abs(n.Distance-25) > 1e-9 {
			t.Errorf("expected squared distance 25 for a 3-4-5 offset, got %v", n.Distance)
		}
	}
}

func TestIndex_CapsAtRequestedCount(t *testing.T) {
	ids := make([]int, 10)
	positions := make([]geometry.Vector3, 10)
	for i := range ids {
		ids[i] = i
		positions[i] = geometry.Vector3{X: float64(i)}
	}
	idx := Build(ids, positions)

	got := idx.Nearest(geometry.Vector3{}, 2)
	if len(got) > 3 { // k+1 including self
		t.Errorf("expected at most k+1=3 results, got %d", len(got))
	}
}
