// Package spatial provides the nearest-neighbor index the update
// engine rebuilds every tick. It is a thin wrapper over
// gonum.org/v1/gonum/spatial/kdtree: a k-d tree built once per tick
// over the flock's current positions, queried once per agent for its
// nearest neighbors in nondecreasing distance.
package spatial

import (
	"sort"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// point is a single indexed record: an agent id and its position.
// It implements kdtree.Comparable. Distance is contractually the
// *squared* Euclidean distance, gonum's own convention.
type point struct {
	id  int
	pos geometry.Vector3
}

var _ kdtree.Comparable = point{}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	default:
		return p.pos.Z - q.pos.Z
	}
}

func (p point) Dims() int { return 3 }

func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	return p.pos.DistanceSqrTo(q.pos)
}

// points is a slice of point implementing kdtree.Interface so the
// tree can be built directly over agent positions without copying
// into the library's bare kdtree.Point type (which has no room for
// an id).
type points []point

var _ kdtree.Interface = points(nil)

func (ps points) Index(i int) kdtree.Comparable { return ps[i] }
func (ps points) Len() int                      { return len(ps) }
func (ps points) Slice(start, end int) kdtree.Interface { return ps[start:end] }

// Pivot partitions ps around the median along dimension d and returns
// the index of the pivot, as required by kdtree.Interface. It does so
// by fully sorting ps along d (see plane.Pivot), which keeps the k-d
// tree balanced; it mutates ps in place.
func (ps points) Pivot(d kdtree.Dim) int {
	return plane{points: ps, Dim: d}.Pivot()
}

// plane adapts points to sort.Interface for a single dimension so the
// standard library's partitioning machinery can do the pivoting.
type plane struct {
	points
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.points[i].Compare(p.points[j], p.Dim) < 0
}

func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Pivot selects the median element of p by dimension p.Dim using a
// full sort; flocks in this simulator's size range (hundreds to a few
// thousand agents, rebuilt every tick) make an O(n log n) median
// selection during tree construction plenty fast relative to the
// O(n * k * log n) query cost it buys.
func (p plane) Pivot() int {
	sort.Sort(p)
	return p.Len() / 2
}

// Index is a k-d tree over a flock's current positions, rebuilt from
// scratch each tick; incremental updates are out of scope.
type Index struct {
	tree *kdtree.Tree
}

// Build constructs an Index over the given ids and positions. ids and
// positions must be the same length and ids[i] must be the stable
// agent id for positions[i].
func Build(ids []int, positions []geometry.Vector3) *Index {
	ps := make(points, len(ids))
	for i, id := range ids {
		ps[i] = point{id: id, pos: positions[i]}
	}
	return &Index{tree: kdtree.New(ps, false)}
}

// Neighbor is one result of a Nearest query: the id of the indexed
// record and its distance from the query point.
type Neighbor struct {
	ID       int
	Distance float64
}

// Nearest returns up to k+1 records nearest to q in nondecreasing
// distance (the +1 accounts for q's own entry, which the caller is
// expected to skip). Ties may be broken in any order, but the result
// is always monotonically nondecreasing in Distance.
func (idx *Index) Nearest(q geometry.Vector3, k int) []Neighbor {
	keeper := kdtree.NewNKeeper(k + 1)
	idx.tree.NearestSet(keeper, point{pos: q})

	out := make([]Neighbor, 0, len(keeper.Heap))
	for _, cd := range keeper.Heap {
		p := cd.Comparable.(point)
		out = append(out, Neighbor{ID: p.id, Distance: cd.Dist})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}
