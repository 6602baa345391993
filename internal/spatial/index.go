// Package spatial provides a 3-D point index with radius range queries,
// used to locate dense regions of RGB colour space.
package spatial

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Point is a position in 3-D space; for colours the axes are R, G and B.
type Point [3]float64

// SquaredDistance returns the squared Euclidean distance between p and q.
func (p Point) SquaredDistance(q Point) float64 {
	dx := p[0] - q[0]
	dy := p[1] - q[1]
	dz := p[2] - q[2]
	return dx*dx + dy*dy + dz*dz
}

// Index is a k-d tree over 3-D points. Duplicate points are stored once per
// insertion so query results reflect point frequency.
type Index struct {
	tree *kdtree.Tree
	n    int
}

// New builds a balanced index holding all of points.
func New(points []Point) *Index {
	ix := &Index{tree: &kdtree.Tree{}}
	if len(points) == 0 {
		return ix
	}

	kp := make(kdtree.Points, len(points))
	for i, p := range points {
		kp[i] = kdtree.Point{p[0], p[1], p[2]}
	}
	ix.tree = kdtree.New(kp, false)
	ix.n = len(points)
	return ix
}

// Insert adds a single point to the index.
// Points added this way are not rebalanced; prefer New for bulk loads.
func (ix *Index) Insert(p Point) {
	ix.tree.Insert(kdtree.Point{p[0], p[1], p[2]}, false)
	ix.n++
}

// Len returns the number of stored points.
func (ix *Index) Len() int {
	return ix.n
}

// WithinRadius returns every stored point whose Euclidean distance from
// centre is at most radius. The order of the result is unspecified.
func (ix *Index) WithinRadius(centre Point, radius float64) []Point {
	if ix.n == 0 || radius < 0 {
		return nil
	}

	q := kdtree.Point{centre[0], centre[1], centre[2]}
	// kdtree.Point distances are squared.
	keep := &rangeKeeper{max: kdtree.ComparableDist{Comparable: q, Dist: radius * radius}}
	ix.tree.NearestSet(keep, q)

	out := make([]Point, len(keep.hits))
	for i, cd := range keep.hits {
		kp := cd.Comparable.(kdtree.Point)
		out[i] = Point{kp[0], kp[1], kp[2]}
	}
	return out
}

// rangeKeeper is a kdtree.Keeper that retains every point within a fixed
// distance. Its Max never changes, so the search visits every branch that
// can hold a hit. Max carries a non-nil Comparable so NearestSet does not
// treat it as a sentinel and drop the last hit.
type rangeKeeper struct {
	max  kdtree.ComparableDist
	hits []kdtree.ComparableDist
}

func (k *rangeKeeper) Keep(c kdtree.ComparableDist) {
	if c.Dist <= k.max.Dist {
		k.hits = append(k.hits, c)
	}
}

func (k *rangeKeeper) Max() kdtree.ComparableDist { return k.max }
func (k *rangeKeeper) Len() int                   { return len(k.hits) }
func (k *rangeKeeper) Less(i, j int) bool         { return k.hits[i].Dist > k.hits[j].Dist }
func (k *rangeKeeper) Swap(i, j int)              { k.hits[i], k.hits[j] = k.hits[j], k.hits[i] }
func (k *rangeKeeper) Push(x any)                 { k.hits = append(k.hits, x.(kdtree.ComparableDist)) }

func (k *rangeKeeper) Pop() any {
	last := k.hits[len(k.hits)-1]
	k.hits = k.hits[:len(k.hits)-1]
	return last
}

// Centroid returns the mean position of points. It reports false when
// points is empty.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	var sum Point
	for _, p := range points {
		sum[0] += p[0]
		sum[1] += p[1]
		sum[2] += p[2]
	}
	n := float64(len(points))
	return Point{sum[0] / n, sum[1] / n, sum[2] / n}, true
}
