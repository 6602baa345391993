package spatial

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortPoints(ps []Point) {
	sort.Slice(ps, func(i, j int) bool {
		for d := 0; d < 3; d++ {
			if ps[i][d] != ps[j][d] {
				return ps[i][d] < ps[j][d]
			}
		}
		return false
	})
}

func TestWithinRadius(t *testing.T) {
	points := []Point{
		{0, 0, 0},
		{10, 0, 0},
		{0, 10, 0},
		{100, 100, 100},
		{255, 255, 255},
	}
	ix := New(points)
	require.Equal(t, 5, ix.Len())

	tests := []struct {
		name   string
		centre Point
		radius float64
		want   []Point
	}{
		{"origin small", Point{}, 5, []Point{{0, 0, 0}}},
		{"boundary inclusive", Point{}, 10, []Point{{0, 0, 0}, {0, 10, 0}, {10, 0, 0}}},
		{"far corner", Point{250, 250, 250}, 10, []Point{{255, 255, 255}}},
		{"nothing", Point{50, 50, 50}, 1, nil},
		{"everything", Point{128, 128, 128}, 1000, points},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.WithinRadius(tt.centre, tt.radius)
			want := append([]Point(nil), tt.want...)
			sortPoints(got)
			sortPoints(want)
			if len(want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestWithinRadiusKeepsDuplicates(t *testing.T) {
	ix := New([]Point{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}, {200, 0, 0}})

	got := ix.WithinRadius(Point{1, 2, 3}, 0)
	assert.Len(t, got, 3)
}

func TestInsert(t *testing.T) {
	ix := New(nil)
	assert.Equal(t, 0, ix.Len())
	assert.Empty(t, ix.WithinRadius(Point{}, 1000))

	ix.Insert(Point{5, 5, 5})
	ix.Insert(Point{6, 6, 6})
	ix.Insert(Point{90, 90, 90})

	assert.Equal(t, 3, ix.Len())
	assert.Len(t, ix.WithinRadius(Point{5, 5, 5}, 2), 2)
}

func TestCentroid(t *testing.T) {
	_, ok := Centroid(nil)
	assert.False(t, ok)

	c, ok := Centroid([]Point{{0, 0, 0}, {10, 20, 30}})
	require.True(t, ok)
	assert.Equal(t, Point{5, 10, 15}, c)
}

func TestSquaredDistance(t *testing.T) {
	a := Point{1, 2, 3}
	b := Point{4, 6, 3}
	assert.Equal(t, 25.0, a.SquaredDistance(b))
	assert.Equal(t, a.SquaredDistance(b), b.SquaredDistance(a))
}
