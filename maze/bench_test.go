package maze_test

import (
	"testing"

	"github.com/gridwire/mazeroute/grid"
	"github.com/gridwire/mazeroute/maze"
)

// BenchmarkSearch_Open routes corner to corner across an open
// 50×50 plane with four layers, the shape of a typical mid-size
// detailed-routing subproblem.
func BenchmarkSearch_Open(b *testing.B) {
	coords := func(n int) []int64 {
		s := make([]int64, n)
		for i := range s {
			s[i] = int64(i * 10)
		}

		return s
	}
	g, err := grid.New(coords(50), coords(50), []int64{0, 10, 20, 30})
	if err != nil {
		b.Fatal(err)
	}
	eng, err := maze.New(g, testRules(4))
	if err != nil {
		b.Fatal(err)
	}

	conn := []maze.MazeIdx{{X: 0, Y: 0, Z: 0}}
	pin := &maze.Pin{AccessPoints: []maze.MazeIdx{{X: 49, Y: 49, Z: 0}}}
	center := maze.Point{X: 250, Y: 250}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := eng.Search(conn, pin, center); !ok {
			b.Fatal("no path on an open grid")
		}
	}
}
