package occupancy_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/radarmaze/occupancy"
)

// BenchmarkBuild measures rasterizing 500 random segments at resolution 5.
func BenchmarkBuild(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	segments := make([]occupancy.Segment, 500)
	for i := range segments {
		segments[i] = occupancy.Segment{
			Start: occupancy.Point{X: float64(rng.Intn(100)), Y: float64(rng.Intn(100))},
			End:   occupancy.Point{X: float64(rng.Intn(100)), Y: float64(rng.Intn(100))},
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = occupancy.Build(segments, 5, nil)
	}
}

// BenchmarkRegions measures region labelling on a 500×500 random grid.
func BenchmarkRegions(b *testing.B) {
	const n = 500
	rng := rand.New(rand.NewSource(42))
	rows := make([][]uint8, n)
	for r := range rows {
		rows[r] = make([]uint8, n)
		for c := range rows[r] {
			if rng.Intn(4) == 0 {
				rows[r][c] = occupancy.Occupied
			}
		}
	}
	g, err := occupancy.FromRows(rows)
	if err != nil {
		b.Fatalf("setup FromRows failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Regions()
	}
}
