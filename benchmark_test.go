package polydec

import (
	"fmt"
	"math"
	"testing"
)

// spiral builds one open chain of n points on a noisy spiral.
func spiral(n int) *Mesh {
	pts := make([]Vec3, n)
	for i := range pts {
		a := float64(i) * 0.05
		r := 1 + a*0.1 + math.Sin(a*13)*0.02
		pts[i] = Vec3{X: r * math.Cos(a), Y: r * math.Sin(a), Z: a * 0.01}
	}
	return &Mesh{Points: PointsFromVec3(pts), Lines: NewLines(seq(0, n))}
}

// BenchmarkDecimate benchmarks a single chain at several sizes.
func BenchmarkDecimate(b *testing.B) {
	for _, n := range []int{1_000, 10_000, 100_000} {
		for _, kind := range []SchedulerKind{SchedulerHeap, SchedulerTree} {
			b.Run(fmt.Sprintf("%d/%v", n, kind), func(b *testing.B) {
				m := spiral(n)
				d := New(WithTargetReduction(0.9), WithScheduler(kind))
				b.ReportAllocs()
				for b.Loop() {
					if _, err := d.Decimate(m); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkDecimateProRata compares worker counts on many chains.
func BenchmarkDecimateProRata(b *testing.B) {
	var pts []Vec3
	var lines [][]int
	for c := range 64 {
		start := len(pts)
		for i := range 2_000 {
			x := float64(i)
			pts = append(pts, Vec3{X: x, Y: float64(c) + math.Sin(x*0.1)})
		}
		lines = append(lines, seq(start, len(pts)))
	}
	m := &Mesh{Points: PointsFromVec3(pts), Lines: NewLines(lines...)}

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			d := New(WithTargetReduction(0.8), WithStrategy(StrategyProRata), WithWorkers(workers))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := d.Decimate(m); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
