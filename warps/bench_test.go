package warps_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/nwarp/mat3"
	"github.com/katalvlaran/nwarp/warps"
)

var (
	benchVec mat3.Vec3
	benchMat mat3.Mat3
)

func BenchmarkSine_ForwardJacobian(b *testing.B) {
	ev := warps.NewSine(
		mat3.Vec3{0.2, 0.15, 0.1},
		mat3.Vec3{1.3, 0.7, 2.1},
		mat3.Vec3{0.4, -0.2, 1},
	)
	p := mat3.Vec3{0.3, -1.7, 0.9}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchVec, benchMat = ev.ForwardJacobian(p)
	}
}

func BenchmarkTwist_Forward(b *testing.B) {
	ev := warps.NewTwist(0.5, mat3.Vec3{})
	p := mat3.Vec3{1.4, 0.6, -1.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchVec = ev.Forward(p)
	}
}

func BenchmarkGrid_ForwardJacobian(b *testing.B) {
	ripple := func(node mat3.Vec3) mat3.Vec3 {
		return mat3.Vec3{0.05 * math.Sin(node[1]), 0.05 * math.Cos(node[0]), 0}
	}
	g, err := warps.NewGridFromFunc(
		mat3.Vec3{-2, -2, -2},
		mat3.Vec3{0.25, 0.25, 0.25},
		[3]int{17, 17, 17},
		ripple,
	)
	if err != nil {
		b.Fatal(err)
	}
	p := mat3.Vec3{0.4, -0.9, 1.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchVec, benchMat = g.ForwardJacobian(p)
	}
}
