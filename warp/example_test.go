package warp_test

import (
	"fmt"

	"github.com/katalvlaran/nwarp/mat3"
	"github.com/katalvlaran/nwarp/warp"
	"github.com/katalvlaran/nwarp/warps"
)

// ExampleInvertPoint recovers the pre-image of a point under the classic
// sine ripple F(x,y,z) = (x + 0.1·sin(y), y, z).
func ExampleInvertPoint() {
	ev := warps.SineX(0.1, 1)
	target := mat3.Vec3{1, 0.5, 2}

	x, err := warp.InvertPoint(ev, target, warp.WithTolerance(1e-6))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%.6f %.6f %.6f\n", x[0], x[1], x[2])
	// Output:
	// 0.952057 0.500000 2.000000
}

// ExampleInvertPointDetailed shows the per-solve diagnostics. An affine
// map is linear, so Newton lands on the exact pre-image in one step.
func ExampleInvertPointDetailed() {
	ev := warps.NewAffine(mat3.Diagonal(mat3.Vec3{2, 2, 2}), mat3.Vec3{})

	res, err := warp.InvertPointDetailed(ev, mat3.Vec3{2, 4, 6})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("pre-image:", res.Point)
	fmt.Printf("iterations: %d, converged: %t\n", res.Iterations, res.Converged)
	// Output:
	// pre-image: (1, 2, 3)
	// iterations: 1, converged: true
}

// ExampleTransform_ToggleInverse flips one Transform between the forward
// map and its Newton inverse.
func ExampleTransform_ToggleInverse() {
	ev := warps.NewAffine(mat3.Diagonal(mat3.Vec3{2, 2, 2}), mat3.Vec3{})
	tr, err := warp.New(ev)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	p := mat3.Vec3{1, 2, 3}
	image := tr.TransformPoint(p)
	fmt.Println("forward:", image)

	tr.ToggleInverse()
	fmt.Println("inverse:", tr.TransformPoint(image))
	// Output:
	// forward: (2, 4, 6)
	// inverse: (1, 2, 3)
}
