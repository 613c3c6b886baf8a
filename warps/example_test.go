package warps_test

import (
	"fmt"

	"github.com/katalvlaran/nwarp/mat3"
	"github.com/katalvlaran/nwarp/warps"
)

// ExampleSineX evaluates the classic ripple F(x,y,z) = (x + a·sin(w·y), y, z).
func ExampleSineX() {
	ev := warps.SineX(0.1, 1)
	q := ev.Forward(mat3.Vec3{1, 0.5, 2})
	fmt.Printf("%.4f %.4f %.4f\n", q[0], q[1], q[2])
	// Output:
	// 1.0479 0.5000 2.0000
}

// ExampleNewTwist rotates a point about the z axis by an angle that grows
// with height.
func ExampleNewTwist() {
	ev := warps.NewTwist(0.5, mat3.Vec3{})
	q := ev.Forward(mat3.Vec3{1, 0, 1})
	fmt.Printf("%.4f %.4f %.4f\n", q[0], q[1], q[2])
	// Output:
	// 0.8776 0.4794 1.0000
}

// ExampleNewGridFromFunc samples a displacement field onto a lattice and
// evaluates the interpolated warp.
func ExampleNewGridFromFunc() {
	shift := func(mat3.Vec3) mat3.Vec3 { return mat3.Vec3{0.25, 0, 0} }
	g, err := warps.NewGridFromFunc(mat3.Vec3{}, mat3.Vec3{1, 1, 1}, [3]int{2, 2, 2}, shift)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(g.Forward(mat3.Vec3{0.5, 0.5, 0.5}))
	// Output:
	// (0.75, 0.5, 0.5)
}
