package mat3_test

import (
	"fmt"

	"github.com/katalvlaran/nwarp/mat3"
)

// ExampleSolve demonstrates solving a permuted system: the zero in the
// top-left corner is handled by partial pivoting.
func ExampleSolve() {
	a := mat3.Mat3{
		{0, 1, 0},
		{1, 0, 0},
		{0, 0, 1},
	}
	b := mat3.Vec3{7, 8, 9}

	x := mat3.Solve(a, b)
	fmt.Println(x)
	// Output:
	// (8, 7, 9)
}

// ExampleMat3_Invert inverts a unimodular matrix: with det = 1 the
// inverse is the integer adjugate, reproduced exactly.
func ExampleMat3_Invert() {
	m := mat3.Mat3{
		{1, 2, 3},
		{0, 1, 4},
		{5, 6, 0},
	}

	fmt.Println(m.Invert())
	// Output:
	// [(-24, 18, 5); (20, -15, -4); (-5, 4, 1)]
}
