package mat3

import "math"

// Solve returns the solution x of the linear system a·x = b using
// Gaussian elimination with scaled partial pivoting: rows compete for
// the pivot on their magnitude relative to their own largest entry, so
// a row that is merely large in absolute terms cannot buy its way into
// the pivot seat and swamp the others during elimination. For
// well-conditioned a this is both cheaper and more accurate than
// forming a.Invert() and multiplying.
//
// Singular systems are NOT detected: a zero pivot divides through and
// the result carries ±Inf/NaN components per IEEE-754 arithmetic.
// Solve never panics. Iterative callers are expected to bound
// themselves by step count rather than screen every system.
//
// a and b are value copies, so the caller's data is never touched.
func Solve(a Mat3, b Vec3) Vec3 {
	// 0) Implicit row scales, computed once against the original rows.
	//    An all-zero row scales to +Inf; its NaN pivot candidates lose
	//    every comparison below and the zero pivot surfaces as
	//    non-finite output instead of a panic.
	var scale Vec3
	for r := 0; r < 3; r++ {
		m := math.Abs(a[r][0])
		if v := math.Abs(a[r][1]); v > m {
			m = v
		}
		if v := math.Abs(a[r][2]); v > m {
			m = v
		}
		scale[r] = 1 / m
	}

	// 1) Forward elimination over the first two columns.
	for col := 0; col < 2; col++ {
		// Select the pivot row by largest scaled magnitude in this column.
		p := col
		for r := col + 1; r < 3; r++ {
			if scale[r]*math.Abs(a[r][col]) > scale[p]*math.Abs(a[p][col]) {
				p = r
			}
		}
		if p != col {
			a[p], a[col] = a[col], a[p]
			b[p], b[col] = b[col], b[p]
			scale[p], scale[col] = scale[col], scale[p]
		}

		// Eliminate entries below the pivot. No zero-pivot branch here:
		// the division runs unconditionally and non-finite values
		// propagate to the result.
		for r := col + 1; r < 3; r++ {
			f := a[r][col] / a[col][col]
			for c := col + 1; c < 3; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	// 2) Back substitution on the upper-triangular remainder.
	var x Vec3
	x[2] = b[2] / a[2][2]
	x[1] = (b[1] - a[1][2]*x[2]) / a[1][1]
	x[0] = (b[0] - a[0][1]*x[1] - a[0][2]*x[2]) / a[0][0]

	return x
}
