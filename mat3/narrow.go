package mat3

// Single-precision bridge. Some producers (graphics pipelines, on-disk
// point clouds) traffic in float32; all computation in this module runs
// in float64. Vec3f/Mat3f exist only to make that boundary explicit:
// widen on entry, narrow on exit.

// Vec3f is the single-precision counterpart of Vec3.
type Vec3f [3]float32

// Mat3f is the single-precision counterpart of Mat3.
type Mat3f [3][3]float32

// Wide converts v to double precision (exact).
func (v Vec3f) Wide() Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Narrow converts v to single precision, rounding each component.
func (v Vec3) Narrow() Vec3f {
	return Vec3f{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Wide converts m to double precision (exact).
func (m Mat3f) Wide() Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = float64(m[r][c])
		}
	}

	return out
}

// Narrow converts m to single precision, rounding each entry.
func (m Mat3) Narrow() Mat3f {
	var out Mat3f
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = float32(m[r][c])
		}
	}

	return out
}
