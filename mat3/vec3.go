package mat3

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component double-precision vector. The zero value is the
// origin. Components are addressed as v[0], v[1], v[2] (x, y, z).
type Vec3 [3]float64

// Add returns v + w componentwise.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v − w componentwise.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns s·v.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v[0], s * v[1], s * v[2]}
}

// Dot returns the scalar product v·w.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// NormSq returns |v|², the squared Euclidean length.
// Prefer this over Norm when only comparisons are needed: it avoids the
// square root in hot loops.
func (v Vec3) NormSq() float64 {
	return v.Dot(v)
}

// Norm returns |v|, the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.NormSq())
}

// DistSq returns the squared Euclidean distance between v and w.
func (v Vec3) DistSq(w Vec3) float64 {
	return v.Sub(w).NormSq()
}

// Dist returns the Euclidean distance between v and w.
func (v Vec3) Dist(w Vec3) float64 {
	return math.Sqrt(v.DistSq(w))
}

// IsFinite reports whether all three components are finite
// (neither NaN nor ±Inf).
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}

// String renders the vector as "(x, y, z)" using %g formatting.
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}
