package mat3

import "fmt"

// Epsilon is the package's suggested tolerance for approximate
// comparisons of O(1) quantities: residual norms, identity checks,
// round-trip drift. Nothing in this package consumes it — the solve
// and inverse run unguarded by design — it exists so callers and tests
// agree on one number.
const Epsilon = 1e-9

// Mat3 is a row-major 3×3 double-precision matrix: m[row][col].
// The zero value is the all-zero matrix.
type Mat3 [3][3]float64

// Identity returns the 3×3 identity matrix.
func Identity() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Diagonal returns the matrix with d on the main diagonal and zeros
// elsewhere.
func Diagonal(d Vec3) Mat3 {
	return Mat3{
		{d[0], 0, 0},
		{0, d[1], 0},
		{0, 0, d[2]},
	}
}

// MulVec returns m·v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Mul returns the matrix product m·n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][0]*n[0][c] + m[r][1]*n[1][c] + m[r][2]*n[2][c]
		}
	}

	return out
}

// Transpose returns mᵀ.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Det returns the determinant of m, expanded along the first row.
func (m Mat3) Det() float64 {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]

	return m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02
}

// Invert returns m⁻¹ computed as adjugate(m)/det(m).
//
// A singular (or near-singular) m divides by a (near-)zero determinant:
// the result then carries ±Inf/NaN components. Invert never panics;
// callers that need a guarantee should inspect Det() first.
func (m Mat3) Invert() Mat3 {
	// First-column cofactors double as the determinant expansion terms.
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	inv := 1 / (m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02)

	return Mat3{
		{c00 * inv, (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv, (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv},
		{c01 * inv, (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv, (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv},
		{c02 * inv, (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv, (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv},
	}
}

// IsFinite reports whether all nine entries are finite.
func (m Mat3) IsFinite() bool {
	for r := 0; r < 3; r++ {
		if !Vec3(m[r]).IsFinite() {
			return false
		}
	}

	return true
}

// String renders the matrix row by row as "[(a, b, c); (d, e, f); (g, h, i)]".
func (m Mat3) String() string {
	return fmt.Sprintf("[%v; %v; %v]", Vec3(m[0]), Vec3(m[1]), Vec3(m[2]))
}
