package warps

import "github.com/katalvlaran/nwarp/mat3"

// Radial pushes points away from (or pulls them toward) a center with
// a cubic radial profile:
//
//	d    = p − Center
//	F(p) = Center + d·(1 + Strength·|d|²)
//
// Positive Strength bulges space outward, negative pinches it inward.
//
// Bijectivity: the radial profile r ↦ r·(1 + k·r²) has derivative
// 1 + 3k·r², so the warp is globally bijective for Strength ≥ 0 and
// bijective on the ball |d|² < 1/(−3·Strength) for Strength < 0.
type Radial struct {
	Strength float64   // k in the scale factor 1 + k·r²
	Center   mat3.Vec3 // fixed point of the warp
}

// NewRadial builds a radial bulge (k > 0) or pinch (k < 0) about center.
func NewRadial(k float64, center mat3.Vec3) Radial {
	return Radial{Strength: k, Center: center}
}

// Forward maps p through the radial warp.
func (r Radial) Forward(p mat3.Vec3) mat3.Vec3 {
	d := p.Sub(r.Center)

	return r.Center.Add(d.Scale(1 + r.Strength*d.NormSq()))
}

// ForwardJacobian returns F(p) and the Jacobian
//
//	J = (1 + k·|d|²)·I + 2k·d·dᵀ
//
// — an isotropic scale plus a rank-one radial term.
func (r Radial) ForwardJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3) {
	d := p.Sub(r.Center)
	scale := 1 + r.Strength*d.NormSq()
	image := r.Center.Add(d.Scale(scale))

	var jac mat3.Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			jac[row][col] = 2 * r.Strength * d[row] * d[col]
			if row == col {
				jac[row][col] += scale
			}
		}
	}

	return image, jac
}
