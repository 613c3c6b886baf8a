package warps

import "github.com/katalvlaran/nwarp/mat3"

// Affine is the linear warp F(p) = M·p + T.
//
// Its Jacobian is M everywhere, so Newton inversion of an Affine
// converges in a single step from any starting point — which makes it
// the reference shape for validating the engine against the exact
// inverse p = M⁻¹·(q − T).
type Affine struct {
	M mat3.Mat3 // linear part
	T mat3.Vec3 // translation part
}

// NewAffine builds the warp F(p) = m·p + t.
func NewAffine(m mat3.Mat3, t mat3.Vec3) Affine {
	return Affine{M: m, T: t}
}

// NewTranslation builds the pure translation F(p) = p + t.
func NewTranslation(t mat3.Vec3) Affine {
	return Affine{M: mat3.Identity(), T: t}
}

// Identity returns the identity warp F(p) = p.
func Identity() Affine {
	return Affine{M: mat3.Identity()}
}

// Forward maps p through the affine warp.
func (a Affine) Forward(p mat3.Vec3) mat3.Vec3 {
	return a.M.MulVec(p).Add(a.T)
}

// ForwardJacobian returns F(p) and the constant Jacobian M.
func (a Affine) ForwardJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3) {
	return a.Forward(p), a.M
}
