package warps

import (
	"math"

	"github.com/katalvlaran/nwarp/mat3"
)

// Twist rotates each horizontal slice about a vertical axis through
// Center, by an angle that grows linearly with height:
//
//	θ(z) = Rate·z
//	F_x  = C_x + cos(θ)·(x−C_x) − sin(θ)·(y−C_y)
//	F_y  = C_y + sin(θ)·(x−C_x) + cos(θ)·(y−C_y)
//	F_z  = z
//
// Every slice is a rigid rotation, so the warp is bijective for any
// Rate, and because z passes through unchanged the exact inverse is a
// rotation by −θ(z) — handy as a test oracle. The Jacobian is dense in
// its upper-right corner: ∂F_x/∂z and ∂F_y/∂z carry the twist coupling.
type Twist struct {
	Rate   float64   // radians of rotation per unit of z
	Center mat3.Vec3 // axis position; only x and y are used
}

// NewTwist builds a twist about the vertical axis through center.
func NewTwist(rate float64, center mat3.Vec3) Twist {
	return Twist{Rate: rate, Center: center}
}

// Forward maps p through the twist.
func (w Twist) Forward(p mat3.Vec3) mat3.Vec3 {
	sin, cos := math.Sincos(w.Rate * p[2])
	dx := p[0] - w.Center[0]
	dy := p[1] - w.Center[1]

	return mat3.Vec3{
		w.Center[0] + cos*dx - sin*dy,
		w.Center[1] + sin*dx + cos*dy,
		p[2],
	}
}

// ForwardJacobian returns F(p) and its Jacobian. The 2×2 rotation block
// sits top-left; the third column holds the θ′-induced coupling of the
// horizontal image to z.
func (w Twist) ForwardJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3) {
	sin, cos := math.Sincos(w.Rate * p[2])
	dx := p[0] - w.Center[0]
	dy := p[1] - w.Center[1]

	image := mat3.Vec3{
		w.Center[0] + cos*dx - sin*dy,
		w.Center[1] + sin*dx + cos*dy,
		p[2],
	}
	jac := mat3.Mat3{
		{cos, -sin, w.Rate * (-sin*dx - cos*dy)},
		{sin, cos, w.Rate * (cos*dx - sin*dy)},
		{0, 0, 1},
	}

	return image, jac
}

// Unwind returns the exact pre-image of q, rotating by −θ(q_z).
// It exists as a closed-form oracle for validating numerical inversion.
func (w Twist) Unwind(q mat3.Vec3) mat3.Vec3 {
	sin, cos := math.Sincos(w.Rate * q[2])
	dx := q[0] - w.Center[0]
	dy := q[1] - w.Center[1]

	// inverse rotation: transpose of the 2×2 block
	return mat3.Vec3{
		w.Center[0] + cos*dx + sin*dy,
		w.Center[1] - sin*dx + cos*dy,
		q[2],
	}
}
