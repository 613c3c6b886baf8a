// Package warps_test validates the analytic shapes: forward formulas,
// Jacobian correctness against central differences, and the documented
// oracle inverses.
package warps_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/nwarp/mat3"
	"github.com/katalvlaran/nwarp/warp"
	"github.com/katalvlaran/nwarp/warps"
	"github.com/stretchr/testify/require"
)

// every shape must satisfy the evaluator contract
var (
	_ warp.Evaluator = warps.Affine{}
	_ warp.Evaluator = warps.Sine{}
	_ warp.Evaluator = warps.Twist{}
	_ warp.Evaluator = warps.Radial{}
	_ warp.Evaluator = warps.Grid{}
)

// checkJacobian compares the analytic Jacobian at p against central
// finite differences of Forward. Step 1e-6 puts the truncation error
// around 1e-12 and the rounding error around 1e-10 for O(1) fields, so
// 1e-5 is a comfortable assertion margin.
func checkJacobian(t *testing.T, ev warp.Evaluator, p mat3.Vec3) {
	t.Helper()

	_, jac := ev.ForwardJacobian(p)
	const h = 1e-6
	for c := 0; c < 3; c++ {
		hi, lo := p, p
		hi[c] += h
		lo[c] -= h
		diff := ev.Forward(hi).Sub(ev.Forward(lo)).Scale(1 / (2 * h))
		for r := 0; r < 3; r++ {
			require.InDelta(t, diff[r], jac[r][c], 1e-5, "∂F_%d/∂p_%d at %v", r, c, p)
		}
	}
}

// checkImageConsistency verifies that ForwardJacobian reports the same
// image as Forward.
func checkImageConsistency(t *testing.T, ev warp.Evaluator, p mat3.Vec3) {
	t.Helper()

	image, _ := ev.ForwardJacobian(p)
	require.Equal(t, ev.Forward(p), image)
}

// ------------------------------------------------------------------------
// 1. Affine
// ------------------------------------------------------------------------

func TestAffine_Forward(t *testing.T) {
	a := warps.NewAffine(mat3.Diagonal(mat3.Vec3{2, 3, 4}), mat3.Vec3{1, 0, -1})
	require.Equal(t, mat3.Vec3{3, 3, 3}, a.Forward(mat3.Vec3{1, 1, 1}))
}

func TestAffine_JacobianIsLinearPart(t *testing.T) {
	m := mat3.Mat3{
		{2, 1, 0},
		{0, 3, 1},
		{1, 0, 4},
	}
	a := warps.NewAffine(m, mat3.Vec3{5, 5, 5})

	// the Jacobian of an affine map is its linear part, anywhere
	_, jac := a.ForwardJacobian(mat3.Vec3{-7, 11, 0.5})
	require.Equal(t, m, jac)

	checkJacobian(t, a, mat3.Vec3{0.3, -0.2, 1.7})
	checkImageConsistency(t, a, mat3.Vec3{0.3, -0.2, 1.7})
}

func TestAffine_Helpers(t *testing.T) {
	require.Equal(t, mat3.Vec3{4, 5, 6}, warps.NewTranslation(mat3.Vec3{3, 3, 3}).Forward(mat3.Vec3{1, 2, 3}))
	require.Equal(t, mat3.Vec3{1, 2, 3}, warps.Identity().Forward(mat3.Vec3{1, 2, 3}))
}

// ------------------------------------------------------------------------
// 2. Sine
// ------------------------------------------------------------------------

func TestSineX_ClassicRipple(t *testing.T) {
	s := warps.SineX(0.1, 1)

	// F(1, 0.5, 2) = (1 + 0.1·sin(0.5), 0.5, 2)
	got := s.Forward(mat3.Vec3{1, 0.5, 2})
	require.InDelta(t, 1+0.1*math.Sin(0.5), got[0], 1e-15)
	require.Equal(t, 0.5, got[1])
	require.Equal(t, 2.0, got[2])

	// only the x-by-y coupling is present in the Jacobian
	_, jac := s.ForwardJacobian(mat3.Vec3{1, 0.5, 2})
	require.InDelta(t, 0.1*math.Cos(0.5), jac[0][1], 1e-15)
	require.Equal(t, 1.0, jac[0][0])
	require.Equal(t, 0.0, jac[1][2])
	require.Equal(t, 0.0, jac[2][0])
}

func TestSine_FullCoupling(t *testing.T) {
	s := warps.NewSine(
		mat3.Vec3{0.2, 0.15, 0.1},
		mat3.Vec3{1.3, 0.7, 2.1},
		mat3.Vec3{0.4, -0.2, 1.0},
	)

	for _, p := range []mat3.Vec3{
		{0, 0, 0},
		{1, 0.5, 2},
		{-2, 3, -1.5},
	} {
		checkJacobian(t, s, p)
		checkImageConsistency(t, s, p)
	}
}

// ------------------------------------------------------------------------
// 3. Twist
// ------------------------------------------------------------------------

func TestTwist_PreservesZAndRadius(t *testing.T) {
	w := warps.NewTwist(0.5, mat3.Vec3{})
	p := mat3.Vec3{1, 2, 3}
	q := w.Forward(p)

	// z passes through; the horizontal radius is invariant under rotation
	require.Equal(t, p[2], q[2])
	rIn := math.Hypot(p[0], p[1])
	rOut := math.Hypot(q[0], q[1])
	require.InDelta(t, rIn, rOut, 1e-12)
}

func TestTwist_UnwindIsExactInverse(t *testing.T) {
	w := warps.NewTwist(0.37, mat3.Vec3{0.5, -0.5, 0})

	for _, p := range []mat3.Vec3{
		{1, 0, 1},
		{-2, 1.5, -3},
		{0.5, -0.5, 7}, // on the axis: fixed point of every slice
	} {
		back := w.Unwind(w.Forward(p))
		for i := 0; i < 3; i++ {
			require.InDelta(t, p[i], back[i], 1e-12, "component %d", i)
		}
	}
}

func TestTwist_Jacobian(t *testing.T) {
	w := warps.NewTwist(0.8, mat3.Vec3{1, 1, 0})
	for _, p := range []mat3.Vec3{
		{2, 1, 0.5},
		{0, 0, -2},
		{1.5, -0.25, 3},
	} {
		checkJacobian(t, w, p)
		checkImageConsistency(t, w, p)
	}
}

// ------------------------------------------------------------------------
// 4. Radial
// ------------------------------------------------------------------------

func TestRadial_CenterIsFixedPoint(t *testing.T) {
	r := warps.NewRadial(0.25, mat3.Vec3{1, 2, 3})
	require.Equal(t, mat3.Vec3{1, 2, 3}, r.Forward(mat3.Vec3{1, 2, 3}))
}

func TestRadial_BulgeScalesOutward(t *testing.T) {
	r := warps.NewRadial(0.1, mat3.Vec3{})

	// |d| = 1 ⇒ scale = 1.1
	got := r.Forward(mat3.Vec3{1, 0, 0})
	require.InDelta(t, 1.1, got[0], 1e-15)
	require.Equal(t, 0.0, got[1])
	require.Equal(t, 0.0, got[2])
}

func TestRadial_Jacobian(t *testing.T) {
	r := warps.NewRadial(0.3, mat3.Vec3{0.5, 0, -1})
	for _, p := range []mat3.Vec3{
		{1, 1, 0},
		{-0.5, 0.25, -1.75},
		{0.5, 0, -1}, // at the center the Jacobian is the identity
	} {
		checkJacobian(t, r, p)
		checkImageConsistency(t, r, p)
	}

	_, jac := r.ForwardJacobian(mat3.Vec3{0.5, 0, -1})
	require.Equal(t, mat3.Identity(), jac)
}
