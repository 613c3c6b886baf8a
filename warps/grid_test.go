package warps_test

import (
	"testing"

	"github.com/katalvlaran/nwarp/mat3"
	"github.com/katalvlaran/nwarp/warps"
	"github.com/stretchr/testify/require"
)

// zeroField is the all-zero displacement function.
func zeroField(mat3.Vec3) mat3.Vec3 { return mat3.Vec3{} }

// unitCube builds a dims³ lattice on [0, dims−1]³ with unit spacing.
func unitCube(t *testing.T, dims int, fn func(mat3.Vec3) mat3.Vec3) warps.Grid {
	t.Helper()

	g, err := warps.NewGridFromFunc(mat3.Vec3{}, mat3.Vec3{1, 1, 1}, [3]int{dims, dims, dims}, fn)
	require.NoError(t, err)

	return g
}

// ------------------------------------------------------------------------
// 1. Construction and validation
// ------------------------------------------------------------------------

func TestNewGrid_Validation(t *testing.T) {
	valid := make([]mat3.Vec3, 2*2*2)

	// too few nodes on one axis
	_, err := warps.NewGrid(mat3.Vec3{}, mat3.Vec3{1, 1, 1}, [3]int{1, 2, 2}, valid)
	require.ErrorIs(t, err, warps.ErrGridDimensions)

	// non-positive spacing
	_, err = warps.NewGrid(mat3.Vec3{}, mat3.Vec3{1, 0, 1}, [3]int{2, 2, 2}, valid)
	require.ErrorIs(t, err, warps.ErrGridSpacing)

	// payload size mismatch
	_, err = warps.NewGrid(mat3.Vec3{}, mat3.Vec3{1, 1, 1}, [3]int{2, 2, 2}, valid[:7])
	require.ErrorIs(t, err, warps.ErrGridDisplacements)
}

func TestNewGrid_CopiesDisplacements(t *testing.T) {
	disp := make([]mat3.Vec3, 8)
	g, err := warps.NewGrid(mat3.Vec3{}, mat3.Vec3{1, 1, 1}, [3]int{2, 2, 2}, disp)
	require.NoError(t, err)

	// mutating the caller's buffer must not reach the grid
	disp[0] = mat3.Vec3{99, 99, 99}
	require.Equal(t, mat3.Vec3{}, g.At(0, 0, 0))
}

func TestGrid_Accessors(t *testing.T) {
	g, err := warps.NewGridFromFunc(mat3.Vec3{-1, 0, 2}, mat3.Vec3{0.5, 1, 2}, [3]int{3, 2, 4}, zeroField)
	require.NoError(t, err)

	require.Equal(t, mat3.Vec3{-1, 0, 2}, g.Origin())
	require.Equal(t, mat3.Vec3{0.5, 1, 2}, g.Spacing())
	require.Equal(t, [3]int{3, 2, 4}, g.Dims())

	lo, hi := g.Bounds()
	require.Equal(t, mat3.Vec3{-1, 0, 2}, lo)
	require.Equal(t, mat3.Vec3{0, 1, 8}, hi)
}

// ------------------------------------------------------------------------
// 2. Interpolation semantics
// ------------------------------------------------------------------------

func TestGrid_ZeroFieldIsIdentity(t *testing.T) {
	g := unitCube(t, 3, zeroField)

	for _, p := range []mat3.Vec3{
		{0.5, 0.5, 0.5},
		{1.9, 0.1, 1.5},
		{-4, 10, 3}, // far outside: clamped displacement is still zero
	} {
		require.Equal(t, p, g.Forward(p))
	}

	_, jac := g.ForwardJacobian(mat3.Vec3{0.5, 1.2, 1.7})
	require.Equal(t, mat3.Identity(), jac)
}

func TestGrid_ConstantFieldIsTranslation(t *testing.T) {
	shift := mat3.Vec3{0.25, -0.5, 1}
	g := unitCube(t, 3, func(mat3.Vec3) mat3.Vec3 { return shift })

	p := mat3.Vec3{1.25, 0.75, 0.5}
	require.Equal(t, p.Add(shift), g.Forward(p))

	// constant displacement contributes nothing to the Jacobian
	_, jac := g.ForwardJacobian(p)
	require.Equal(t, mat3.Identity(), jac)
}

func TestGrid_ReproducesLinearField(t *testing.T) {
	// trilinear interpolation reproduces fields linear per axis exactly:
	// sample D(node) = (0.05·y, −0.02·x, 0) and evaluate off-node
	g := unitCube(t, 4, func(n mat3.Vec3) mat3.Vec3 {
		return mat3.Vec3{0.05 * n[1], -0.02 * n[0], 0}
	})

	p := mat3.Vec3{0.3, 0.7, 1.4}
	got := g.Forward(p)
	require.InDelta(t, p[0]+0.05*p[1], got[0], 1e-12)
	require.InDelta(t, p[1]-0.02*p[0], got[1], 1e-12)
	require.InDelta(t, p[2], got[2], 1e-12)

	// and its Jacobian carries exactly the cross-derivatives
	_, jac := g.ForwardJacobian(p)
	require.InDelta(t, 1.0, jac[0][0], 1e-12)
	require.InDelta(t, 0.05, jac[0][1], 1e-12)
	require.InDelta(t, -0.02, jac[1][0], 1e-12)
	require.InDelta(t, 1.0, jac[2][2], 1e-12)
}

func TestGrid_JacobianMatchesFiniteDifference(t *testing.T) {
	// a gently varying smooth field, checked strictly inside cells so the
	// finite-difference probe never crosses a cell face
	g := unitCube(t, 4, func(n mat3.Vec3) mat3.Vec3 {
		return mat3.Vec3{
			0.04 * n[1] * n[2],
			0.03 * n[0],
			-0.05 * n[1],
		}
	})

	for _, p := range []mat3.Vec3{
		{0.5, 0.5, 0.5},
		{1.25, 2.4, 0.3},
		{2.5, 1.5, 2.5},
	} {
		checkJacobian(t, g, p)
		checkImageConsistency(t, g, p)
	}
}

func TestGrid_BorderClampZeroesPartials(t *testing.T) {
	g := unitCube(t, 3, func(n mat3.Vec3) mat3.Vec3 {
		return mat3.Vec3{0.1 * n[0], 0, 0}
	})

	// outside along x: the clamped displacement no longer varies with x
	_, jac := g.ForwardJacobian(mat3.Vec3{5, 1, 1})
	require.Equal(t, 1.0, jac[0][0])

	// inside, the same partial carries the field slope
	_, jac = g.ForwardJacobian(mat3.Vec3{1, 1, 1})
	require.InDelta(t, 1.1, jac[0][0], 1e-12)
}
