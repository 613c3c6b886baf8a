package warps

import (
	"errors"
	"math"

	"github.com/katalvlaran/nwarp/mat3"
)

// Sentinel errors returned by the Grid constructors.
var (
	// ErrGridDimensions indicates fewer than 2 lattice nodes on an axis;
	// trilinear interpolation needs at least one cell per direction.
	ErrGridDimensions = errors.New("warps: grid dimensions must be at least 2 per axis")

	// ErrGridSpacing indicates a non-positive or non-finite node spacing.
	ErrGridSpacing = errors.New("warps: grid spacing must be positive and finite")

	// ErrGridDisplacements indicates that the displacement slice does not
	// hold exactly nx·ny·nz vectors.
	ErrGridDisplacements = errors.New("warps: displacement count must equal nx·ny·nz")
)

// Grid is a free-form warp defined by a displacement lattice: a regular
// box of nodes, each carrying a displacement vector, blended by
// trilinear interpolation,
//
//	F(p) = p + D(p)
//
// where D is the interpolated displacement at p. Outside the lattice
// the displacement clamps to the border value, so F is continuous
// everywhere and equals a translation far away.
//
// The Jacobian is the analytic derivative of the interpolant,
// J = I + ∂D/∂p; along a clamped axis the displacement is constant and
// the corresponding partials are zero.
//
// Bijectivity is the caller's bargain: keep node displacements small
// against the lattice spacing (so that I dominates ∂D/∂p) and the warp
// stays invertible.
//
// Grid is immutable after construction and safe to copy and share.
type Grid struct {
	origin  mat3.Vec3   // position of node (0,0,0)
	spacing mat3.Vec3   // distance between adjacent nodes, per axis
	dims    [3]int      // node counts (nx, ny, nz), each ≥ 2
	disp    []mat3.Vec3 // node displacements, x-fastest layout
}

// NewGrid builds a displacement-lattice warp. The disp slice is laid
// out x-fastest: index (i,j,k) lives at (k·ny + j)·nx + i. The slice is
// copied, so callers may reuse their buffer afterwards.
func NewGrid(origin, spacing mat3.Vec3, dims [3]int, disp []mat3.Vec3) (Grid, error) {
	// 1) Validate the lattice shape.
	for a := 0; a < 3; a++ {
		if dims[a] < 2 {
			return Grid{}, ErrGridDimensions
		}
		if spacing[a] <= 0 || math.IsNaN(spacing[a]) || math.IsInf(spacing[a], 0) {
			return Grid{}, ErrGridSpacing
		}
	}

	// 2) Validate the payload size.
	if len(disp) != dims[0]*dims[1]*dims[2] {
		return Grid{}, ErrGridDisplacements
	}

	// 3) Defensive copy: the Grid owns its lattice.
	owned := make([]mat3.Vec3, len(disp))
	copy(owned, disp)

	return Grid{origin: origin, spacing: spacing, dims: dims, disp: owned}, nil
}

// NewGridFromFunc builds a lattice by sampling fn at every node
// position. Convenient for synthetic fields in tests and demos.
func NewGridFromFunc(origin, spacing mat3.Vec3, dims [3]int, fn func(node mat3.Vec3) mat3.Vec3) (Grid, error) {
	disp := make([]mat3.Vec3, dims[0]*dims[1]*dims[2])
	idx := 0
	for k := 0; k < dims[2]; k++ {
		for j := 0; j < dims[1]; j++ {
			for i := 0; i < dims[0]; i++ {
				node := mat3.Vec3{
					origin[0] + float64(i)*spacing[0],
					origin[1] + float64(j)*spacing[1],
					origin[2] + float64(k)*spacing[2],
				}
				disp[idx] = fn(node)
				idx++
			}
		}
	}

	return NewGrid(origin, spacing, dims, disp)
}

// Origin returns the position of lattice node (0,0,0).
func (g Grid) Origin() mat3.Vec3 { return g.origin }

// Spacing returns the per-axis distance between adjacent nodes.
func (g Grid) Spacing() mat3.Vec3 { return g.spacing }

// Dims returns the per-axis node counts.
func (g Grid) Dims() [3]int { return g.dims }

// Bounds returns the lattice box as its minimum and maximum corners.
func (g Grid) Bounds() (mat3.Vec3, mat3.Vec3) {
	maxC := g.origin
	for a := 0; a < 3; a++ {
		maxC[a] += float64(g.dims[a]-1) * g.spacing[a]
	}

	return g.origin, maxC
}

// At returns the displacement stored at node (i,j,k).
// Indices out of range panic, as with any slice access.
func (g Grid) At(i, j, k int) mat3.Vec3 {
	return g.disp[(k*g.dims[1]+j)*g.dims[0]+i]
}

// locate maps p to lattice coordinates: the cell index per axis, the
// fraction within the cell, and whether p was inside the lattice span
// on that axis. Outside positions clamp to the border cell with the
// fraction pinned to 0 or 1.
func (g Grid) locate(p mat3.Vec3) (cell [3]int, frac [3]float64, inside [3]bool) {
	for a := 0; a < 3; a++ {
		u := (p[a] - g.origin[a]) / g.spacing[a]
		inside[a] = u >= 0 && u <= float64(g.dims[a]-1)

		c := int(math.Floor(u))
		if c < 0 {
			c = 0
		}
		if c > g.dims[a]-2 {
			c = g.dims[a] - 2
		}

		t := u - float64(c)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}

		cell[a], frac[a] = c, t
	}

	return cell, frac, inside
}

// Forward maps p through the lattice warp: p plus the trilinearly
// interpolated displacement.
func (g Grid) Forward(p mat3.Vec3) mat3.Vec3 {
	cell, t, _ := g.locate(p)

	wx := [2]float64{1 - t[0], t[0]}
	wy := [2]float64{1 - t[1], t[1]}
	wz := [2]float64{1 - t[2], t[2]}

	var d mat3.Vec3
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				node := g.At(cell[0]+i, cell[1]+j, cell[2]+k)
				d = d.Add(node.Scale(wx[i] * wy[j] * wz[k]))
			}
		}
	}

	return p.Add(d)
}

// ForwardJacobian returns F(p) and J = I + ∂D/∂p, the analytic
// derivative of the trilinear interpolant. Partials along an axis where
// p sits outside the lattice are zero (the clamped displacement is
// constant there).
func (g Grid) ForwardJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3) {
	cell, t, inside := g.locate(p)

	wx := [2]float64{1 - t[0], t[0]}
	wy := [2]float64{1 - t[1], t[1]}
	wz := [2]float64{1 - t[2], t[2]}
	// d(weight)/dt per corner: −1 for the low corner, +1 for the high
	sign := [2]float64{-1, 1}

	// Accumulate the displacement and its derivative along each lattice
	// axis in a single sweep over the 8 corners.
	var d mat3.Vec3
	var dDdt [3]mat3.Vec3
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				node := g.At(cell[0]+i, cell[1]+j, cell[2]+k)
				d = d.Add(node.Scale(wx[i] * wy[j] * wz[k]))
				dDdt[0] = dDdt[0].Add(node.Scale(sign[i] * wy[j] * wz[k]))
				dDdt[1] = dDdt[1].Add(node.Scale(wx[i] * sign[j] * wz[k]))
				dDdt[2] = dDdt[2].Add(node.Scale(wx[i] * wy[j] * sign[k]))
			}
		}
	}

	// J[r][c] = δ_rc + (∂D_r/∂t_c)/spacing_c, zeroed on clamped axes.
	jac := mat3.Identity()
	for c := 0; c < 3; c++ {
		if !inside[c] {
			continue
		}
		for r := 0; r < 3; r++ {
			jac[r][c] += dDdt[c][r] / g.spacing[c]
		}
	}

	return p.Add(d), jac
}
