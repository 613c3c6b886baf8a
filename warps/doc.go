// Package warps provides ready-made forward mappings (evaluators) for
// the inversion engine in package warp: each type implements
//
//	Forward(p mat3.Vec3) mat3.Vec3
//	ForwardJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3)
//
// with an analytic Jacobian — no finite differencing anywhere.
//
// Shapes:
//
//   - Affine — F(p) = M·p + T. The baseline: exact inverse exists, so
//     it doubles as a correctness oracle. Bijective iff det(M) ≠ 0.
//   - Sine — cyclic sinusoidal displacement, each axis shifted by a
//     sinusoid of the next one (x by y, y by z, z by x). Bijective when
//     every |Amplitude·Frequency| < 1.
//   - Twist — rotation about a vertical axis whose angle grows linearly
//     with z. Bijective for any rate; z is preserved.
//   - Radial — radial push/pull about a center, scale 1 + k·r².
//     Bijective everywhere for k ≥ 0; for k < 0 only inside the ball
//     r² < 1/(−3k).
//   - Grid — displacement lattice over an axis-aligned box with
//     trilinear interpolation between nodes, clamped at the borders.
//     Stays bijective while node displacements are small against the
//     lattice spacing.
//
// All shapes are immutable value types: construct once, share freely
// across goroutines.
package warps
