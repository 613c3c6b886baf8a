// Package nwarp inverts smooth nonlinear warps of 3-space — point by
// point, with derivatives, in either direction.
//
// 🚀 What is nwarp?
//
//	A compact numeric toolkit built around one engine:
//		• Newton inversion: damped, backtracking, with per-solve diagnostics
//		• A two-way facade: one Transform serves forward and inverse mapping
//		• Shape catalog: affine, sine ripple, twist, radial bulge, lattice
//		• YAML scenes + a CLI for batch inversion reports
//		• A live demo that warps a grid and picks pre-images under the mouse
//
// ✨ Why nwarp?
//
//   - One call — warp.InvertPoint recovers the pre-image of any smooth map
//   - Honest results — iterations, residual and convergence on every solve,
//     and a best-effort answer even when the budget runs out
//   - Direction as state — flip a Transform live; caches learn of it through
//     the change notification
//   - Value types — Vec3/Mat3 are plain arrays, cheap to copy and compare
//
// The packages:
//
//	mat3/       — Vec3/Mat3 values, 3x3 linear solve & inverse
//	warp/       — the inversion engine and the Transform facade
//	warps/      — ready-made Evaluator shapes
//	cmd/nwarp   — scene runner CLI
//	demos/      — interactive viewers
//
// Quick sketch:
//
//	Y = F(X)                  // the warp you have
//	X ≈ warp.InvertPoint(F,Y) // the point you want back
//
// Start with warp.New around any Evaluator, or go straight to
// warp.InvertPoint for one-off solves.
//
//	go get github.com/katalvlaran/nwarp
package nwarp
