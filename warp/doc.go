// Package warp inverts smooth nonlinear 3-D coordinate transforms by
// damped Newton iteration, and wraps forward mapping and numerical
// inversion behind a single Transform facade with a switchable
// direction.
//
// 🚀 What problem does it solve?
//
//	Many geometric warps — sinusoidal displacement, twists, radial
//	bulges, displacement lattices — are easy to evaluate forward but
//	have no closed-form inverse. Package warp recovers the pre-image
//	numerically: given a target Y and a forward map F with its
//	Jacobian, it finds X with F(X) ≈ Y to a configurable tolerance.
//
// ✨ Key features:
//   - Newton iteration with a quadratic-model backtracking safeguard
//     (Numerical Recipes §9.7): a step that increases the residual is
//     retried at a fractional distance clamped to [0.1, 0.5].
//   - Reflected initial guess X₀ = 2·Y − F(Y), exact for identity-like
//     maps and close for gentle warps, so typical inversions need
//     fewer than 10 iterations.
//   - Non-convergence is advisory, never fatal: the engine returns the
//     best estimate together with a *NoConvergenceError carrying the
//     target, the residual and the iteration count.
//   - Transform facade with an inverse-mode flag: the same object
//     serves F or F⁻¹, flips direction in O(1) via ToggleInverse, and
//     fires a change callback on every flip.
//   - Double precision throughout, with float32 entry points that
//     widen on input and narrow on output.
//
// ⚙️ Usage:
//
//	import (
//	    "github.com/katalvlaran/nwarp/mat3"
//	    "github.com/katalvlaran/nwarp/warp"
//	)
//
//	tr, err := warp.New(evaluator,
//	    warp.WithTolerance(1e-6),
//	    warp.WithMaxIterations(200),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tr.ToggleInverse()                       // now maps Y back to X
//	x := tr.TransformPoint(mat3.Vec3{1, 0.5, 2})
//
// Errors (sentinel):
//
//	– ErrNilEvaluator     if a nil Evaluator is supplied.
//	– ErrNoConvergence    wrapped by *NoConvergenceError when the
//	                      iteration budget runs out above tolerance.
//	– ErrBadTolerance     panic value for WithTolerance misuse.
//	– ErrBadMaxIterations panic value for WithMaxIterations misuse.
//
// Performance:
//
//   - Each iteration costs two-ish evaluator calls plus one 3×3 solve
//     (≈30 flops); no heap allocation in the loop.
//   - Well-conditioned warps converge quadratically; the 500-iteration
//     default cap is a safety net, not an expectation.
//
// Concurrency: a Transform is safe for concurrent reads (TransformPoint
// and friends) as long as no goroutine calls ToggleInverse at the same
// time. Synchronize direction changes externally, or give each
// goroutine its own Transform — construction is cheap.
package warp
