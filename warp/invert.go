// Package warp implements numerical inversion of smooth 3-D coordinate
// transforms via Newton's method with a backtracking safeguard.
//
// The algorithm per point:
//
//  1. Start from the reflected guess X₀ = 2·Y − F(Y).
//  2. While |F(X) − Y| exceeds the tolerance and budget remains, solve
//     J·δ = F(X) − Y and step X ← X − δ.
//  3. If a step increased the residual, back up and retry a fractional
//     step f·δ, with f chosen by a one-dimensional quadratic model of
//     the squared residual (Numerical Recipes §9.7) and clamped to
//     [0.1, 0.5].
//  4. On budget exhaustion, return the best estimate together with a
//     *NoConvergenceError — the caller decides whether that matters.
//
// Singular Jacobians are deliberately not screened: the 3×3 solve
// divides through and non-finite values propagate, so a degenerate
// iterate surfaces as non-convergence rather than a panic or an
// extra branch in the hot loop.
package warp

import (
	"math"

	"github.com/katalvlaran/nwarp/mat3"
)

// Clamp bounds for the backtracking fraction. A damped step never
// retreats below 10% or beyond 50% of the full Newton step.
const (
	dampMin = 0.1
	dampMax = 0.5
)

// InvertPoint computes the pre-image X with F(X) ≈ target for the
// forward mapping ev. It accepts functional options to override the
// tolerance, the iteration budget and the trace hook.
//
// Returns the best estimate and a nil error on convergence. On budget
// exhaustion the estimate is still returned, alongside a
// *NoConvergenceError (match with errors.Is(err, ErrNoConvergence)).
// A nil evaluator yields ErrNilEvaluator.
func InvertPoint(ev Evaluator, target mat3.Vec3, opts ...Option) (mat3.Vec3, error) {
	res, err := InvertPointDetailed(ev, target, opts...)

	return res.Point, err
}

// InvertPointDetailed is InvertPoint with full diagnostics: the Result
// carries the iteration count, the exit residual and the convergence
// verdict in addition to the point itself.
func InvertPointDetailed(ev Evaluator, target mat3.Vec3, opts ...Option) (Result, error) {
	// 1) Build and validate Options (With* constructors panic on misuse).
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}

	// 2) Validate the evaluator.
	if ev == nil {
		return Result{}, ErrNilEvaluator
	}

	// 3) Run the iteration with the resolved configuration.
	return invert(ev, target, cfg)
}

// invert is the shared core behind the package-level entry points and
// the Transform facade, which passes its already-resolved Options and
// must not pay for re-application.
func invert(ev Evaluator, target mat3.Vec3, cfg Options) (Result, error) {
	n := newton{ev: ev, target: target, cfg: cfg}

	return n.run()
}

// newton holds the mutable state of a single inversion.
type newton struct {
	ev     Evaluator // forward mapping under inversion; read-only
	target mat3.Vec3 // requested output point Y
	cfg    Options   // resolved configuration; read-only

	candidate mat3.Vec3 // current estimate of the pre-image X
	jacobian  mat3.Mat3 // Jacobian of F at candidate
	deltaP    mat3.Vec3 // residual F(candidate) − target
	errSq     float64   // |deltaP|²
	iter      int       // completed Newton steps
}

// evaluate refreshes image, Jacobian and residual at the current
// candidate. One evaluator call, shared by initial setup, full steps
// and damped retries.
func (n *newton) evaluate() {
	image, jac := n.ev.ForwardJacobian(n.candidate)
	n.jacobian = jac
	n.deltaP = image.Sub(n.target)
	n.errSq = n.deltaP.NormSq()
}

// run drives the iteration to convergence or budget exhaustion.
func (n *newton) run() (Result, error) {
	tolSq := n.cfg.Tolerance * n.cfg.Tolerance

	// 1) Reflected first guess: X₀ = 2·Y − F(Y). For an identity-like
	//    mapping this is already the answer (2·Y − Y is exact in IEEE
	//    arithmetic), and for gentle warps it lands within the basin of
	//    quadratic convergence.
	n.candidate = n.target.Scale(2).Sub(n.ev.Forward(n.target))
	n.evaluate()

	// 2) Main loop. The residual check runs against the squared
	//    tolerance so the loop body stays square-root free. A NaN
	//    residual compares false and exits immediately; it is then
	//    reported as non-convergence below.
	for n.iter = 0; n.iter < n.cfg.MaxIterations && n.errSq > tolSq; n.iter++ {
		n.step()
		if n.cfg.OnIteration != nil {
			n.cfg.OnIteration(n.iter, n.candidate, n.errSq)
		}
	}

	// 3) Outcome. Converged means the residual actually meets the
	//    tolerance — a non-finite exit counts as failure even when the
	//    loop stopped early.
	res := Result{
		Point:      n.candidate,
		Iterations: n.iter,
		Residual:   math.Sqrt(n.errSq),
		Converged:  n.errSq <= tolSq,
	}
	if !res.Converged {
		return res, &NoConvergenceError{
			Target:     n.target,
			Residual:   res.Residual,
			Iterations: n.iter,
		}
	}

	return res, nil
}

// step performs one Newton update with the backtracking safeguard.
func (n *newton) step() {
	// 1) Newton direction: solve J·δ = deltaP. Solving the 3×3 system
	//    directly is cheaper and better conditioned than forming J⁻¹.
	delta := mat3.Solve(n.jacobian, n.deltaP)

	// 2) Remember the current iterate; the damped retry restarts here.
	lastCandidate := n.candidate
	lastErrSq := n.errSq

	// 3) Gradient of the squared residual along the diagonal terms,
	//    ∂(|F(X)−Y|²)/∂X_k ≈ 2·deltaP[k]·J[k][k]. The off-diagonal
	//    contributions are ignored; the estimate only steers the
	//    line-search fraction, not the step direction.
	gradient := mat3.Vec3{
		2 * n.deltaP[0] * n.jacobian[0][0],
		2 * n.deltaP[1] * n.jacobian[1][1],
		2 * n.deltaP[2] * n.jacobian[2][2],
	}

	// 4) Take the full step and re-evaluate.
	n.candidate = n.candidate.Sub(delta)
	n.evaluate()

	// 5) Backtrack if the residual grew: fit a quadratic to the squared
	//    residual over the step fraction and retry at its minimum,
	//    f = d / (2·(errSq − lastErrSq − d)). The clamp keeps the retry
	//    inside [0.1, 0.5] even when the model degenerates (including a
	//    NaN f, which fails both comparisons and is taken as-is — the
	//    resulting non-finite iterate then surfaces as non-convergence).
	if n.errSq > lastErrSq {
		d := gradient.Dot(delta)
		f := d / (2 * (n.errSq - lastErrSq - d))
		if f < dampMin {
			f = dampMin
		}
		if f > dampMax {
			f = dampMax
		}

		n.candidate = lastCandidate.Sub(delta.Scale(f))
		n.evaluate()
	}
}
