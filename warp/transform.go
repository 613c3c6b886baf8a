package warp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/nwarp/mat3"
)

// Transform wraps an Evaluator behind a direction switch: in forward
// mode it delegates to the evaluator, in inverse mode it runs the
// Newton engine against the same forward mapping. The inversion itself
// is never recursive — flipping direction twice yields the original
// forward behavior bit-for-bit.
//
// Construction resolves Options once; per-point calls pay no option
// processing. A Transform is safe for concurrent point transforms;
// ToggleInverse must not race with in-flight calls (synchronize
// externally if a shared instance changes direction mid-stream).
type Transform struct {
	ev      Evaluator // forward mapping F; never nil
	opts    Options   // resolved configuration, fixed at construction
	inverse bool      // false: apply F; true: apply F⁻¹
}

// New builds a Transform around the forward mapping ev.
// Returns ErrNilEvaluator if ev is nil. Option misuse (bad tolerance,
// bad budget) panics inside the With* constructor, before New runs.
func New(ev Evaluator, opts ...Option) (*Transform, error) {
	// 1) Validate the collaborator.
	if ev == nil {
		return nil, ErrNilEvaluator
	}

	// 2) Resolve configuration once, up front.
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}

	return &Transform{ev: ev, opts: cfg}, nil
}

// TransformPoint maps p through the transform in its current direction.
//
// Forward mode is a plain evaluator call. Inverse mode runs the Newton
// engine; if the iteration budget runs out, the warning is written to
// the configured Logger and the best estimate is returned — by
// contract, non-convergence degrades accuracy, not control flow.
// Callers that must distinguish use TransformPointDetailed.
func (t *Transform) TransformPoint(p mat3.Vec3) mat3.Vec3 {
	if !t.inverse {
		return t.ev.Forward(p)
	}

	res, err := invert(t.ev, p, t.opts)
	if err != nil {
		t.warn(err)
	}

	return res.Point
}

// TransformPointDetailed is TransformPoint with diagnostics and no
// logging. In forward mode the Result is trivially converged with zero
// iterations; in inverse mode it carries the engine's full report and
// any *NoConvergenceError is returned instead of logged.
func (t *Transform) TransformPointDetailed(p mat3.Vec3) (Result, error) {
	if !t.inverse {
		return Result{Point: t.ev.Forward(p), Converged: true}, nil
	}

	return invert(t.ev, p, t.opts)
}

// TransformPointAndJacobian maps p and reports the Jacobian of the
// applied mapping at p.
//
// Forward mode returns F(p) and J_F(p) straight from the evaluator.
// Inverse mode first recovers the pre-image X = F⁻¹(p), then evaluates
// the forward Jacobian AT X and inverts it: by the inverse function
// theorem J_{F⁻¹}(p) = J_F(X)⁻¹. Evaluating at the pre-image (rather
// than at p) is what makes the identity J_{F⁻¹}(p)·J_F(X) = I hold to
// working precision.
func (t *Transform) TransformPointAndJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3) {
	if !t.inverse {
		return t.ev.ForwardJacobian(p)
	}

	// 1) Recover the pre-image (best effort on non-convergence).
	res, err := invert(t.ev, p, t.opts)
	if err != nil {
		t.warn(err)
	}

	// 2) Differentiate the forward map at the pre-image and invert.
	_, jac := t.ev.ForwardJacobian(res.Point)

	return res.Point, jac.Invert()
}

// TransformPoints maps every point of ps in the current direction and
// returns a freshly allocated slice; ps itself is never written to.
// Warnings for non-converging points are logged per point, and their
// best estimates still land in the output.
func (t *Transform) TransformPoints(ps []mat3.Vec3) []mat3.Vec3 {
	out := make([]mat3.Vec3, len(ps))
	for i, p := range ps {
		out[i] = t.TransformPoint(p)
	}

	return out
}

// TransformPoint32 is the single-precision entry point: widen, run the
// double-precision path, narrow the result.
func (t *Transform) TransformPoint32(p mat3.Vec3f) mat3.Vec3f {
	return t.TransformPoint(p.Wide()).Narrow()
}

// TransformPointAndJacobian32 is the single-precision counterpart of
// TransformPointAndJacobian.
func (t *Transform) TransformPointAndJacobian32(p mat3.Vec3f) (mat3.Vec3f, mat3.Mat3f) {
	point, jac := t.TransformPointAndJacobian(p.Wide())

	return point.Narrow(), jac.Narrow()
}

// ToggleInverse flips the direction of the transform: forward becomes
// inverse and vice versa. The flip is O(1) — no state beyond the flag
// changes — and the OnChange callback (if any) fires on every call,
// unconditionally, so dependents can invalidate cached results.
func (t *Transform) ToggleInverse() {
	t.inverse = !t.inverse
	if t.opts.OnChange != nil {
		t.opts.OnChange()
	}
}

// IsInverse reports whether the transform currently applies F⁻¹.
func (t *Transform) IsInverse() bool { return t.inverse }

// Tolerance returns the convergence threshold the inverse path uses.
func (t *Transform) Tolerance() float64 { return t.opts.Tolerance }

// MaxIterations returns the Newton step budget per inverted point.
func (t *Transform) MaxIterations() int { return t.opts.MaxIterations }

// Evaluator exposes the wrapped forward mapping.
func (t *Transform) Evaluator() Evaluator { return t.ev }

// String summarizes the transform state for logs and debug output.
func (t *Transform) String() string {
	return fmt.Sprintf("warp.Transform(inverse=%t, tolerance=%g, maxIterations=%d)",
		t.inverse, t.opts.Tolerance, t.opts.MaxIterations)
}

// warn routes an inversion failure to the configured logger, if any.
func (t *Transform) warn(err error) {
	if t.opts.Logger == nil {
		return
	}

	var nc *NoConvergenceError
	if errors.As(err, &nc) {
		t.opts.Logger.Warn("inverse transform did not converge",
			slog.String("point", nc.Target.String()),
			slog.Float64("residual", nc.Residual),
			slog.Int("iterations", nc.Iterations),
		)

		return
	}

	t.opts.Logger.Warn("inverse transform failed", slog.String("error", err.Error()))
}
