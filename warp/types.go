// Package warp defines the evaluator contract, configuration options and
// error taxonomy for the Newton inversion engine and the Transform facade.
//
// The package follows functional-options configuration: DefaultOptions()
// is the single source of truth for defaults, With* constructors validate
// eagerly and panic on programmer error, and resolved Options are never
// mutated after a call starts.
package warp

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/nwarp/mat3"
)

// Sentinel errors returned (or panicked) by this package.
var (
	// ErrNilEvaluator indicates that a nil Evaluator was supplied to
	// New, InvertPoint or InvertPointDetailed.
	ErrNilEvaluator = errors.New("warp: evaluator is nil")

	// ErrNoConvergence indicates that Newton iteration failed to bring
	// the residual below tolerance: the budget ran out, or an iterate
	// went non-finite. It is always wrapped in a *NoConvergenceError
	// carrying the diagnostic payload; match with errors.Is.
	ErrNoConvergence = errors.New("warp: inversion did not converge")

	// ErrBadTolerance is the panic value of WithTolerance for a
	// non-positive or non-finite tolerance.
	ErrBadTolerance = errors.New("warp: Tolerance must be positive and finite")

	// ErrBadMaxIterations is the panic value of WithMaxIterations for a
	// non-positive iteration budget.
	ErrBadMaxIterations = errors.New("warp: MaxIterations must be positive")
)

// Default inversion parameters. DefaultOptions starts from these: a
// 10⁻³ spatial tolerance suited to coordinate data of order one, and a
// generous iteration cap that healthy inversions never approach
// (typical runs finish in under 10 steps).
const (
	// DefaultTolerance is the Euclidean residual |F(X) − Y| below which
	// an inversion counts as converged.
	DefaultTolerance = 0.001

	// DefaultMaxIterations caps the number of Newton steps per point.
	DefaultMaxIterations = 500
)

// Evaluator is the forward mapping F: R³ → R³ under inversion.
//
// Implementations must be deterministic and side-effect free: the
// engine calls Forward and ForwardJacobian repeatedly and in no
// guaranteed order. The Jacobian is the matrix of partial derivatives
// J[r][c] = ∂F_r/∂X_c evaluated at p.
type Evaluator interface {
	// Forward maps a point through the warp: Y = F(X).
	Forward(p mat3.Vec3) mat3.Vec3

	// ForwardJacobian returns F(p) together with the Jacobian of F at p.
	// Returning both at once lets implementations share subexpressions;
	// the engine needs them in tandem at every iterate.
	ForwardJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3)
}

// Result reports the outcome of one inversion.
//
// Point      – the best pre-image estimate (valid even when not converged).
// Iterations – Newton steps performed; 0 means the initial guess already
//
//	met the tolerance (identity-like maps do this).
//
// Residual   – Euclidean distance |F(Point) − target| at exit.
// Converged  – whether Residual ≤ Tolerance.
type Result struct {
	Point      mat3.Vec3 // best estimate of X with F(X) ≈ target
	Iterations int       // Newton steps actually taken
	Residual   float64   // |F(Point) − target| at exit
	Converged  bool      // Residual ≤ Tolerance
}

// NoConvergenceError is the advisory error for a failed inversion,
// whether the budget ran out or the iteration hit a singular Jacobian
// and went non-finite. It wraps ErrNoConvergence, so callers can match
// either the sentinel (errors.Is) or the type (errors.As) to read the
// payload.
//
// Non-convergence is not fatal by contract: the accompanying Result
// still carries the best estimate, and pipelines are expected to log
// and continue.
type NoConvergenceError struct {
	Target     mat3.Vec3 // the point whose pre-image was requested
	Residual   float64   // Euclidean residual at exit
	Iterations int       // iterations spent (≤ MaxIterations; less only on a non-finite exit)
}

// Error renders the target point, the final residual and the iteration
// count.
func (e *NoConvergenceError) Error() string {
	return fmt.Sprintf("warp: no convergence at %v: residual %g after %d iterations",
		e.Target, e.Residual, e.Iterations)
}

// Unwrap makes errors.Is(err, ErrNoConvergence) work.
func (e *NoConvergenceError) Unwrap() error { return ErrNoConvergence }

// IterationFunc observes the engine after each completed Newton step
// (including any backtracking within that step). Hooks must not retain
// or mutate engine state; they exist for tracing and instrumentation.
type IterationFunc func(iteration int, candidate mat3.Vec3, residualSq float64)

// Options configures the inversion engine and the Transform facade.
//
// Tolerance     – convergence threshold on |F(X) − Y| (must be > 0, finite).
// MaxIterations – Newton step budget per point (must be > 0).
// OnIteration   – optional per-step hook; nil disables.
// Logger        – destination for non-convergence warnings emitted by
//
//	Transform; nil silences them. Engine-level calls never
//	log: they return the error instead.
//
// OnChange      – callback fired by Transform.ToggleInverse on every
//
//	flip; nil disables.
type Options struct {
	Tolerance     float64       // convergence threshold (Euclidean)
	MaxIterations int           // Newton step budget
	OnIteration   IterationFunc // per-iteration trace hook
	Logger        *slog.Logger  // facade warning sink
	OnChange      func()        // direction-change notification
}

// Option is a functional option for configuring inversions.
type Option func(*Options)

// WithTolerance sets the convergence threshold on the Euclidean
// residual. The tolerance must be positive and finite; anything else
// panics with ErrBadTolerance — a misconfigured engine is a programmer
// error, not a runtime condition.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			panic(ErrBadTolerance.Error())
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations sets the Newton step budget per inversion.
// Must be positive; zero or negative panics with ErrBadMaxIterations.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxIterations.Error())
		}
		o.MaxIterations = n
	}
}

// WithOnIteration installs a per-step trace hook. Passing nil restores
// the default (no hook).
func WithOnIteration(fn IterationFunc) Option {
	return func(o *Options) {
		o.OnIteration = fn
	}
}

// WithLogger sets the destination for the facade's non-convergence
// warnings. Passing nil disables warning output entirely; the default
// is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOnChange installs the direction-change callback invoked by
// Transform.ToggleInverse. The callback runs on every flip,
// unconditionally, on the caller's goroutine. Passing nil disables it.
func WithOnChange(fn func()) Option {
	return func(o *Options) {
		o.OnChange = fn
	}
}

// DefaultOptions returns the baseline configuration:
//
//   - Tolerance:     DefaultTolerance (0.001)
//   - MaxIterations: DefaultMaxIterations (500)
//   - OnIteration:   nil (no trace hook)
//   - Logger:        slog.Default() (warnings to the process logger)
//   - OnChange:      nil (no notification)
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		OnIteration:   nil,
		Logger:        slog.Default(),
		OnChange:      nil,
	}
}
