package scene

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nwarp/mat3"
	"github.com/katalvlaran/nwarp/warp"
)

// schemaV1 is the only document revision this loader accepts.
const schemaV1 = "v1"

var (
	// ErrBadSchema reports a missing or unsupported schema_version.
	ErrBadSchema = errors.New("scene: unsupported schema version")
	// ErrUnknownKind reports a warp kind with no registered builder.
	ErrUnknownKind = errors.New("scene: unknown warp kind")
	// ErrNoPoints reports a scene without a point list.
	ErrNoPoints = errors.New("scene: no points")
)

// file mirrors the YAML document layout. The params block stays a raw
// node; the kind's builder decodes it into its own parameter struct.
type file struct {
	SchemaVersion string `yaml:"schema_version"`
	Name          string `yaml:"name"`
	Warp          struct {
		Kind   string    `yaml:"kind"`
		Params yaml.Node `yaml:"params"`
	} `yaml:"warp"`
	Inverse       bool        `yaml:"inverse"`
	Tolerance     float64     `yaml:"tolerance"`
	MaxIterations int         `yaml:"max_iterations"`
	Points        [][]float64 `yaml:"points"`
}

// Scene is a validated scene document with its evaluator already built.
// Zero Tolerance and MaxIterations mean "use the engine defaults".
type Scene struct {
	Name          string
	Kind          string
	Inverse       bool
	Tolerance     float64
	MaxIterations int
	Points        []mat3.Vec3

	ev warp.Evaluator
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return Parse(raw)
}

// Parse validates a YAML scene document and builds its evaluator.
func Parse(raw []byte) (*Scene, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	if f.SchemaVersion != schemaV1 {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrBadSchema, f.SchemaVersion, schemaV1)
	}

	build, ok := reg[f.Warp.Kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, f.Warp.Kind)
	}
	ev, err := build(f.Warp.Params)
	if err != nil {
		return nil, fmt.Errorf("scene: kind %q: %w", f.Warp.Kind, err)
	}

	// Reject bad overrides here so warp option panics stay unreachable
	// from user-supplied documents.
	if f.Tolerance < 0 || math.IsNaN(f.Tolerance) || math.IsInf(f.Tolerance, 0) {
		return nil, fmt.Errorf("scene: tolerance %g out of range", f.Tolerance)
	}
	if f.MaxIterations < 0 {
		return nil, fmt.Errorf("scene: max_iterations %d out of range", f.MaxIterations)
	}

	if len(f.Points) == 0 {
		return nil, ErrNoPoints
	}
	pts := make([]mat3.Vec3, len(f.Points))
	for i, p := range f.Points {
		if len(p) != 3 {
			return nil, fmt.Errorf("scene: point %d wants 3 components, got %d", i, len(p))
		}
		pts[i] = mat3.Vec3{p[0], p[1], p[2]}
	}

	return &Scene{
		Name:          f.Name,
		Kind:          f.Warp.Kind,
		Inverse:       f.Inverse,
		Tolerance:     f.Tolerance,
		MaxIterations: f.MaxIterations,
		Points:        pts,
		ev:            ev,
	}, nil
}

// Build returns the evaluator together with the solver options the
// document resolved to.
func (s *Scene) Build() (warp.Evaluator, []warp.Option) {
	var opts []warp.Option
	if s.Tolerance > 0 {
		opts = append(opts, warp.WithTolerance(s.Tolerance))
	}
	if s.MaxIterations > 0 {
		opts = append(opts, warp.WithMaxIterations(s.MaxIterations))
	}
	return s.ev, opts
}

// NewTransform builds the ready-to-use transform, direction included.
// Extra options are appended after the document's own, so callers can
// attach a logger or hooks on top.
func (s *Scene) NewTransform(extra ...warp.Option) (*warp.Transform, error) {
	ev, opts := s.Build()
	tr, err := warp.New(ev, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	if s.Inverse {
		tr.ToggleInverse()
	}
	return tr, nil
}
