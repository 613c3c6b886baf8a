package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nwarp/mat3"
	"github.com/katalvlaran/nwarp/warp"
	"github.com/katalvlaran/nwarp/warps"
)

// Builder turns the raw params block of a scene document into a concrete
// evaluator.
type Builder func(params yaml.Node) (warp.Evaluator, error)

var reg = map[string]Builder{}

// Register makes a builder available under the given kind, replacing any
// previous registration. Call it from init funcs; the registry is not
// synchronized.
func Register(kind string, fn Builder) { reg[kind] = fn }

func init() {
	Register("identity", buildIdentity)
	Register("affine", buildAffine)
	Register("sine", buildSine)
	Register("twist", buildTwist)
	Register("radial", buildRadial)
	Register("grid", buildGrid)
}

// triple is a YAML [x, y, z] list that may be omitted entirely.
type triple []float64

func (t triple) vec(field string, def mat3.Vec3) (mat3.Vec3, error) {
	if t == nil {
		return def, nil
	}
	if len(t) != 3 {
		return mat3.Vec3{}, fmt.Errorf("%s wants 3 components, got %d", field, len(t))
	}
	return mat3.Vec3{t[0], t[1], t[2]}, nil
}

func decodeParams(n yaml.Node, out any) error {
	if n.Kind == 0 { // params block omitted
		return nil
	}
	if err := n.Decode(out); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}

func buildIdentity(yaml.Node) (warp.Evaluator, error) {
	return warps.Identity(), nil
}

func buildAffine(n yaml.Node) (warp.Evaluator, error) {
	var p struct {
		Matrix      [][]float64 `yaml:"matrix"`
		Translation triple      `yaml:"translation"`
	}
	if err := decodeParams(n, &p); err != nil {
		return nil, err
	}
	m := mat3.Identity()
	if p.Matrix != nil {
		if len(p.Matrix) != 3 {
			return nil, fmt.Errorf("matrix wants 3 rows, got %d", len(p.Matrix))
		}
		for r, row := range p.Matrix {
			if len(row) != 3 {
				return nil, fmt.Errorf("matrix row %d wants 3 entries, got %d", r, len(row))
			}
			for c, v := range row {
				m[r][c] = v
			}
		}
	}
	t, err := p.Translation.vec("translation", mat3.Vec3{})
	if err != nil {
		return nil, err
	}
	return warps.NewAffine(m, t), nil
}

func buildSine(n yaml.Node) (warp.Evaluator, error) {
	var p struct {
		Amplitude triple `yaml:"amplitude"`
		Frequency triple `yaml:"frequency"`
		Phase     triple `yaml:"phase"`
	}
	if err := decodeParams(n, &p); err != nil {
		return nil, err
	}
	a, err := p.Amplitude.vec("amplitude", mat3.Vec3{})
	if err != nil {
		return nil, err
	}
	w, err := p.Frequency.vec("frequency", mat3.Vec3{1, 1, 1})
	if err != nil {
		return nil, err
	}
	ph, err := p.Phase.vec("phase", mat3.Vec3{})
	if err != nil {
		return nil, err
	}
	return warps.NewSine(a, w, ph), nil
}

func buildTwist(n yaml.Node) (warp.Evaluator, error) {
	var p struct {
		Rate   float64 `yaml:"rate"`
		Center triple  `yaml:"center"`
	}
	if err := decodeParams(n, &p); err != nil {
		return nil, err
	}
	c, err := p.Center.vec("center", mat3.Vec3{})
	if err != nil {
		return nil, err
	}
	return warps.NewTwist(p.Rate, c), nil
}

func buildRadial(n yaml.Node) (warp.Evaluator, error) {
	var p struct {
		Strength float64 `yaml:"strength"`
		Center   triple  `yaml:"center"`
	}
	if err := decodeParams(n, &p); err != nil {
		return nil, err
	}
	c, err := p.Center.vec("center", mat3.Vec3{})
	if err != nil {
		return nil, err
	}
	return warps.NewRadial(p.Strength, c), nil
}

func buildGrid(n yaml.Node) (warp.Evaluator, error) {
	var p struct {
		Origin        triple      `yaml:"origin"`
		Spacing       triple      `yaml:"spacing"`
		Dims          []int       `yaml:"dims"`
		Displacements [][]float64 `yaml:"displacements"`
	}
	if err := decodeParams(n, &p); err != nil {
		return nil, err
	}
	origin, err := p.Origin.vec("origin", mat3.Vec3{})
	if err != nil {
		return nil, err
	}
	spacing, err := p.Spacing.vec("spacing", mat3.Vec3{1, 1, 1})
	if err != nil {
		return nil, err
	}
	if len(p.Dims) != 3 {
		return nil, fmt.Errorf("dims wants 3 entries, got %d", len(p.Dims))
	}
	disp := make([]mat3.Vec3, len(p.Displacements))
	for i, d := range p.Displacements {
		if len(d) != 3 {
			return nil, fmt.Errorf("displacement %d wants 3 components, got %d", i, len(d))
		}
		disp[i] = mat3.Vec3{d[0], d[1], d[2]}
	}
	g, err := warps.NewGrid(origin, spacing, [3]int{p.Dims[0], p.Dims[1], p.Dims[2]}, disp)
	if err != nil {
		return nil, err
	}
	return g, nil
}
