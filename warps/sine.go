package warps

import (
	"math"

	"github.com/katalvlaran/nwarp/mat3"
)

// Sine is a cyclic sinusoidal displacement: each axis is shifted by a
// sinusoid of the next axis,
//
//	F_x = x + A_x·sin(ω_x·y + φ_x)
//	F_y = y + A_y·sin(ω_y·z + φ_y)
//	F_z = z + A_z·sin(ω_z·x + φ_z)
//
// The classic single-axis ripple F = (x + A·sin(ω·y), y, z) is the
// special case with zero y/z amplitudes; see SineX.
//
// Bijectivity: the displacement field is Lipschitz with constant
// max_k |A_k·ω_k|, so the warp is globally invertible whenever every
// |Amplitude[k]·Frequency[k]| < 1.
type Sine struct {
	Amplitude mat3.Vec3 // per-axis displacement amplitude A
	Frequency mat3.Vec3 // per-axis angular frequency ω
	Phase     mat3.Vec3 // per-axis phase offset φ
}

// NewSine builds a cyclic sinusoidal warp from per-axis parameters.
func NewSine(amplitude, frequency, phase mat3.Vec3) Sine {
	return Sine{Amplitude: amplitude, Frequency: frequency, Phase: phase}
}

// SineX builds the single-axis ripple F(p) = (x + a·sin(w·y), y, z).
func SineX(a, w float64) Sine {
	return Sine{
		Amplitude: mat3.Vec3{a, 0, 0},
		Frequency: mat3.Vec3{w, 0, 0},
	}
}

// Forward maps p through the sinusoidal warp.
func (s Sine) Forward(p mat3.Vec3) mat3.Vec3 {
	return mat3.Vec3{
		p[0] + s.Amplitude[0]*math.Sin(s.Frequency[0]*p[1]+s.Phase[0]),
		p[1] + s.Amplitude[1]*math.Sin(s.Frequency[1]*p[2]+s.Phase[1]),
		p[2] + s.Amplitude[2]*math.Sin(s.Frequency[2]*p[0]+s.Phase[2]),
	}
}

// ForwardJacobian returns F(p) and the Jacobian
//
//	⎡ 1            A_x·ω_x·cos(ω_x·y+φ_x)  0                      ⎤
//	⎢ 0            1                       A_y·ω_y·cos(ω_y·z+φ_y) ⎥
//	⎣ A_z·ω_z·cos(ω_z·x+φ_z)  0            1                      ⎦
func (s Sine) ForwardJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3) {
	// sin/cos share their arguments; evaluate each argument once
	argX := s.Frequency[0]*p[1] + s.Phase[0]
	argY := s.Frequency[1]*p[2] + s.Phase[1]
	argZ := s.Frequency[2]*p[0] + s.Phase[2]

	image := mat3.Vec3{
		p[0] + s.Amplitude[0]*math.Sin(argX),
		p[1] + s.Amplitude[1]*math.Sin(argY),
		p[2] + s.Amplitude[2]*math.Sin(argZ),
	}
	jac := mat3.Mat3{
		{1, s.Amplitude[0] * s.Frequency[0] * math.Cos(argX), 0},
		{0, 1, s.Amplitude[1] * s.Frequency[1] * math.Cos(argY)},
		{s.Amplitude[2] * s.Frequency[2] * math.Cos(argZ), 0, 1},
	}

	return image, jac
}
