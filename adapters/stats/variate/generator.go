package variate

import (
	"math"

	"normfit/domain/core"
	"normfit/ports"
)

// maxZeroDraws bounds how many consecutive zero uniforms are redrawn before giving up
const maxZeroDraws = 64

// Generator produces normal variates with the Box–Muller transform
type Generator struct {
	src ports.UniformSource
}

// NewGenerator creates a generator over the given uniform source
func NewGenerator(src ports.UniformSource) *Generator {
	return &Generator{src: src}
}

// StandardNormal returns one N(0, 1) draw: sqrt(-2 ln u1) * cos(2π u2).
// A u1 of exactly zero is redrawn since ln(0) is undefined.
func (g *Generator) StandardNormal() (float64, error) {
	u1 := g.src.Float64()
	for tries := 1; u1 == 0; tries++ {
		if tries >= maxZeroDraws {
			return 0, core.ErrDegenerateUniform
		}
		u1 = g.src.Float64()
	}
	u2 := g.src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2), nil
}

// ScaledNormal returns deviation * z + mean for a standard normal z
func (g *Generator) ScaledNormal(mean, deviation float64) (float64, error) {
	if deviation < 0 || math.IsNaN(deviation) {
		return 0, core.NewDomainError(core.ErrNegativeVariance, "deviation", deviation)
	}
	z, err := g.StandardNormal()
	if err != nil {
		return 0, err
	}
	return deviation*z + mean, nil
}
