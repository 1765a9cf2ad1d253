package surrogates

import (
	"fmt"
	"math"

	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/zclconf/go-cty/cty"
)

// Covariance is a covariance function usable by a Gaussian process.
type Covariance interface {
	objects.Object
	// ComputeCovarianceMatrix evaluates the kernel between every row of x
	// and every row of xp. With selfCovariance the noise term is added on
	// the diagonal.
	ComputeCovarianceMatrix(x, xp [][]float64, selfCovariance bool) ([][]float64, error)
	// HyperParameters reports the current settings, one group per row.
	HyperParameters() [][]float64
}

// SquaredExponentialInput defines the parameters of
// SquaredExponentialCovariance.
type SquaredExponentialInput struct {
	LengthFactor   []float64 `param:"length_factor"`
	SignalVariance float64   `param:"signal_variance"`
	NoiseVariance  float64   `param:"noise_variance"`
}

// SquaredExponentialSchema returns the schema of
// SquaredExponentialCovariance.
func SquaredExponentialSchema() *params.Schema {
	return params.NewSchema().
		Required("length_factor", cty.List(cty.Number), "Length factor per input dimension.").
		Default("signal_variance", cty.Number, cty.NumberIntVal(1), "Signal variance (sigma_f squared).").
		Default("noise_variance", cty.Number, cty.NumberIntVal(0), "Noise variance (sigma_n squared).")
}

// SquaredExponentialCovariance is
// k(x, x') = sigma_f^2 exp(-1/2 sum_i ((x_i - x'_i) / l_i)^2).
type SquaredExponentialCovariance struct {
	objects.Base
	cfg SquaredExponentialInput
}

// NewSquaredExponential validates the hyper-parameters.
func NewSquaredExponential(c objects.Context, p *params.Set) (objects.Object, error) {
	var cfg SquaredExponentialInput
	if err := p.Decode(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.LengthFactor) == 0 {
		return nil, fmt.Errorf("length_factor must not be empty")
	}
	for i, l := range cfg.LengthFactor {
		if l <= 0 {
			return nil, fmt.Errorf("length_factor[%d] must be positive, got %g", i, l)
		}
	}
	if cfg.SignalVariance < 0 || cfg.NoiseVariance < 0 {
		return nil, fmt.Errorf("variances must not be negative")
	}
	return &SquaredExponentialCovariance{Base: objects.NewBase(c, p), cfg: cfg}, nil
}

// ComputeCovarianceMatrix implements Covariance.
func (k *SquaredExponentialCovariance) ComputeCovarianceMatrix(x, xp [][]float64, selfCovariance bool) ([][]float64, error) {
	dims := len(k.cfg.LengthFactor)
	for _, rows := range [][][]float64{x, xp} {
		for i, row := range rows {
			if len(row) != dims {
				return nil, fmt.Errorf("point %d has %d coordinates, length_factor has %d", i, len(row), dims)
			}
		}
	}
	if selfCovariance && len(x) != len(xp) {
		return nil, fmt.Errorf("self covariance needs square input, got %d and %d points", len(x), len(xp))
	}

	out := make([][]float64, len(x))
	for i, a := range x {
		out[i] = make([]float64, len(xp))
		for j, b := range xp {
			var r2 float64
			for d := range a {
				diff := (a[d] - b[d]) / k.cfg.LengthFactor[d]
				r2 += diff * diff
			}
			out[i][j] = k.cfg.SignalVariance * math.Exp(-0.5*r2)
			if selfCovariance && i == j {
				out[i][j] += k.cfg.NoiseVariance
			}
		}
	}
	return out, nil
}

// HyperParameters returns the length factors, the signal variance and the
// noise variance.
func (k *SquaredExponentialCovariance) HyperParameters() [][]float64 {
	lf := append([]float64(nil), k.cfg.LengthFactor...)
	return [][]float64{lf, {k.cfg.SignalVariance}, {k.cfg.NoiseVariance}}
}
