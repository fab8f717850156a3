package pricing

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Greek names one price sensitivity.
type Greek string

const (
	Delta Greek = "delta"
	Gamma Greek = "gamma"
	Theta Greek = "theta"
	Vega  Greek = "vega"
	Rho   Greek = "rho"
)

// Bumps are the central-difference step sizes for the repriced greeks.
type Bumps struct {
	Time float64 // years
	Vol  float64 // absolute volatility
	Rate float64 // absolute rate
}

// DefaultBumps is one calendar day, one volatility basis point and one rate
// basis point.
var DefaultBumps = Bumps{
	Time: 1.0 / 365.0,
	Vol:  1e-4,
	Rate: 1e-4,
}

func (b Bumps) validate() error {
	for _, v := range []float64{b.Time, b.Vol, b.Rate} {
		if !isFinite(v) || v <= 0 {
			return invalidf("bump sizes must be positive and finite, got %+v", b)
		}
	}
	return nil
}

// spotGreeks reads delta and gamma off the near-root slices of the base run.
// Gamma is 0 when the lattice has a single step.
func spotGreeks(o OptionParams, lp LatticeParams, rb Rollback) (delta, gamma float64) {
	s := o.Spot
	su, sd := s*lp.Up, s*lp.Down
	delta = (rb.Step1[1] - rb.Step1[0]) / (su - sd)

	if rb.Levels < 2 {
		return delta, 0
	}
	suu, sud, sdd := su*lp.Up, su*lp.Down, sd*lp.Down
	deltaUp := (rb.Step2[2] - rb.Step2[1]) / (suu - sud)
	deltaDown := (rb.Step2[1] - rb.Step2[0]) / (sud - sdd)
	gamma = (deltaUp - deltaDown) / (0.5 * (suu - sdd))
	return delta, gamma
}

// bumpedGreek describes one repriced sensitivity.
type bumpedGreek struct {
	greek Greek
	step  func(OptionParams) float64
	shift func(OptionParams, float64) OptionParams
	// sign is -1 for theta: value change as calendar time passes.
	sign float64
}

func (p *Pricer) bumpedGreeks() []bumpedGreek {
	return []bumpedGreek{
		{
			greek: Theta,
			step:  func(o OptionParams) float64 { return math.Min(p.bumps.Time, 0.5*o.Maturity) },
			shift: func(o OptionParams, h float64) OptionParams { return o.withMaturity(o.Maturity + h) },
			sign:  -1,
		},
		{
			greek: Vega,
			step:  func(o OptionParams) float64 { return math.Min(p.bumps.Vol, 0.5*o.Volatility) },
			shift: func(o OptionParams, h float64) OptionParams { return o.withVolatility(o.Volatility + h) },
			sign:  1,
		},
		{
			greek: Rho,
			step:  func(OptionParams) float64 { return p.bumps.Rate },
			shift: func(o OptionParams, h float64) OptionParams { return o.withRate(o.Rate + h) },
			sign:  1,
		},
	}
}

// centralDifference reprices o on both sides of the bump and returns the
// signed slope. Each side builds its own lattice.
func (p *Pricer) centralDifference(o OptionParams, g bumpedGreek) (float64, error) {
	h := g.step(o)
	up, err := p.reprice(g.shift(o, h))
	if err != nil {
		return 0, &GreekError{Greek: g.greek, Err: err}
	}
	down, err := p.reprice(g.shift(o, -h))
	if err != nil {
		return 0, &GreekError{Greek: g.greek, Err: err}
	}
	v := g.sign * (up - down) / (2 * h)
	if !isFinite(v) {
		return 0, &GreekError{Greek: g.greek, Err: unstablef("non-finite %s %v", g.greek, v)}
	}
	return v, nil
}

func (p *Pricer) reprice(o OptionParams) (float64, error) {
	lp, err := NewLatticeParams(o, p.scheme)
	if err != nil {
		return 0, err
	}
	return p.engine.Price(o, lp)
}

// sensitivities computes theta, vega and rho. The three are independent;
// unless the pricer is sequential each runs on its own goroutine and the
// first failure is returned.
func (p *Pricer) sensitivities(o OptionParams) (theta, vega, rho float64, err error) {
	bumped := p.bumpedGreeks()
	out := make([]float64, len(bumped))

	if !p.parallel {
		for i, g := range bumped {
			if out[i], err = p.centralDifference(o, g); err != nil {
				return 0, 0, 0, err
			}
		}
		return out[0], out[1], out[2], nil
	}

	var eg errgroup.Group
	for i, g := range bumped {
		i, g := i, g
		eg.Go(func() error {
			v, err := p.centralDifference(o, g)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, 0, 0, err
	}
	return out[0], out[1], out[2], nil
}
