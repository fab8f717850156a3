package pricing

import (
	"github.com/contactkeval/option-lattice/internal/logger"
)

// Result is the price and greeks of one option.
type Result struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Tuple returns (price, delta, gamma, theta, vega, rho).
func (r Result) Tuple() (float64, float64, float64, float64, float64, float64) {
	return r.Price, r.Delta, r.Gamma, r.Theta, r.Vega, r.Rho
}

// Pricer runs the lattice once for price, delta and gamma and six more times
// for the central differences of theta, vega and rho.
type Pricer struct {
	scheme   Scheme
	bumps    Bumps
	parallel bool
	engine   Engine
}

// Option configures a Pricer.
type Option func(*Pricer)

// WithScheme selects the lattice parameterization. Default LeisenReimer.
func WithScheme(s Scheme) Option {
	return func(p *Pricer) { p.scheme = s }
}

// WithBumps overrides the finite-difference step sizes.
func WithBumps(b Bumps) Option {
	return func(p *Pricer) { p.bumps = b }
}

// Sequential runs the theta, vega and rho repricings one after another, in
// that order, instead of concurrently.
func Sequential() Option {
	return func(p *Pricer) { p.parallel = false }
}

// NewPricer builds a Pricer. Without options it uses the Leisen-Reimer
// scheme, DefaultBumps and concurrent repricing.
func NewPricer(opts ...Option) *Pricer {
	p := &Pricer{
		scheme:   LeisenReimer,
		bumps:    DefaultBumps,
		parallel: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scheme reports the lattice scheme in use.
func (p *Pricer) Scheme() Scheme { return p.scheme }

// Price computes the full result for o. Any failure aborts the whole result.
func (p *Pricer) Price(o OptionParams) (Result, error) {
	if err := o.Validate(); err != nil {
		return Result{}, err
	}
	if err := p.bumps.validate(); err != nil {
		return Result{}, err
	}

	lp, err := NewLatticeParams(o, p.scheme)
	if err != nil {
		return Result{}, err
	}
	logger.Debugf("lattice %s N=%d dt=%.6g u=%.8f d=%.8f p=%.8f", lp.Scheme, lp.Steps, lp.Dt, lp.Up, lp.Down, lp.Prob)

	rb, err := p.engine.Rollback(o, lp)
	if err != nil {
		return Result{}, &StageError{Stage: "price", Err: err}
	}
	delta, gamma := spotGreeks(o, lp, rb)
	if !isFinite(delta) {
		return Result{}, &StageError{Stage: string(Delta), Err: unstablef("non-finite delta %v", delta)}
	}
	if !isFinite(gamma) {
		return Result{}, &StageError{Stage: string(Gamma), Err: unstablef("non-finite gamma %v", gamma)}
	}

	theta, vega, rho, err := p.sensitivities(o)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Price: rb.Value,
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
		Rho:   rho,
	}
	logger.Tracef("priced %s american=%t S=%g K=%g -> %+v", o.Type, o.American, o.Spot, o.Strike, res)
	return res, nil
}

// CalculateOptionPriceAndGreeks prices a vanilla option on a Leisen-Reimer
// lattice and returns (price, delta, gamma, theta, vega, rho).
//
// Parameters:
//   - s0: spot price of the underlying
//   - k: strike price
//   - r: risk-free rate (annual, continuous)
//   - t: time to expiry in years
//   - n: number of lattice steps (raised to the next odd number)
//   - pu, pd: accepted for compatibility, they do not affect the result
//   - div: continuous dividend yield
//   - sigma: volatility (annual, as a decimal)
//   - optionsType: "call" or "put"
//   - isAm: true for American exercise
//
// Invalid inputs are rejected with ErrInvalidParameter before any lattice
// work. Theta is the rate of value change per year as calendar time passes.
// A single-step lattice (n = 1, either scheme) has no step-2 slice, so gamma
// is reported as 0.
func CalculateOptionPriceAndGreeks(
	s0, k, r, t float64,
	n int,
	pu, pd, div, sigma float64,
	optionsType string,
	isAm bool,
) (price, delta, gamma, theta, vega, rho float64, err error) {
	o, err := NewOptionParams(s0, k, r, t, n, pu, pd, div, sigma, optionsType, isAm)
	if err != nil {
		return 0, 0, 0, 0, 0, 0, err
	}
	res, err := NewPricer().Price(o)
	if err != nil {
		return 0, 0, 0, 0, 0, 0, err
	}
	price, delta, gamma, theta, vega, rho = res.Tuple()
	return price, delta, gamma, theta, vega, rho, nil
}
