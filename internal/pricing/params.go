package pricing

import (
	"math"
)

// OptionType fixes the payoff orientation of a whole lattice.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ParseOptionType accepts exactly "call" or "put". Matching is case-sensitive.
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(s) {
	case Call, Put:
		return OptionType(s), nil
	}
	return "", invalidf("option type must be %q or %q, got %q", Call, Put, s)
}

// OptionParams holds the validated terms of one vanilla option contract.
//
// The value is created once per pricing call and passed by value; the engine
// and the greeks never modify it. Perturbed repricings work on copies.
//
// UpProb and DownProb are carried for interface compatibility only. The
// risk-neutral probability is always derived from the lattice scheme.
type OptionParams struct {
	Spot          float64    // S0, current price of the underlying
	Strike        float64    // K
	Rate          float64    // r, continuously compounded risk-free rate
	Maturity      float64    // T, years to expiry
	Steps         int        // N, requested lattice steps
	UpProb        float64    // advisory, not used
	DownProb      float64    // advisory, not used
	DividendYield float64    // q, continuous dividend yield
	Volatility    float64    // sigma, annualized
	Type          OptionType // call or put
	American      bool       // early exercise allowed
}

// NewOptionParams validates raw scalar inputs and builds an OptionParams.
//
// Parameters:
//   - spot, strike, maturity, sigma: must be strictly positive
//   - rate: any finite real
//   - steps: at least 1
//   - pu, pd: accepted and stored, never used for pricing
//   - div: continuous dividend yield, must be >= 0
//   - optionType: "call" or "put"
//   - american: true to allow early exercise
//
// Returns an error wrapping ErrInvalidParameter on the first violated rule.
func NewOptionParams(
	spot, strike, rate, maturity float64,
	steps int,
	pu, pd, div, sigma float64,
	optionType string,
	american bool,
) (OptionParams, error) {
	typ, err := ParseOptionType(optionType)
	if err != nil {
		return OptionParams{}, err
	}
	o := OptionParams{
		Spot:          spot,
		Strike:        strike,
		Rate:          rate,
		Maturity:      maturity,
		Steps:         steps,
		UpProb:        pu,
		DownProb:      pd,
		DividendYield: div,
		Volatility:    sigma,
		Type:          typ,
		American:      american,
	}
	if err := o.Validate(); err != nil {
		return OptionParams{}, err
	}
	return o, nil
}

// Validate checks the positivity and finiteness rules of the contract terms.
func (o OptionParams) Validate() error {
	if o.Type != Call && o.Type != Put {
		return invalidf("option type must be %q or %q, got %q", Call, Put, o.Type)
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"spot", o.Spot},
		{"strike", o.Strike},
		{"maturity", o.Maturity},
		{"volatility", o.Volatility},
	}
	for _, f := range positive {
		if !isFinite(f.v) || f.v <= 0 {
			return invalidf("%s must be positive and finite, got %v", f.name, f.v)
		}
	}
	if !isFinite(o.Rate) {
		return invalidf("rate must be finite, got %v", o.Rate)
	}
	if !isFinite(o.DividendYield) || o.DividendYield < 0 {
		return invalidf("dividend yield must be non-negative and finite, got %v", o.DividendYield)
	}
	if o.Steps < 1 {
		return invalidf("steps must be at least 1, got %d", o.Steps)
	}
	return nil
}

// IsCall reports whether the payoff is max(S-K, 0).
func (o OptionParams) IsCall() bool { return o.Type == Call }

// exercise is the immediate exercise value at stock price s.
func (o OptionParams) exercise(s float64) float64 {
	if o.Type == Call {
		return math.Max(s-o.Strike, 0)
	}
	return math.Max(o.Strike-s, 0)
}

func (o OptionParams) withMaturity(t float64) OptionParams {
	o.Maturity = t
	return o
}

func (o OptionParams) withVolatility(sigma float64) OptionParams {
	o.Volatility = sigma
	return o
}

func (o OptionParams) withRate(r float64) OptionParams {
	o.Rate = r
	return o
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
