package pricing

import (
	"fmt"
	"math"
	"strings"
)

// Scheme selects how the lattice step factors and probabilities are derived.
type Scheme int

const (
	// LeisenReimer matches the Black-Scholes value at the strike and converges
	// in O(1/N^2) without the odd/even oscillation of CRR.
	LeisenReimer Scheme = iota
	// CoxRossRubinstein is the standard recombining tree with d = 1/u.
	CoxRossRubinstein
)

func (s Scheme) String() string {
	switch s {
	case LeisenReimer:
		return "leisen-reimer"
	case CoxRossRubinstein:
		return "crr"
	}
	return "unknown"
}

// ParseScheme maps a config or CLI token to a Scheme.
// Accepted tokens: "lr", "leisen-reimer", "crr", "standard" (any case).
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lr", "leisen-reimer", "leisenreimer":
		return LeisenReimer, nil
	case "crr", "standard", "cox-ross-rubinstein":
		return CoxRossRubinstein, nil
	}
	return 0, invalidf("unknown lattice scheme %q", s)
}

// LatticeParams are the per-step quantities of one lattice.
type LatticeParams struct {
	Scheme Scheme
	Steps  int     // effective number of steps, odd under LeisenReimer
	Dt     float64 // T / Steps
	Up     float64 // multiplicative up factor
	Down   float64 // multiplicative down factor
	Prob   float64 // risk-neutral up probability
	Growth float64 // exp((r-q)*dt), expected one-step growth under Prob
	Disc   float64 // exp(-r*dt), one-step discount factor
}

// NewLatticeParams derives lattice parameters for o under the given scheme.
// It fails with ErrInvalidParameter when the derived probability is not
// strictly inside (0,1) or the step factors do not bracket the forward growth.
func NewLatticeParams(o OptionParams, scheme Scheme) (LatticeParams, error) {
	if err := o.Validate(); err != nil {
		return LatticeParams{}, err
	}
	var (
		lp  LatticeParams
		err error
	)
	switch scheme {
	case LeisenReimer:
		lp, err = leisenReimer(o)
	case CoxRossRubinstein:
		lp = coxRossRubinstein(o)
	default:
		return LatticeParams{}, invalidf("unknown lattice scheme %d", int(scheme))
	}
	if err != nil {
		return LatticeParams{}, err
	}
	if err := lp.check(); err != nil {
		return LatticeParams{}, invalidf("%s lattice for N=%d: %v", scheme, lp.Steps, err)
	}
	return lp, nil
}

func coxRossRubinstein(o OptionParams) LatticeParams {
	n := o.Steps
	dt := o.Maturity / float64(n)
	growth := math.Exp((o.Rate - o.DividendYield) * dt)
	u := math.Exp(o.Volatility * math.Sqrt(dt))
	d := 1 / u
	return LatticeParams{
		Scheme: CoxRossRubinstein,
		Steps:  n,
		Dt:     dt,
		Up:     u,
		Down:   d,
		Prob:   (growth - d) / (u - d),
		Growth: growth,
		Disc:   math.Exp(-o.Rate * dt),
	}
}

func leisenReimer(o OptionParams) (LatticeParams, error) {
	n := o.Steps
	if n%2 == 0 {
		// centre node on the strike
		n++
	}
	dt := o.Maturity / float64(n)
	growth := math.Exp((o.Rate - o.DividendYield) * dt)

	d1, d2 := blackScholesD(o)
	p := peizerPratt(d2, n)
	pbar := peizerPratt(d1, n)
	for _, v := range []float64{p, pbar} {
		if !isFinite(v) || v <= 0 || v >= 1 {
			return LatticeParams{}, invalidf("leisen-reimer probability %v outside (0,1) for N=%d (d1=%v, d2=%v)", v, n, d1, d2)
		}
	}

	u := growth * pbar / p
	return LatticeParams{
		Scheme: LeisenReimer,
		Steps:  n,
		Dt:     dt,
		Up:     u,
		Down:   (growth - p*u) / (1 - p),
		Prob:   p,
		Growth: growth,
		Disc:   math.Exp(-o.Rate * dt),
	}, nil
}

// blackScholesD returns d1 and d2 of the Black-Scholes formula with a
// continuous dividend yield.
func blackScholesD(o OptionParams) (d1, d2 float64) {
	volSqrtT := o.Volatility * math.Sqrt(o.Maturity)
	d1 = (math.Log(o.Spot/o.Strike) + (o.Rate-o.DividendYield+0.5*o.Volatility*o.Volatility)*o.Maturity) / volSqrtT
	d2 = d1 - volSqrtT
	return d1, d2
}

// peizerPratt is the Peizer-Pratt method 2 inversion: the binomial
// probability whose n-step tail matches the normal tail at z.
func peizerPratt(z float64, n int) float64 {
	fn := float64(n)
	x := z / (fn + 1.0/3.0 + 0.1/(fn+1))
	root := math.Sqrt(0.25 - 0.25*math.Exp(-x*x*(fn+1.0/6.0)))
	switch {
	case z > 0:
		return 0.5 + root
	case z < 0:
		return 0.5 - root
	}
	return 0.5
}

// check enforces 0 < Prob < 1 and 0 < Down < Growth < Up on finite values.
func (lp LatticeParams) check() error {
	for _, v := range []float64{lp.Dt, lp.Up, lp.Down, lp.Prob, lp.Growth, lp.Disc} {
		if !isFinite(v) {
			return fmt.Errorf("non-finite lattice parameter (dt=%v u=%v d=%v p=%v)", lp.Dt, lp.Up, lp.Down, lp.Prob)
		}
	}
	if lp.Steps < 1 {
		return fmt.Errorf("lattice needs at least one step, got %d", lp.Steps)
	}
	if lp.Prob <= 0 || lp.Prob >= 1 {
		return fmt.Errorf("risk-neutral probability %v outside (0,1)", lp.Prob)
	}
	if lp.Down <= 0 || lp.Down >= lp.Growth || lp.Growth >= lp.Up {
		return fmt.Errorf("step factors do not bracket growth: d=%v growth=%v u=%v", lp.Down, lp.Growth, lp.Up)
	}
	return nil
}
