package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func documented(steps int, american bool) OptionParams {
	return OptionParams{
		Spot:       100,
		Strike:     110,
		Rate:       0.05,
		Maturity:   1,
		Steps:      steps,
		Volatility: 0.3,
		Type:       Call,
		American:   american,
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		token string
		want  Scheme
	}{
		{"lr", LeisenReimer},
		{"Leisen-Reimer", LeisenReimer},
		{"crr", CoxRossRubinstein},
		{" standard ", CoxRossRubinstein},
	}
	for _, test := range tests {
		got, err := ParseScheme(test.token)
		require.NoError(t, err)
		require.Equal(t, test.want, got)
	}

	_, err := ParseScheme("trinomial")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCoxRossRubinsteinLattice(t *testing.T) {
	o := documented(100, false)
	lp, err := NewLatticeParams(o, CoxRossRubinstein)
	require.NoError(t, err)

	require.Equal(t, 100, lp.Steps)
	require.InDelta(t, 0.01, lp.Dt, 1e-15)
	require.InDelta(t, 1.0, lp.Up*lp.Down, 1e-14)
	require.InDelta(t, math.Exp(0.3*math.Sqrt(0.01)), lp.Up, 1e-14)
	require.InDelta(t, math.Exp(-0.05*0.01), lp.Disc, 1e-15)
	require.Greater(t, lp.Up, 1.0)
	require.Less(t, lp.Down, 1.0)
}

func TestLeisenReimerForcesOddSteps(t *testing.T) {
	for _, n := range []int{1, 2, 3, 100, 1024, 1025} {
		lp, err := NewLatticeParams(documented(n, false), LeisenReimer)
		require.NoError(t, err)
		require.Equal(t, 1, lp.Steps%2, "N=%d", n)
		if n%2 == 1 {
			require.Equal(t, n, lp.Steps)
		} else {
			require.Equal(t, n+1, lp.Steps)
		}
		require.InDelta(t, 1.0/float64(lp.Steps), lp.Dt, 1e-15)
	}
}

func TestLatticeIsArbitrageFree(t *testing.T) {
	contracts := []OptionParams{
		documented(101, false),
		{Spot: 50, Strike: 52, Rate: 0.05, Maturity: 2, Steps: 300, Volatility: 0.3, Type: Put},
		{Spot: 100, Strike: 90, Rate: 0.01, Maturity: 0.25, Steps: 64, DividendYield: 0.04, Volatility: 0.6, Type: Call},
		{Spot: 100, Strike: 100, Rate: -0.005, Maturity: 3, Steps: 500, Volatility: 0.15, Type: Put},
	}
	for _, scheme := range []Scheme{LeisenReimer, CoxRossRubinstein} {
		for _, o := range contracts {
			lp, err := NewLatticeParams(o, scheme)
			require.NoError(t, err, "%s %+v", scheme, o)

			require.Greater(t, lp.Prob, 0.0)
			require.Less(t, lp.Prob, 1.0)
			require.Greater(t, lp.Down, 0.0)
			require.Less(t, lp.Down, lp.Growth)
			require.Less(t, lp.Growth, lp.Up)

			growth := math.Exp((o.Rate - o.DividendYield) * lp.Dt)
			require.InDelta(t, growth, lp.Growth, 1e-15)
			require.InDelta(t, lp.Growth, lp.Prob*lp.Up+(1-lp.Prob)*lp.Down, 1e-13, "%s %+v", scheme, o)
		}
	}
}

func TestPeizerPratt(t *testing.T) {
	require.Equal(t, 0.5, peizerPratt(0, 101))

	prev := 0.0
	for _, z := range []float64{-3, -1, -0.25, 0, 0.25, 1, 3} {
		p := peizerPratt(z, 101)
		require.Greater(t, p, prev, "z=%v", z)
		require.Less(t, p, 1.0)
		require.InDelta(t, 1.0, p+peizerPratt(-z, 101), 1e-15)
		prev = p
	}
}

func TestDegenerateLatticeIsRejected(t *testing.T) {
	// carry far above volatility: growth escapes [d, u]
	o := documented(1, false)
	o.Rate, o.Volatility = 5, 0.01
	_, err := NewLatticeParams(o, CoxRossRubinstein)
	require.ErrorIs(t, err, ErrInvalidParameter)

	// strike so deep in the money that the inverted probability rounds to 1
	o = documented(101, false)
	o.Strike, o.DividendYield = 1e-6, 0.02
	_, err = NewLatticeParams(o, LeisenReimer)
	require.ErrorIs(t, err, ErrInvalidParameter)

	// the same contract is fine on a standard lattice
	_, err = NewLatticeParams(o, CoxRossRubinstein)
	require.NoError(t, err)
}

func TestNewLatticeParamsValidatesOption(t *testing.T) {
	o := documented(0, false)
	_, err := NewLatticeParams(o, LeisenReimer)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewLatticeParams(documented(10, false), Scheme(42))
	require.ErrorIs(t, err, ErrInvalidParameter)
}
