package pricing

import "math"

// Engine values an option by backward induction over a recombining lattice.
//
// Engine holds no state. Each call allocates its own working slice, so one
// Engine may be shared by concurrent repricings.
type Engine struct{}

// Rollback is the outcome of one backward induction pass.
//
// Step1 and Step2 hold the node values one and two steps from the root,
// indexed by the number of up moves. Step2 is only meaningful when Levels is 2.
type Rollback struct {
	Value  float64
	Step1  [2]float64
	Step2  [3]float64
	Levels int // near-root slices captured: 1 for a single-step lattice, else 2
}

// Price returns the root value of the lattice.
func (e Engine) Price(o OptionParams, lp LatticeParams) (float64, error) {
	rb, err := e.Rollback(o, lp)
	if err != nil {
		return 0, err
	}
	return rb.Value, nil
}

// Rollback prices the option and keeps the near-root slices for delta and
// gamma. Time is O(N^2), memory O(N).
//
// At every node the continuation value is
//
//	C = disc * (p*V[j+1] + (1-p)*V[j])
//
// and for American exercise the node takes max(C, exercise(S)), keeping C
// on ties.
func (e Engine) Rollback(o OptionParams, lp LatticeParams) (Rollback, error) {
	if err := lp.check(); err != nil {
		return Rollback{}, unstablef("%v", err)
	}

	n := lp.Steps
	p, q := lp.Prob, 1-lp.Prob

	// S(i, j) = S0 * u^j * d^(i-j)
	upPow := powers(lp.Up, n)
	downPow := powers(lp.Down, n)

	values := make([]float64, n+1)
	for j := 0; j <= n; j++ {
		values[j] = o.exercise(o.Spot * upPow[j] * downPow[n-j])
	}

	var rb Rollback
	capture := func(i int) {
		switch i {
		case 2:
			copy(rb.Step2[:], values[:3])
			rb.Levels = 2
		case 1:
			copy(rb.Step1[:], values[:2])
			if rb.Levels == 0 {
				rb.Levels = 1
			}
		}
	}
	capture(n)

	for i := n - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			v := lp.Disc * (p*values[j+1] + q*values[j])
			if o.American {
				if ex := o.exercise(o.Spot * upPow[j] * downPow[i-j]); ex > v {
					v = ex
				}
			}
			values[j] = v
		}
		capture(i)
	}

	rb.Value = values[0]
	if !isFinite(rb.Value) {
		return Rollback{}, unstablef("non-finite root value %v", rb.Value)
	}
	return rb, nil
}

// powers returns [x^0, x^1, ..., x^n].
func powers(x float64, n int) []float64 {
	out := make([]float64, n+1)
	for k := range out {
		out[k] = math.Pow(x, float64(k))
	}
	return out
}
