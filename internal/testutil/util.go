// Package testutil holds reference values shared by package tests.
package testutil

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Contract is the minimal set of inputs for a closed-form reference value.
type Contract struct {
	Call     bool
	Spot     float64
	Strike   float64
	Rate     float64
	Div      float64
	Maturity float64
	Vol      float64
}

// Analytic holds Black-Scholes-Merton value and sensitivities. Theta is the
// value change per year as calendar time passes.
type Analytic struct {
	Price, Delta, Gamma, Theta, Vega, Rho float64
}

// DocumentedCall is the documented example contract:
// s0=100, k=110, r=0.05, t=1, div=0, sigma=0.3, call.
var DocumentedCall = Contract{Call: true, Spot: 100, Strike: 110, Rate: 0.05, Maturity: 1, Vol: 0.3}

// BlackScholes returns the closed-form European value and greeks of c.
// It is a test oracle for the lattice, not part of the pricing surface.
func BlackScholes(c Contract) Analytic {
	n := distuv.UnitNormal
	sqrtT := math.Sqrt(c.Maturity)
	d1 := (math.Log(c.Spot/c.Strike) + (c.Rate-c.Div+0.5*c.Vol*c.Vol)*c.Maturity) / (c.Vol * sqrtT)
	d2 := d1 - c.Vol*sqrtT
	dq := math.Exp(-c.Div * c.Maturity)
	dr := math.Exp(-c.Rate * c.Maturity)
	pdf := n.Prob(d1)

	a := Analytic{
		Gamma: dq * pdf / (c.Spot * c.Vol * sqrtT),
		Vega:  c.Spot * dq * pdf * sqrtT,
	}
	decay := -c.Spot * dq * pdf * c.Vol / (2 * sqrtT)
	if c.Call {
		a.Price = c.Spot*dq*n.CDF(d1) - c.Strike*dr*n.CDF(d2)
		a.Delta = dq * n.CDF(d1)
		a.Theta = decay - c.Rate*c.Strike*dr*n.CDF(d2) + c.Div*c.Spot*dq*n.CDF(d1)
		a.Rho = c.Strike * c.Maturity * dr * n.CDF(d2)
	} else {
		a.Price = c.Strike*dr*n.CDF(-d2) - c.Spot*dq*n.CDF(-d1)
		a.Delta = -dq * n.CDF(-d1)
		a.Theta = decay + c.Rate*c.Strike*dr*n.CDF(-d2) - c.Div*c.Spot*dq*n.CDF(-d1)
		a.Rho = -c.Strike * c.Maturity * dr * n.CDF(-d2)
	}
	return a
}

// ParityGap returns S*e^(-qT) - K*e^(-rT), the value of call minus put.
func ParityGap(c Contract) float64 {
	return c.Spot*math.Exp(-c.Div*c.Maturity) - c.Strike*math.Exp(-c.Rate*c.Maturity)
}
