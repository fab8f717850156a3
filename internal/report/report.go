package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-lattice/internal/pricing"
)

// Row is one priced (or rejected) option in a report. Greeks are rounded
// decimal strings so CSV and JSON carry identical text.
type Row struct {
	ID            string  `csv:"id" json:"id"`
	Type          string  `csv:"type" json:"type"`
	American      bool    `csv:"american" json:"american"`
	Scheme        string  `csv:"scheme" json:"scheme"`
	Spot          float64 `csv:"s0" json:"s0"`
	Strike        float64 `csv:"k" json:"k"`
	Rate          float64 `csv:"r" json:"r"`
	Maturity      float64 `csv:"t" json:"t"`
	Steps         int     `csv:"n" json:"n"`
	DividendYield float64 `csv:"div" json:"div"`
	Volatility    float64 `csv:"sigma" json:"sigma"`
	Price         string  `csv:"price" json:"price,omitempty"`
	Delta         string  `csv:"delta" json:"delta,omitempty"`
	Gamma         string  `csv:"gamma" json:"gamma,omitempty"`
	Theta         string  `csv:"theta" json:"theta,omitempty"`
	Vega          string  `csv:"vega" json:"vega,omitempty"`
	Rho           string  `csv:"rho" json:"rho,omitempty"`
	Error         string  `csv:"error" json:"error,omitempty"`
}

// NewRow renders a successful result rounded to places decimals.
func NewRow(id string, o pricing.OptionParams, scheme pricing.Scheme, res pricing.Result, places int32) Row {
	row := baseRow(id, o, scheme)
	row.Price = Round(res.Price, places)
	row.Delta = Round(res.Delta, places)
	row.Gamma = Round(res.Gamma, places)
	row.Theta = Round(res.Theta, places)
	row.Vega = Round(res.Vega, places)
	row.Rho = Round(res.Rho, places)
	return row
}

// FailedRow records a rejected or failed pricing; no greeks are reported.
func FailedRow(id string, o pricing.OptionParams, scheme pricing.Scheme, err error) Row {
	row := baseRow(id, o, scheme)
	row.Error = err.Error()
	return row
}

func baseRow(id string, o pricing.OptionParams, scheme pricing.Scheme) Row {
	return Row{
		ID:            id,
		Type:          string(o.Type),
		American:      o.American,
		Scheme:        scheme.String(),
		Spot:          o.Spot,
		Strike:        o.Strike,
		Rate:          o.Rate,
		Maturity:      o.Maturity,
		Steps:         o.Steps,
		DividendYield: o.DividendYield,
		Volatility:    o.Volatility,
	}
}

// Round formats v half away from zero at the given number of decimal places.
func Round(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

func WriteJSON(rows []Row, outdir string) error {
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "results.json"), b, 0644)
}

func WriteCSV(rows []Row, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "results.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}
