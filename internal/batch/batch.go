// Package batch prices a list of option requests read from CSV.
//
// Requests are priced one after another; each row is independent and a
// failing row is reported in the output rather than aborting the batch.
package batch

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/contactkeval/option-lattice/internal/config"
	"github.com/contactkeval/option-lattice/internal/logger"
	"github.com/contactkeval/option-lattice/internal/pricing"
	"github.com/contactkeval/option-lattice/internal/report"
)

// Request is one CSV row. Column names follow the pricing entry point.
// Scheme is optional and overrides the configured scheme for that row.
type Request struct {
	ID       string  `csv:"id"`
	Spot     float64 `csv:"s0"`
	Strike   float64 `csv:"k"`
	Rate     float64 `csv:"r"`
	Maturity float64 `csv:"t"`
	Steps    int     `csv:"n"`
	UpProb   float64 `csv:"pu"`
	DownProb float64 `csv:"pd"`
	Div      float64 `csv:"div"`
	Sigma    float64 `csv:"sigma"`
	Type     string  `csv:"type"`
	American bool    `csv:"american"`
	Scheme   string  `csv:"scheme"`
}

// Load reads requests from a CSV file with a header row.
func Load(path string) ([]Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes requests from r.
func Read(r io.Reader) ([]Request, error) {
	var reqs []Request
	if err := gocsv.Unmarshal(r, &reqs); err != nil {
		return nil, fmt.Errorf("decode batch csv: %w", err)
	}
	return reqs, nil
}

// Runner prices requests with pricers built from one config.
type Runner struct {
	cfg     *config.Config
	pricers map[pricing.Scheme]*pricing.Pricer
}

func NewRunner(cfg *config.Config) (*Runner, error) {
	opts, err := cfg.PricerOptions()
	if err != nil {
		return nil, err
	}
	r := &Runner{cfg: cfg, pricers: make(map[pricing.Scheme]*pricing.Pricer)}
	for _, s := range []pricing.Scheme{pricing.LeisenReimer, pricing.CoxRossRubinstein} {
		// scheme option last so it wins over the configured one
		r.pricers[s] = pricing.NewPricer(append(opts[:len(opts):len(opts)], pricing.WithScheme(s))...)
	}
	return r, nil
}

// Run prices every request and returns one report row per request, in order.
func (r *Runner) Run(reqs []Request) []report.Row {
	rows := make([]report.Row, 0, len(reqs))
	failed := 0
	for i, req := range reqs {
		row := r.price(req)
		if row.Error != "" {
			failed++
			logger.Errorf("row %d (%s) failed: %s", i+1, row.ID, row.Error)
		} else {
			logger.Debugf("row %d (%s) price=%s", i+1, row.ID, row.Price)
		}
		rows = append(rows, row)
	}
	logger.Infof("priced %d rows, %d failed", len(reqs), failed)
	return rows
}

func (r *Runner) price(req Request) report.Row {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	raw := pricing.OptionParams{
		Spot:          req.Spot,
		Strike:        req.Strike,
		Rate:          req.Rate,
		Maturity:      req.Maturity,
		Steps:         req.Steps,
		DividendYield: req.Div,
		Volatility:    req.Sigma,
		Type:          pricing.OptionType(req.Type),
		American:      req.American,
	}

	schemeName := req.Scheme
	if schemeName == "" {
		schemeName = r.cfg.Scheme
	}
	scheme, err := pricing.ParseScheme(schemeName)
	if err != nil {
		return report.FailedRow(id, raw, pricing.Scheme(-1), err)
	}

	o, err := pricing.NewOptionParams(req.Spot, req.Strike, req.Rate, req.Maturity, req.Steps,
		req.UpProb, req.DownProb, req.Div, req.Sigma, req.Type, req.American)
	if err != nil {
		return report.FailedRow(id, raw, scheme, err)
	}
	res, err := r.pricers[scheme].Price(o)
	if err != nil {
		return report.FailedRow(id, o, scheme, err)
	}
	return report.NewRow(id, o, scheme, res, r.cfg.Precision)
}
