package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/contactkeval/option-lattice/internal/api"
	"github.com/contactkeval/option-lattice/internal/batch"
	"github.com/contactkeval/option-lattice/internal/config"
	"github.com/contactkeval/option-lattice/internal/logger"
	"github.com/contactkeval/option-lattice/internal/pricing"
	"github.com/contactkeval/option-lattice/internal/report"
)

func main() {
	configPath := flag.String("config", "", "path to config file (json, yaml or toml)")
	rest := flag.Bool("rest", false, "run as REST server")
	port := flag.String("port", "", "REST server listen address, overrides server.addr")
	batchPath := flag.String("batch", "", "price every row of this CSV file and write a report")
	scheme := flag.String("scheme", "", "lattice scheme: lr or crr, overrides config")

	s0 := flag.Float64("s0", 50, "spot price")
	k := flag.Float64("k", 52, "strike price")
	r := flag.Float64("r", 0.05, "risk-free rate")
	t := flag.Float64("t", 2, "time to expiry in years")
	n := flag.Int("n", 0, "lattice steps, the configured default when omitted")
	pu := flag.Float64("pu", 0, "advisory up probability, ignored by the lattice")
	pd := flag.Float64("pd", 0, "advisory down probability, ignored by the lattice")
	div := flag.Float64("div", 0, "continuous dividend yield")
	sigma := flag.Float64("sigma", 0.3, "volatility")
	optType := flag.String("type", "call", "option type: call or put")
	american := flag.Bool("american", false, "allow early exercise")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *scheme != "" {
		cfg.Scheme = *scheme
	}
	if *port != "" {
		cfg.Server.Addr = *port
	}
	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	opts, err := cfg.PricerOptions()
	if err != nil {
		log.Fatalf("invalid pricer settings: %v", err)
	}

	switch {
	case *rest:
		router := api.NewRouter(pricing.NewPricer(opts...), cfg.Server.Mode)
		logger.Infof("starting REST server on %s", cfg.Server.Addr)
		if err := router.Run(cfg.Server.Addr); err != nil {
			log.Fatal(err)
		}
	case *batchPath != "":
		runBatch(cfg, *batchPath)
	default:
		steps := stepsFor(flag.CommandLine, *n, cfg.Steps)
		o, err := pricing.NewOptionParams(*s0, *k, *r, *t, steps, *pu, *pd, *div, *sigma, *optType, *american)
		if err != nil {
			log.Fatalf("invalid option: %v", err)
		}
		p := pricing.NewPricer(opts...)
		start := time.Now()
		res, err := p.Price(o)
		if err != nil {
			var ge *pricing.GreekError
			if errors.As(err, &ge) {
				log.Fatalf("pricing failed on %s: %v", ge.Greek, err)
			}
			log.Fatalf("pricing failed: %v", err)
		}
		logger.Infof("priced on %s lattice in %v", p.Scheme(), time.Since(start))
		fmt.Printf("Option price: %s\n", report.Round(res.Price, cfg.Precision))
		fmt.Printf("Delta: %s\n", report.Round(res.Delta, cfg.Precision))
		fmt.Printf("Gamma: %s\n", report.Round(res.Gamma, cfg.Precision))
		fmt.Printf("Theta: %s\n", report.Round(res.Theta, cfg.Precision))
		fmt.Printf("Vega: %s\n", report.Round(res.Vega, cfg.Precision))
		fmt.Printf("Rho: %s\n", report.Round(res.Rho, cfg.Precision))
	}
}

func runBatch(cfg *config.Config, path string) {
	start := time.Now()
	reqs, err := batch.Load(path)
	if err != nil {
		log.Fatalf("batch: %v", err)
	}
	runner, err := batch.NewRunner(cfg)
	if err != nil {
		log.Fatalf("batch: %v", err)
	}
	rows := runner.Run(reqs)

	// write outputs to cfg.ReportDir
	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		log.Fatalf("could not create output dir %s: %v", cfg.ReportDir, err)
	}
	if err := report.WriteJSON(rows, cfg.ReportDir); err != nil {
		logger.Errorf("writing json report: %v", err)
	}
	if err := report.WriteCSV(rows, cfg.ReportDir); err != nil {
		logger.Errorf("writing csv report: %v", err)
	}
	logger.Infof("finished in %v, wrote %d rows to %s", time.Since(start), len(rows), cfg.ReportDir)
}

// stepsFor returns n when the -n flag was given on fs, otherwise def.
// An explicit -n 0 is passed through and rejected by pricing validation.
func stepsFor(fs *flag.FlagSet, n, def int) int {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "n" {
			set = true
		}
	})
	if !set {
		return def
	}
	return n
}
