// Package pipeline runs the full batch: load the raw directory, clean the
// six entity tables, enrich, derive features, encode, and write artifacts.
// Stages run sequentially and table-complete; each stage produces a new
// in-memory table rather than mutating its input.
package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsift-dev/finsift/internal/clean"
	"github.com/finsift-dev/finsift/internal/config"
	"github.com/finsift-dev/finsift/internal/dataset"
	"github.com/finsift-dev/finsift/internal/detect"
	"github.com/finsift-dev/finsift/internal/encode"
	"github.com/finsift-dev/finsift/internal/enrich"
	"github.com/finsift-dev/finsift/internal/feature"
)

// Result carries the outputs of one run.
type Result struct {
	CleanStats []clean.Stats
	Enriched   []enrich.Row
	Features   *feature.Matrix
	Encoded    *feature.Matrix
	Labels     []bool // nil unless labeling is enabled
}

// Run executes the pipeline against cfg, with now as the processing time for
// temporal validity checks.
func Run(cfg *config.Config, now time.Time, log zerolog.Logger) (*Result, error) {
	started := time.Now()

	// 1. Load raw tables. Missing files or columns abort the run; nothing
	// inside the cells can.
	ds, err := dataset.Load(cfg.Data.RawDir)
	if err != nil {
		return nil, fmt.Errorf("loading raw tables: %w", err)
	}
	log.Info().Str("dir", cfg.Data.RawDir).Msg("raw tables loaded")

	// 2. Clean the six entity tables. The cleaners are independent of one
	// another; order does not matter.
	tables, stats, err := CleanAll(ds, cfg, now, log)
	if err != nil {
		return nil, err
	}

	// 3. Parse the lookup tables.
	if err := attachLookups(ds, tables); err != nil {
		return nil, err
	}

	// 4. Enrich: one output row per cleaned transaction.
	rows := enrich.Build(tables)
	log.Info().Int("rows", len(rows)).Msg("transactions enriched")

	// 5. Derive features and project to the modeling columns.
	features := feature.Compute(rows, cfg.Thresholds, now)

	// 6. Encode for modeling.
	encoded, err := encode.New().FitTransform(features)
	if err != nil {
		return nil, fmt.Errorf("encoding features: %w", err)
	}
	log.Info().Int("rows", len(encoded.Rows)).Int("columns", len(encoded.Columns)).Msg("feature matrix encoded")

	res := &Result{
		CleanStats: stats,
		Enriched:   rows,
		Features:   features,
		Encoded:    encoded,
	}

	// 7. Optional anomaly labeling with the built-in scorer.
	if cfg.Detection.Label {
		scorer := detect.ZScoreScorer{Threshold: cfg.Detection.ZScoreThreshold}
		res.Labels = detect.CombineLabels(scorer.FitPredict(encoded))
		flagged := 0
		for _, l := range res.Labels {
			if l {
				flagged++
			}
		}
		log.Info().Int("flagged", flagged).Msg("anomaly labels computed")
	}

	log.Info().Dur("elapsed", time.Since(started)).Msg("pipeline complete")
	return res, nil
}

// CleanAll runs the six entity cleaners over a loaded dataset.
func CleanAll(ds *dataset.Dataset, cfg *config.Config, now time.Time, log zerolog.Logger) (*enrich.Tables, []clean.Stats, error) {
	countries := clean.NewCanonicalMatcher(cfg.Cleaning.Countries)
	tables := &enrich.Tables{}
	var stats []clean.Stats

	accounts, st, err := clean.Accounts(ds.Accounts, now, log)
	if err != nil {
		return nil, nil, err
	}
	tables.Accounts, stats = accounts, append(stats, st)

	addresses, st, err := clean.Addresses(ds.Addresses, countries, log)
	if err != nil {
		return nil, nil, err
	}
	tables.Addresses, stats = addresses, append(stats, st)

	branches, st, err := clean.Branches(ds.Branches, log)
	if err != nil {
		return nil, nil, err
	}
	tables.Branches, stats = branches, append(stats, st)

	customers, st, err := clean.Customers(ds.Customers, now, log)
	if err != nil {
		return nil, nil, err
	}
	tables.Customers, stats = customers, append(stats, st)

	loans, st, err := clean.Loans(ds.Loans, now, log)
	if err != nil {
		return nil, nil, err
	}
	tables.Loans, stats = loans, append(stats, st)

	transactions, st, err := clean.Transactions(ds.Transactions, now, log)
	if err != nil {
		return nil, nil, err
	}
	tables.Transactions, stats = transactions, append(stats, st)

	return tables, stats, nil
}

func attachLookups(ds *dataset.Dataset, tables *enrich.Tables) error {
	var err error
	if tables.TransactionTypes, err = dataset.Lookup(ds.TransactionTypes, "TransactionTypeID", "TypeName"); err != nil {
		return err
	}
	if tables.AccountTypes, err = dataset.Lookup(ds.AccountTypes, "AccountTypeID", "TypeName"); err != nil {
		return err
	}
	if tables.AccountStatuses, err = dataset.Lookup(ds.AccountStatuses, "AccountStatusID", "StatusName"); err != nil {
		return err
	}
	if tables.CustomerTypes, err = dataset.Lookup(ds.CustomerTypes, "CustomerTypeID", "TypeName"); err != nil {
		return err
	}
	if tables.LoanStatuses, err = dataset.Lookup(ds.LoanStatuses, "LoanStatusID", "StatusName"); err != nil {
		return err
	}
	return nil
}
