package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/finsift-dev/finsift/internal/clean"
	"github.com/finsift-dev/finsift/internal/enrich"
	"github.com/finsift-dev/finsift/internal/feature"
)

// Artifact file names under the output directory.
const (
	EnrichedFile = "enriched.csv"
	FeaturesFile = "features.csv"
	MatrixFile   = "matrix.csv"
	LabelsFile   = "labels.csv"
)

// WriteArtifacts writes the run's outputs under dir: the enriched table, the
// feature table, the encoded matrix, and labels when present.
func WriteArtifacts(dir string, res *Result, log zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	if err := writeFile(dir, EnrichedFile, func(f *os.File) error {
		return enrich.Write(f, res.Enriched)
	}); err != nil {
		return err
	}
	if err := writeFile(dir, FeaturesFile, func(f *os.File) error {
		return feature.WriteMatrix(f, res.Features)
	}); err != nil {
		return err
	}
	if err := writeFile(dir, MatrixFile, func(f *os.File) error {
		return feature.WriteMatrix(f, res.Encoded)
	}); err != nil {
		return err
	}
	if res.Labels != nil {
		if err := writeFile(dir, LabelsFile, func(f *os.File) error {
			return writeLabels(f, res.Labels)
		}); err != nil {
			return err
		}
	}

	log.Info().Str("dir", dir).Msg("artifacts written")
	return nil
}

// WriteCleaned writes the six cleaned entity tables under dir, one CSV per
// table.
func WriteCleaned(dir string, tables *enrich.Tables, log zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	writers := []struct {
		name  string
		write func(*os.File) error
	}{
		{"accounts_cleaned.csv", func(f *os.File) error { return clean.WriteAccounts(f, tables.Accounts) }},
		{"addresses_cleaned.csv", func(f *os.File) error { return clean.WriteAddresses(f, tables.Addresses) }},
		{"branches_cleaned.csv", func(f *os.File) error { return clean.WriteBranches(f, tables.Branches) }},
		{"customers_cleaned.csv", func(f *os.File) error { return clean.WriteCustomers(f, tables.Customers) }},
		{"loans_cleaned.csv", func(f *os.File) error { return clean.WriteLoans(f, tables.Loans) }},
		{"transactions_cleaned.csv", func(f *os.File) error { return clean.WriteTransactions(f, tables.Transactions) }},
	}
	for _, w := range writers {
		if err := writeFile(dir, w.name, w.write); err != nil {
			return err
		}
	}

	log.Info().Str("dir", dir).Msg("cleaned tables written")
	return nil
}

func writeFile(dir, name string, write func(*os.File) error) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func writeLabels(f *os.File, labels []bool) error {
	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write([]string{"anomaly_label"}); err != nil {
		return fmt.Errorf("writing labels header: %w", err)
	}
	for i, l := range labels {
		v := "0"
		if l {
			v = "1"
		}
		if err := cw.Write([]string{v}); err != nil {
			return fmt.Errorf("writing labels row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
