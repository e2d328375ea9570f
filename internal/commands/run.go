package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/finsift-dev/finsift/internal/config"
	"github.com/finsift-dev/finsift/internal/pipeline"
)

func newRunCommand() *cobra.Command {
	var dataDir string
	var outDir string
	var configPath string
	var label bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: clean, enrich, derive features, encode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, dataDir, outDir)
			if err != nil {
				return err
			}
			if label {
				cfg.Detection.Label = true
			}

			log := newLogger()
			res, err := pipeline.Run(cfg, time.Now(), log)
			if err != nil {
				return err
			}
			return pipeline.WriteArtifacts(cfg.Data.OutDir, res, log)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "directory with the raw CSV tables")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for output artifacts")
	cmd.Flags().StringVar(&configPath, "config", "", "path to finsift.yaml")
	cmd.Flags().BoolVar(&label, "label", false, "compute anomaly labels with the built-in scorer")

	return cmd
}

// loadConfig resolves a config from file or defaults, with --data/--out
// flags taking precedence.
func loadConfig(path, dataDir, outDir string) (*config.Config, error) {
	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default(dataDir, outDir)
	}

	if dataDir != "" {
		cfg.Data.RawDir = dataDir
	}
	if outDir != "" {
		cfg.Data.OutDir = outDir
	}
	if cfg.Data.RawDir == "" {
		return nil, fmt.Errorf("no data directory: pass --data or set data.raw_dir")
	}
	if cfg.Data.OutDir == "" {
		cfg.Data.OutDir = "out"
	}
	if _, err := os.Stat(cfg.Data.RawDir); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", cfg.Data.RawDir, err)
	}
	return cfg, nil
}
