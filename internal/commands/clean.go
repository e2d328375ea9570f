package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/finsift-dev/finsift/internal/dataset"
	"github.com/finsift-dev/finsift/internal/pipeline"
)

func newCleanCommand() *cobra.Command {
	var dataDir string
	var outDir string
	var configPath string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the six entity tables and write them as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, dataDir, outDir)
			if err != nil {
				return err
			}

			log := newLogger()
			ds, err := dataset.Load(cfg.Data.RawDir)
			if err != nil {
				return err
			}
			tables, _, err := pipeline.CleanAll(ds, cfg, time.Now(), log)
			if err != nil {
				return err
			}
			return pipeline.WriteCleaned(cfg.Data.OutDir, tables, log)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "directory with the raw CSV tables")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for the cleaned tables")
	cmd.Flags().StringVar(&configPath, "config", "", "path to finsift.yaml")

	return cmd
}
