package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"nuscenes-devkit/core/database"
	"nuscenes-devkit/feature/export"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportYes       bool
	exportBatchSize int
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export denormalized tables to the configured database",
	Long:  `Replaces the scene, sample, sample_data, annotation, instance and category tables of the configured database with the contents of the dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		t, err := openTables(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}

		if !exportYes {
			fmt.Fprintf(cmd.OutOrStdout(), "Replace exported tables in %s database %q? [y/N] ", cfg.Database.Driver, cfg.Database.Name)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				logg.Info("Export cancelled")
				return nil
			}
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		report, err := export.New(db, exportBatchSize, logg).Export(cmd.Context(), t)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "\n=== Export ===")
		for _, tc := range report.Tables {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", tc.Table, humanize.Comma(tc.Rows))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Execution Time: %s\n", report.ExecutionTime)

		logg.Info("Export completed", zap.String("driver", cfg.Database.Driver), zap.Int("tables", len(report.Tables)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportYes, "yes", false, "Skip the confirmation prompt")
	exportCmd.Flags().IntVar(&exportBatchSize, "batch-size", export.DefaultBatchSize, "Rows per INSERT statement")
}
