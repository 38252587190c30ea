package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"nuscenes-devkit/feature/integrity"
	"nuscenes-devkit/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var integrityJSON bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the internal consistency of the dataset",
	Long:  `Walks the sample and annotation chains and verifies the references that loading tolerates. Exits with an error when issues are found.`,
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

		logg.Info("Checking dataset integrity...", zap.String("version", cfg.Dataset.Version))
		report := integrity.Check(t)
		if integrityJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("failed to marshal report: %w", err)
			}
		} else {
			writeIntegrity(cmd.OutOrStdout(), report)
		}

		if report.Issues > 0 {
			return fmt.Errorf("%d integrity issues found", report.Issues)
		}
		logg.Info("Dataset is consistent.", zap.String("execution_time", report.ExecutionTime))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().BoolVar(&integrityJSON, "json", false, "Output the full report as JSON")
}

// writeIntegrity prints a per-check summary and the first issues of failed checks.
func writeIntegrity(w io.Writer, report *integrity.Report) {
	fmt.Fprintln(w, "\n=== Dataset Integrity ===")
	fmt.Fprintf(w, "Version: %s\n", report.Version)
	for _, r := range report.Checks {
		fmt.Fprintf(w, "%-20s %-6s %d\n", r.Name, r.Status, r.Count)
		if r.Status == checks.StatusOK {
			continue
		}
		for i, iss := range r.Issues {
			if i == 5 {
				fmt.Fprintf(w, "  ... %d more\n", r.Count-i)
				break
			}
			fmt.Fprintf(w, "  %s %s: %s\n", iss.Table, iss.Token, iss.Message)
		}
	}
	fmt.Fprintf(w, "Execution Time: %s\n", report.ExecutionTime)
}
