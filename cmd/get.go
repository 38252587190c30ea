package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <table> <token>",
	Short: "Print one record as JSON",
	Long:  `Loads the dataset and prints the denormalized record with the given token.`,
	Args:  cobra.ExactArgs(2),
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
		rec, err := t.Get(args[0], args[1])
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	RootCmd.AddCommand(getCmd)
}
