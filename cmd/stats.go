package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"nuscenes-devkit/core/nusc"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statsFormat string

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-table row counts",
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
		return writeStats(cmd.OutOrStdout(), statsFormat, t.Stats())
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsFormat, "format", "table", "Output format: table, json or yaml")
}

// writeStats renders stats in the requested format.
func writeStats(w io.Writer, format string, stats []nusc.TableStat) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(stats); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TABLE\tROWS\tDUPLICATES\t")
		for _, st := range stats {
			rows := "-"
			if st.Available {
				rows = humanize.Comma(int64(st.Rows))
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t\n", st.Name, rows, st.Duplicates)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
