package cmd

import (
	"fmt"
	"os"

	"nuscenes-devkit/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is the directory holding the .env file.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "nuscenes-devkit",
	Short: "nuScenes dataset index",
	Long: `nuscenes-devkit loads the nuScenes metadata tables into an in-memory relational index.
It serves lookups over HTTP, checks dataset integrity and exports denormalized tables to SQL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l, logErr := logger.CLI()
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing the .env file")
}
