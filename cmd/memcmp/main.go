package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mscrnt/gpu_memory_compare/internal/version"
	"github.com/mscrnt/gpu_memory_compare/pkg/tui"
)

var (
	// Build variables set by ldflags
	buildVersion string
	buildCommit  string
	buildTime    string
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memcmp",
		Short: "GPU Memory Comparison",
		Long: `memcmp compares GPU memory technologies (HBM, GDDR and on-chip SRAM)
by speed, latency and price per GB.

It serves an interactive web page, runs a terminal UI, launches a desktop
window and renders static HTML or PDF reports.`,
		Version:       version.GetVersion(buildVersion, buildCommit, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnv()
		},
	}

	cmd.AddCommand(versionCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(tuiCmd())
	cmd.AddCommand(reportCmd())
	cmd.AddCommand(guiCmd())
	cmd.AddCommand(certCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion(buildVersion, buildCommit, buildTime))
		},
	}
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		Long: `Run the comparison in the terminal.

Keys:
  1-7      toggle a memory type
  a        select all
  s l p    chart speed, latency or price per GB
  tab      cycle the metric
  q        quit`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.Run()
		},
	}
}
