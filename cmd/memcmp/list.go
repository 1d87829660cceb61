package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mscrnt/gpu_memory_compare/pkg/chart"
	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

func listCmd() *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the comparison table and chart rows",
		Long: `Print the memory types and the chart data for one metric.

Examples:
  # Everything, charted by speed
  memcmp list

  # Latency of two memory types
  memcmp list --metric latency --select HBM3E --select "SRAM (L1 Cache)"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := flags.newView()
			if err != nil {
				return err
			}
			writeList(cmd.OutOrStdout(), v.State())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func writeList(w io.Writer, st view.State) {
	if len(st.Records) == 0 {
		fmt.Fprintln(w, "No memory types selected")
		return
	}

	fmt.Fprintf(w, "%-16s %12s %12s %16s  %s\n",
		"Memory Type", "Speed (GB/s)", "Latency (ns)", "Price per GB ($)", "Key Features")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range st.Records {
		fmt.Fprintf(w, "%-16s %12s %12s %16s  %s\n",
			r.Name,
			chart.FormatValue(r.Speed),
			chart.FormatValue(r.Latency),
			chart.FormatValue(r.PricePerGB),
			r.KeyFeatures,
		)
	}

	fmt.Fprintf(w, "\nComparison Chart: %s (%s)\n", st.Metric.Label(), st.Unit)
	for _, p := range st.Chart {
		fmt.Fprintf(w, "  %-16s %s\n", p.Name, chart.FormatValue(p.Value))
	}

	fmt.Fprintf(w, "\n%s\n", memtype.Disclaimer)
}
