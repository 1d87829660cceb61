package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mscrnt/gpu_memory_compare/pkg/report"
)

func reportCmd() *cobra.Command {
	var (
		flags     selectionFlags
		format    string
		output    string
		landscape bool
		pageSize  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a comparison report",
		Long: `Generate a static HTML or PDF snapshot of the comparison.

PDF output prints the HTML report in headless Chrome, which must be installed.

Examples:
  # HTML report of every memory type
  memcmp report

  # Latency PDF for the HBM family
  memcmp report --format pdf --metric latency --select HBM3E --select HBM2E

  # Landscape A4 PDF
  memcmp report --format pdf --landscape --page-size A4 --output memory.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "html" && format != "pdf" {
				return fmt.Errorf("format must be either 'html' or 'pdf'")
			}

			v, err := flags.newView()
			if err != nil {
				return err
			}
			st := v.State()
			generator := report.NewGenerator(st)

			if output == "" {
				timestamp := time.Now().Format("20060102_150405")
				output = fmt.Sprintf("memcmp_%s_%s.%s", st.Metric.Key(), timestamp, format)
			}

			switch format {
			case "html":
				html, err := generator.GenerateHTML()
				if err != nil {
					return fmt.Errorf("failed to generate HTML report: %w", err)
				}
				if err := os.WriteFile(output, []byte(html), 0o600); err != nil {
					return fmt.Errorf("failed to write HTML file: %w", err)
				}

			case "pdf":
				options := report.DefaultPDFOptions()
				options.Landscape = landscape
				if err := options.SetPageSize(pageSize); err != nil {
					return err
				}
				if err := generator.GeneratePDF(cmd.Context(), output, &options); err != nil {
					return fmt.Errorf("failed to generate PDF report: %w", err)
				}
			}

			absPath, _ := filepath.Abs(output)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %s report\n", strings.ToUpper(format))
			fmt.Fprintf(out, "Metric: %s (%s)\n", st.Metric.Label(), st.Unit)
			fmt.Fprintf(out, "Selected: %s\n", strings.Join(st.Selected, ", "))
			fmt.Fprintf(out, "Output: %s\n", absPath)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format (html or pdf)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&landscape, "landscape", false, "Generate PDF in landscape mode")
	cmd.Flags().StringVar(&pageSize, "page-size", "LETTER", "PDF page size (A3, A4, LETTER, LEGAL)")

	return cmd
}
