package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

// envFile is read from the working directory before any command runs
const envFile = ".env"

// loadEnv applies envFile to the environment. Variables that are already
// set win, and a missing file is not an error.
func loadEnv() error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return nil
}

// selectionFlags holds the flags shared by commands that render a snapshot
type selectionFlags struct {
	metric string
	names  []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.metric, "metric", "m", memtype.Speed.Key(), "Metric to chart (speed, latency, pricePerGB)")
	cmd.Flags().StringArrayVarP(&f.names, "select", "s", nil, "Memory type to include, repeatable (default all)")
}

// newView builds a view for the flags. No --select keeps every record.
func (f *selectionFlags) newView() (*view.View, error) {
	metric, err := memtype.ParseMetric(f.metric)
	if err != nil {
		return nil, err
	}

	v := view.New()
	v.SetMetric(metric)
	if len(f.names) > 0 {
		if err := v.SelectOnly(f.names...); err != nil {
			return nil, err
		}
	}
	return v, nil
}
