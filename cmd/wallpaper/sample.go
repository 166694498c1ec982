package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quoteflow/internal/app"
	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/quotes"
)

type sampleOptions struct {
	dir     string
	workers int
}

func newSampleCmd(root *rootOptions) *cobra.Command {
	opts := &sampleOptions{}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Render the first built-in quote of every category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSample(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "output directory")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 2, "concurrent renders")

	return cmd
}

// sampleRecords returns one record per fallback category, sorted by category.
func sampleRecords(table quotes.Table) []domain.QuoteRecord {
	categories := make([]string, 0, len(table))
	for category := range table {
		categories = append(categories, category)
	}

	slices.Sort(categories)

	records := make([]domain.QuoteRecord, 0, len(categories))
	for _, category := range categories {
		records = append(records, table[category][0].Normalize(category))
	}

	return records
}

func runSample(cmd *cobra.Command, root *rootOptions, opts *sampleOptions) error {
	service, logger, err := root.service(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", opts.dir, err)
	}

	ctx := logging.WithContext(cmd.Context(), logger)
	records := sampleRecords(quotes.DefaultTable())

	var (
		mu      sync.Mutex
		written []string
	)

	err = app.FanOut(ctx, opts.workers, records, func(ctx context.Context, record domain.QuoteRecord) error {
		w, err := service.Create(ctx, record)
		if err != nil {
			return err
		}

		path := filepath.Join(opts.dir, "sample-"+record.Category+".png")
		if err := os.WriteFile(path, w.Data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		mu.Lock()
		written = append(written, path)
		mu.Unlock()

		return nil
	})
	if err != nil {
		return err
	}

	slices.Sort(written)

	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	return nil
}
