package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
)

type renderOptions struct {
	record domain.QuoteRecord
	out    string
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one quote to a PNG file",
		Example: `  wallpaper render --text "Stay hungry, stay foolish." --author "Steve Jobs" --category motivational
  wallpaper render --text "..." --author "..." --category funny --out funny.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.record.Text, "text", "", "quote text")
	flags.StringVar(&opts.record.Author, "author", "", "quote author")
	flags.StringVar(&opts.record.Category, "category", domain.DefaultCategory, "quote category")
	flags.StringVarP(&opts.out, "out", "o", "", "output file (default quote-wallpaper-<ms>.png)")

	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("author")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	service, logger, err := root.service(cmd)
	if err != nil {
		return err
	}

	ctx := logging.WithContext(cmd.Context(), logger)

	w, err := service.Create(ctx, opts.record)
	if err != nil {
		return err
	}

	path := opts.out
	if path == "" {
		path = w.Filename
	}

	if err := os.WriteFile(path, w.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)

	return nil
}
