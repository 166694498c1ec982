// Package main is the wallpaper command line tool. It renders quote
// wallpapers to PNG files without running the API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quoteflow/internal/app"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/wallpaper"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	brand    string
	logLevel string
	fonts    wallpaper.FontConfig
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "wallpaper",
		Short:         "Render 1920x1080 quote wallpapers",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.brand, "brand", wallpaper.DefaultBrand, "brand text drawn under the quote")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.fonts.Quote, "font-quote", "", "TrueType file for the quote text")
	flags.StringVar(&opts.fonts.Author, "font-author", "", "TrueType file for the author line")
	flags.StringVar(&opts.fonts.Badge, "font-badge", "", "TrueType file for the category badge")
	flags.StringVar(&opts.fonts.Brand, "font-brand", "", "TrueType file for the brand line")

	cmd.AddCommand(newRenderCmd(opts), newSampleCmd(opts))

	return cmd
}

// service builds a wallpaper service from the shared flags. Logs go to
// the command's stderr so stdout stays usable for file names.
func (o *rootOptions) service(cmd *cobra.Command) (*app.WallpaperService, *slog.Logger, error) {
	logger := logging.NewWithWriter(&logging.Config{
		Level:   o.logLevel,
		Format:  "pretty",
		Service: "wallpaper",
		Version: Version,
	}, cmd.ErrOrStderr())

	fonts, err := wallpaper.LoadFontSet(o.fonts, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("loading fonts: %w", err)
	}

	renderer := wallpaper.NewRenderer(fonts, wallpaper.WithBrand(o.brand))

	return app.NewWallpaperService(renderer, nil, app.NewExecutor(logger), nil), logger, nil
}
