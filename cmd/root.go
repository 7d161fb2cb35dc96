package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/phototools/internal/config"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var cfgFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "phototools",
		Short: "Photo portfolio tools: WebP conversion, metadata editing and JSON date sorting",
		Long: `Phototools prepares images for a photography portfolio site.

It converts JPEG and PNG images to WebP, walks a folder of images to edit
per-image metadata that is merged into the site's portfolio catalog, and
merge-sorts JSON record files by date.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			return config.Init(cfgFile)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.config/phototools/phototools.yaml or ./phototools.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newSortCmd())
	cmd.AddCommand(newCatalogCmd())

	return cmd
}
