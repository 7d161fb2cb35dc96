package cmd

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/phototools/internal/catalog"
	"github.com/lehigh-university-libraries/phototools/internal/config"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and export the portfolio catalog",
	}

	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogExportCmd())

	return cmd
}

func newCatalogListCmd() *cobra.Command {
	var filter catalog.Filter
	var seasons bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Example: `  # The six most recent featured photos
  phototools catalog list --featured --limit 6

  # Everything tagged nature from winter
  phototools catalog list --tag nature --season winter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := catalog.Load(config.GetCatalogPath())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if seasons {
				for _, s := range catalog.Seasons(records) {
					fmt.Fprintln(out, s)
				}
				return nil
			}

			matches := catalog.Query(records, filter)
			for _, r := range matches {
				featured := ""
				if r.Featured {
					featured = " *"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t[%s]%s\n", r.UDate, r.ID, r.Title, r.Season, strings.Join(r.Tags, ","), featured)
			}
			fmt.Fprintf(out, "%d of %d entries\n", len(matches), len(records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&filter.Featured, "featured", false, "Only featured entries, newest first")
	cmd.Flags().BoolVar(&filter.Recent, "recent", false, "Sort by last update, newest first")
	cmd.Flags().StringVar(&filter.Season, "season", "", "Only entries from this season")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "Only entries with this tag")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "Maximum number of entries (0 for all)")
	cmd.Flags().BoolVar(&seasons, "seasons", false, "List the distinct seasons instead")

	return cmd
}

func newCatalogExportCmd() *cobra.Command {
	var parquetPath string

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export the catalog",
		Example: `  phototools catalog export --parquet portfolio.parquet`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := catalog.Load(config.GetCatalogPath())
			if err != nil {
				return err
			}
			if err := catalog.ExportParquet(parquetPath, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(records), parquetPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&parquetPath, "parquet", "", "Parquet file to write")
	_ = cmd.MarkFlagRequired("parquet")

	return cmd
}
