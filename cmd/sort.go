package cmd

import (
	"fmt"

	"github.com/lehigh-university-libraries/phototools/internal/config"
	"github.com/lehigh-university-libraries/phototools/internal/mergesort"
	"github.com/spf13/cobra"
)

func newSortCmd() *cobra.Command {
	var order string
	var save bool
	var outputDir string

	cmd := &cobra.Command{
		Use:   "sort DIR",
		Short: "Merge-sort JSON records by tdate",
		Long: `Reads every *.json file in DIR, keeps the records with a valid tdate
(YYYY-MM-DD) and sorts them newest or oldest first. One summary row is
printed per file. With --save the sorted records are written to one file
per input plus combined_sorted.json in the output subdirectory.`,
		Example: `  # Preview, newest first
  phototools sort ./data

  # Write sorted files, oldest first
  phototools sort ./data --order oldest --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output-dir") {
				outputDir = config.GetSortOutputDir()
			}
			mode := mergesort.Preview
			if save {
				mode = mergesort.Save
			}

			report, err := mergesort.Run(mergesort.Options{
				Dir:       args[0],
				Order:     mergesort.Order(order),
				Mode:      mode,
				OutputDir: outputDir,
			})
			if report != nil {
				out := cmd.OutOrStdout()
				for _, row := range report.Rows {
					fmt.Fprintln(out, row)
				}
				if err == nil {
					fmt.Fprintln(out, report.Message())
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&order, "order", string(mergesort.Newest), "Sort order: newest or oldest")
	cmd.Flags().BoolVar(&save, "save", false, "Write sorted files instead of previewing")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Subdirectory for sorted files (default from config)")

	return cmd
}
