package cmd

import (
	"fmt"
	"time"

	"github.com/lehigh-university-libraries/phototools/internal/config"
	"github.com/lehigh-university-libraries/phototools/internal/images"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var input string
	var output string
	var quality int
	var reportPath string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert JPEG and PNG images to WebP",
		Long: `Converts every JPEG and PNG image in the input folder to WebP in the
output folder, applying EXIF orientation. Four images are converted at a
time; a failing image is logged and the rest continue.`,
		Example: `  # Convert with the configured folders and quality
  phototools convert

  # Convert a specific folder at quality 90 and keep a YAML report
  phototools convert --input ./raw --output ./web --quality 90 --report convert.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("input") {
				input = config.GetConvertInput()
			}
			if !cmd.Flags().Changed("output") {
				output = config.GetConvertOutput()
			}
			if !cmd.Flags().Changed("quality") {
				quality = config.GetConvertQuality()
			}

			converter := images.NewConverter(cmd.OutOrStdout())
			summary, err := converter.Run(images.Options{
				Input:   input,
				Output:  output,
				Quality: quality,
			})
			if err != nil {
				return err
			}

			if reportPath != "" {
				if err := images.SaveReport(reportPath, summary, time.Now()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Folder with source images (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Folder for WebP output (default from config)")
	cmd.Flags().IntVarP(&quality, "quality", "q", 0, "WebP quality 1-100 (default from config)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML report of the run to this file")

	return cmd
}
