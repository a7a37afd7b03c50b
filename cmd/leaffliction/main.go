package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/BeBig007/Leaffliction/internal/pipeline"
	"github.com/BeBig007/Leaffliction/internal/runner"
)

var log = logrus.New()

// rootCmd transforms a single leaf image or a directory of them.
var rootCmd = &cobra.Command{
	Use:   "leaffliction <input> <output>",
	Short: "Extract plant masks and derived artifacts from leaf images",
	Long: strings.TrimSpace(`
Extracts a foreground mask from each leaf photograph (channel projection,
Otsu thresholding, hole filling) and derives the requested artifacts from
it: the mask itself, the masked image, a region-of-interest overlay, size
measurements, pseudolandmarks, or per-channel color histograms.

<input> is an image file or a directory of jpg/jpeg/png files; <output> is
the directory the artifacts are written to. In directory mode a failing
image is reported and skipped without aborting the run.
	`),
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]

		transformation, _ := cmd.Flags().GetString("transformation")
		valid := false
		for _, name := range runner.Transformations {
			if name == transformation {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown transformation %q (choices: %s)",
				transformation, strings.Join(runner.Transformations, ", "))
		}

		channel, _ := cmd.Flags().GetString("channel")
		if !pipeline.Channel(channel).Valid() {
			return fmt.Errorf("unknown channel %q (choices: l, a, b, h, s, v, c, m, y, k)", channel)
		}
		blur, _ := cmd.Flags().GetFloat64("blur")

		r := runner.New(runner.Options{
			OutputDir:  output,
			Channel:    pipeline.Channel(channel),
			BlurRadius: blur,
			Log:        log,
		})

		stat, err := os.Stat(input)
		if err != nil {
			return fmt.Errorf("invalid input path: %w", err)
		}
		if !stat.IsDir() {
			return r.ProcessFile(input, transformation)
		}

		processed, failed, err := r.ProcessDir(input, transformation)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"processed": processed, "failed": failed}).Info("run complete")
		if failed > 0 {
			return fmt.Errorf("%d image(s) failed", failed)
		}
		return nil
	},
}

func main() {
	log.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func init() {
	rootCmd.Flags().StringP("transformation", "t", "",
		"Transformation to apply: "+strings.Join(runner.Transformations, ", "))
	rootCmd.Flags().StringP("channel", "c", string(pipeline.DefaultChannel),
		"Projection channel for mask extraction (l, a, b, h, s, v, c, m, y, k)")
	rootCmd.Flags().Float64P("blur", "b", 0,
		"Gaussian blur radius applied before thresholding (0 disables)")
	_ = rootCmd.MarkFlagRequired("transformation")
}
