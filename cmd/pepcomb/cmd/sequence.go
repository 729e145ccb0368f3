package cmd

import (
	"fmt"

	"github.com/ChrisMcGann/pepcomb/pkg/combin"
	"github.com/ChrisMcGann/pepcomb/pkg/config"
	"github.com/ChrisMcGann/pepcomb/pkg/search"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const defaultSequenceOut = "weight_per_sequence_based_on_sequence.xlsx"

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Find reference substrings reachable under a mass bound",
	Long: `Enumerate every combination of the reference residues whose summed mass is
at most the bound, map the masses back to symbols and keep those that
spell a substring of the reference.

Examples:
  # Run the example sequence AVFPSJVGRPR
  pepcomb sequence

  # Search a different sequence and write a SQLite database
  pepcomb sequence --reference GASPV --bound 400 --out result.db`,
	RunE: runSequence,
}

func init() {
	sequenceCmd.Flags().String("reference", config.DefaultReference, "Reference sequence")
	sequenceCmd.Flags().Float64("bound", config.DefaultBound, "Upper bound of the summed residue mass")

	bindFlags(sequenceCmd.Flags(), map[string]string{
		"sequence.reference": "reference",
		"sequence.bound":     "bound",
	})
}

func runSequence(cmd *cobra.Command, args []string) error {
	c, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	if err := c.ValidateSequence(); err != nil {
		return err
	}

	path, err := outputPath(c, defaultSequenceOut)
	if err != nil {
		return err
	}

	alpha, err := c.BuildAlphabet()
	if err != nil {
		return err
	}
	warnAmbiguous(logger, alpha)

	items, err := c.Items(alpha)
	if err != nil {
		return fmt.Errorf("failed to build residues: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Searching %s...\n", c.Sequence.Reference)
	fmt.Fprintf(out, "Residues: %d\n", len(items))
	fmt.Fprintf(out, "Combinations: %s\n", comma(combin.Count(len(items), c.MaxSize)))
	fmt.Fprintf(out, "Mass bound: %v\n", c.Sequence.Bound)

	searcher := search.New(search.Options{
		MaxSize: c.MaxSize,
		Workers: c.Workers,
		Logger:  logger,
	})

	result, err := searcher.BySequence(items, alpha, c.Sequence.Reference, c.Sequence.Bound)
	if err != nil {
		return fmt.Errorf("sequence search failed: %w", err)
	}

	return report(cmd, path, "by_sequence", "weight per sequence (based on sequence)", result)
}

// comma formats a combination count
func comma(n uint64) string {
	const maxInt64 = 1<<63 - 1
	if n > maxInt64 {
		return "more than " + humanize.Comma(maxInt64)
	}
	return humanize.Comma(int64(n))
}
