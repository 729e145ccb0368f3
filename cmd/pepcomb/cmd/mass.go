package cmd

import (
	"fmt"

	"github.com/ChrisMcGann/pepcomb/pkg/combin"
	"github.com/ChrisMcGann/pepcomb/pkg/config"
	"github.com/ChrisMcGann/pepcomb/pkg/search"
	"github.com/spf13/cobra"
)

const defaultMassOut = "weight_per_sequence_based_on_mz.xlsx"

var massCmd = &cobra.Command{
	Use:   "mass",
	Short: "De novo search for residue combinations matching a mass",
	Long: `Enumerate every combination of distinct alphabet symbols whose summed mass
lies within target +/- tolerance and list all contiguous fragments of each
one (a variant).

The target is a residue mass: water and protons already removed. Pass
--precursor-mz and --charge to derive it from an observed precursor ion.

Examples:
  # Run the example target 850.4528 +/- 0.01
  pepcomb mass

  # Derive the target from a doubly charged precursor
  pepcomb mass --precursor-mz 435.2 --charge 2 --tolerance 0.02 --out variants.csv`,
	RunE: runMass,
}

func init() {
	massCmd.Flags().Float64("target", config.DefaultTarget, "Target residue mass")
	massCmd.Flags().Float64("tolerance", config.DefaultTolerance, "Half width of the acceptance band")
	massCmd.Flags().Float64("precursor-mz", 0, "Precursor m/z; replaces --target when set")
	massCmd.Flags().Int("charge", 1, "Precursor charge state")

	bindFlags(massCmd.Flags(), map[string]string{
		"mass.target":       "target",
		"mass.tolerance":    "tolerance",
		"mass.precursor-mz": "precursor-mz",
		"mass.charge":       "charge",
	})
}

func runMass(cmd *cobra.Command, args []string) error {
	c, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	if err := c.ValidateMass(); err != nil {
		return err
	}

	path, err := outputPath(c, defaultMassOut)
	if err != nil {
		return err
	}

	alpha, err := c.BuildAlphabet()
	if err != nil {
		return err
	}
	warnAmbiguous(logger, alpha)

	target := c.Target()

	out := cmd.OutOrStdout()
	if c.Mass.PrecursorMZ > 0 {
		fmt.Fprintf(out, "Precursor: %v (charge %d)\n", c.Mass.PrecursorMZ, c.Mass.Charge)
	}
	fmt.Fprintf(out, "Target mass: %v +/- %v\n", target, c.Mass.Tolerance)
	fmt.Fprintf(out, "Alphabet: %d symbols\n", alpha.Len())
	fmt.Fprintf(out, "Combinations: %s\n", comma(combin.Count(alpha.Len(), c.MaxSize)))

	searcher := search.New(search.Options{
		MaxSize: c.MaxSize,
		Workers: c.Workers,
		Logger:  logger,
	})

	result, err := searcher.ByMass(alpha, target, c.Mass.Tolerance)
	if err != nil {
		return fmt.Errorf("mass search failed: %w", err)
	}

	return report(cmd, path, "by_mass", "weight per sequence (based on mz)", result)
}
