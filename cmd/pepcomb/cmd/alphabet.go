package cmd

import (
	"fmt"
	"strings"

	"github.com/ChrisMcGann/pepcomb/pkg/core"
	"github.com/ChrisMcGann/pepcomb/pkg/logging"
	"github.com/ChrisMcGann/pepcomb/pkg/table"
	"github.com/spf13/cobra"
)

var alphabetCmd = &cobra.Command{
	Use:   "alphabet",
	Short: "Print the effective alphabet in search order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Close()

		alpha, err := c.BuildAlphabet()
		if err != nil {
			return err
		}

		t := table.New("symbol", "mass")
		for _, m := range alpha.Monomers() {
			t.Append(m.Symbol, m.Mass)
		}
		if err := t.Render(cmd.OutOrStdout()); err != nil {
			return err
		}

		for _, group := range alpha.Ambiguous() {
			fmt.Fprintf(cmd.OutOrStdout(), "Ambiguous mass: %s resolve to %s\n", strings.Join(group, ", "), group[0])
		}
		return nil
	},
}

// warnAmbiguous logs every group of symbols sharing a mass
func warnAmbiguous(logger logging.Logger, alpha *core.Alphabet) {
	for _, group := range alpha.Ambiguous() {
		logger.Warn("symbols share a mass, masses resolve to the first",
			"symbols", strings.Join(group, ","),
			"resolved", group[0])
	}
}
