package cmd

import (
	"fmt"

	"github.com/ChrisMcGann/pepcomb/pkg/config"
	"github.com/ChrisMcGann/pepcomb/pkg/table"
	"github.com/ChrisMcGann/pepcomb/pkg/writer"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// outputPath returns the export path and checks its format before any
// search runs. It returns "" when exporting is disabled.
func outputPath(c config.Config, defaultOut string) (string, error) {
	if c.NoExport {
		return "", nil
	}

	path := c.Out
	if path == "" {
		path = defaultOut
	}
	if _, err := writer.DetectFormat(path); err != nil {
		return "", err
	}
	return path, nil
}

// report exports the result to path unless it is empty and prints it
func report(cmd *cobra.Command, path, name, title string, result *table.Table) error {
	if path != "" {
		if err := writer.Export(path, name, result); err != nil {
			return fmt.Errorf("failed to export result: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s:\n", title)
	if err := result.Render(out); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSearch complete!\n")
	fmt.Fprintf(out, "Rows: %s\n", humanize.Comma(int64(result.Len())))
	if path != "" {
		fmt.Fprintf(out, "Output: %s\n", path)
	}
	return nil
}
