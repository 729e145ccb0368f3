// pepcomb - Peptide mass combination search tool
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/pepcomb/cmd/pepcomb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
