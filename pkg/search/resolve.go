package search

import (
	"strings"

	"github.com/ChrisMcGann/pepcomb/pkg/core"
)

// Resolve maps each mass to its symbol with alpha.SymbolOf, keeping order.
// Colliding masses resolve to the first symbol in the alphabet.
func Resolve(alpha *core.Alphabet, masses []float64) ([]string, error) {
	symbols := make([]string, len(masses))
	for i, m := range masses {
		sym, err := alpha.SymbolOf(m)
		if err != nil {
			return nil, err
		}
		symbols[i] = sym
	}
	return symbols, nil
}

// Join concatenates symbols into a sequence string.
func Join(symbols []string) string {
	return strings.Join(symbols, "")
}
