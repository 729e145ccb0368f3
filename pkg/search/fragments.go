package search

import "github.com/ChrisMcGann/pepcomb/pkg/core"

// Fragment is the contiguous slice [Start, End) of a combination.
type Fragment struct {
	Start    int
	End      int
	Sequence string
	Weight   float64
}

// Expand returns every contiguous non-empty slice of symbols, k(k+1)/2 of
// them, ordered by start and then end. Weights are summed from the
// alphabet for each fragment.
func Expand(alpha *core.Alphabet, symbols []string) ([]Fragment, error) {
	k := len(symbols)
	frags := make([]Fragment, 0, k*(k+1)/2)
	for i := 0; i < k; i++ {
		for j := i + 1; j <= k; j++ {
			weight, err := alpha.SumMass(symbols[i:j])
			if err != nil {
				return nil, err
			}
			frags = append(frags, Fragment{
				Start:    i,
				End:      j,
				Sequence: Join(symbols[i:j]),
				Weight:   weight,
			})
		}
	}
	return frags, nil
}
