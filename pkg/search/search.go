// Package search finds the combinations of monomer masses that account for
// an observed mass.
//
// BySequence checks which substrings of a known reference sequence can be
// built from a subset of its residues under a mass bound. ByMass is the de
// novo search: it keeps every combination of distinct alphabet symbols
// whose mass falls in a tolerance band and expands each into its
// contiguous fragments.
//
// Both searches enumerate every combination before filtering, so the
// running time grows as 2^n in the number of items. Callers bound n.
package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ChrisMcGann/pepcomb/pkg/combin"
	"github.com/ChrisMcGann/pepcomb/pkg/core"
	"github.com/ChrisMcGann/pepcomb/pkg/filter"
	"github.com/ChrisMcGann/pepcomb/pkg/logging"
	"github.com/ChrisMcGann/pepcomb/pkg/table"
)

// Options tune a Searcher. The zero value searches all sizes sequentially
// without logging.
type Options struct {
	// MaxSize caps the combination size (0 = no cap).
	MaxSize int

	// Workers is the number of size classes searched at once. Results are
	// merged largest size first, so output does not depend on it.
	Workers int

	Logger logging.Logger
}

// Searcher runs searches with fixed Options. It holds no state between
// calls and is safe for concurrent use.
type Searcher struct {
	opts Options
	log  logging.Logger
}

// New creates a Searcher.
func New(opts Options) *Searcher {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Searcher{opts: opts, log: log}
}

// BySequence runs Searcher.BySequence with default options.
func BySequence(items []core.Monomer, alpha *core.Alphabet, reference string, bound float64) (*table.Table, error) {
	return New(Options{}).BySequence(items, alpha, reference, bound)
}

// ByMass runs Searcher.ByMass with default options.
func ByMass(alpha *core.Alphabet, target, tolerance float64) (*table.Table, error) {
	return New(Options{}).ByMass(alpha, target, tolerance)
}

// BySequence returns the table (sequence, mass) of reference substrings
// spelled by a combination of items whose summed mass is at most bound.
func (s *Searcher) BySequence(items []core.Monomer, alpha *core.Alphabet, reference string, bound float64) (*table.Table, error) {
	matches, err := s.Matches(items, alpha, reference, bound)
	if err != nil {
		return nil, err
	}
	return matches.Table(), nil
}

// ByMass returns the table (variant_id, sequence, weight) of fragments of
// every alphabet combination within target +/- tolerance.
func (s *Searcher) ByMass(alpha *core.Alphabet, target, tolerance float64) (*table.Table, error) {
	variants, err := s.Variants(alpha, target, tolerance)
	if err != nil {
		return nil, err
	}
	return variants.Table(), nil
}

type match struct {
	sequence string
	mass     float64
}

// Matches is BySequence without the conversion to a table.
//
// Only the masses of items take part in the search; each combination is
// mapped back to symbols with alpha.SymbolOf. A mass missing from the
// alphabet aborts the search with a *core.LookupError.
func (s *Searcher) Matches(items []core.Monomer, alpha *core.Alphabet, reference string, bound float64) (*MatchSet, error) {
	if err := alpha.Validate(); err != nil {
		return nil, err
	}
	pred, err := filter.NewBounded(bound)
	if err != nil {
		return nil, err
	}

	masses := make([]float64, len(items))
	for i, item := range items {
		masses[i] = item.Mass
	}

	s.log.Info("sequence search started",
		"items", len(items),
		"combinations", combin.Count(len(masses), s.opts.MaxSize),
		"filter", pred.String())

	found, err := runSizeClasses(s, len(masses), func(e *combin.Enumerator) ([]match, error) {
		return matchSequences(e, masses, alpha, reference, pred)
	})
	if err != nil {
		return nil, err
	}

	set := NewMatchSet()
	for _, m := range found {
		set.Put(m.sequence, m.mass)
	}

	s.log.Info("sequence search finished", "matches", set.Len())
	return set, nil
}

func matchSequences(e *combin.Enumerator, masses []float64, alpha *core.Alphabet, reference string, pred filter.Predicate) ([]match, error) {
	var out []match
	picked := make([]float64, 0, len(masses))

	for e.Next() {
		idx := e.Indices()
		if !pred.Keep(filter.SumAt(masses, idx)) {
			continue
		}

		picked = picked[:0]
		for _, i := range idx {
			picked = append(picked, masses[i])
		}

		symbols, err := Resolve(alpha, picked)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve combination %v: %w", picked, err)
		}

		seq := Join(symbols)
		if !strings.Contains(reference, seq) {
			continue
		}

		// symbols come from alpha, so the sum cannot fail
		mass, _ := alpha.SumMass(symbols)
		out = append(out, match{sequence: seq, mass: core.RoundFloat(mass, core.MassPrecision)})
	}

	return out, nil
}

// Variants is ByMass without the conversion to a table.
func (s *Searcher) Variants(alpha *core.Alphabet, target, tolerance float64) (*VariantSet, error) {
	if err := alpha.Validate(); err != nil {
		return nil, err
	}
	pred, err := filter.NewBanded(target, tolerance)
	if err != nil {
		return nil, err
	}

	masses := alpha.Masses()
	symbols := alpha.Symbols()

	s.log.Info("mass search started",
		"symbols", len(symbols),
		"combinations", combin.Count(len(masses), s.opts.MaxSize),
		"filter", pred.String())

	combos, err := runSizeClasses(s, len(masses), func(e *combin.Enumerator) ([][]int, error) {
		var out [][]int
		for e.Next() {
			if pred.Keep(filter.SumAt(masses, e.Indices())) {
				out = append(out, append([]int(nil), e.Indices()...))
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	set := &VariantSet{Variants: make([]*Variant, 0, len(combos))}
	for id, idx := range combos {
		picked := make([]string, len(idx))
		for i, p := range idx {
			picked[i] = symbols[p]
		}

		frags, err := Expand(alpha, picked)
		if err != nil {
			return nil, fmt.Errorf("failed to expand variant %d: %w", id, err)
		}

		v := &Variant{
			ID:          id,
			Combination: picked,
			Mass:        filter.SumAt(masses, idx),
		}
		for _, f := range frags {
			v.addFragment(f)
		}
		set.Variants = append(set.Variants, v)
	}

	s.log.Info("mass search finished", "variants", set.Len(), "fragments", set.Rows())
	return set, nil
}

// runSizeClasses applies class to the enumeration of n items and returns
// the concatenated results, largest combination size first. With more
// than one worker each size class is enumerated on its own goroutine.
func runSizeClasses[T any](s *Searcher, n int, class func(e *combin.Enumerator) ([]T, error)) ([]T, error) {
	sizes := combin.Sizes(n, s.opts.MaxSize)
	if s.opts.Workers <= 1 || len(sizes) <= 1 {
		return class(combin.NewEnumerator(n, s.opts.MaxSize))
	}

	results := make([][]T, len(sizes))
	errs := make([]error, len(sizes))
	sem := make(chan struct{}, s.opts.Workers)

	var wg sync.WaitGroup
	for i, k := range sizes {
		wg.Add(1)
		go func(i, k int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i], errs[i] = class(combin.NewSizeClass(n, k))
			s.log.Debug("size class searched", "k", k, "kept", len(results[i]))
		}(i, k)
	}
	wg.Wait()

	var out []T
	for i := range sizes {
		// the largest failing size is the one a sequential run stops at
		if errs[i] != nil {
			return nil, errs[i]
		}
		out = append(out, results[i]...)
	}
	return out, nil
}
