// Package core provides the monomer alphabet, residue chemistry and the
// error types shared by the search packages.
package core

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Monomer is a symbol with its residue mass.
type Monomer struct {
	Symbol string
	Mass   float64
}

// Alphabet is an ordered symbol -> mass table with an inverse lookup.
// Iteration order is insertion order and decides the order combinations
// are produced in.
type Alphabet struct {
	monomers []Monomer
	index    map[string]int // symbol -> position in monomers
}

// NewAlphabet creates an alphabet from monomers in the given order.
func NewAlphabet(monomers ...Monomer) *Alphabet {
	a := &Alphabet{
		index: make(map[string]int, len(monomers)),
	}
	for _, m := range monomers {
		a.Add(m.Symbol, m.Mass)
	}
	return a
}

// Add adds a symbol. Re-adding a symbol replaces its mass but keeps the
// position of the first insertion.
func (a *Alphabet) Add(symbol string, mass float64) {
	if i, ok := a.index[symbol]; ok {
		a.monomers[i].Mass = mass
		return
	}
	a.index[symbol] = len(a.monomers)
	a.monomers = append(a.monomers, Monomer{Symbol: symbol, Mass: mass})
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.monomers)
}

// Monomers returns a copy of the table in order.
func (a *Alphabet) Monomers() []Monomer {
	out := make([]Monomer, len(a.monomers))
	copy(out, a.monomers)
	return out
}

// Symbols returns the symbols in order.
func (a *Alphabet) Symbols() []string {
	out := make([]string, len(a.monomers))
	for i, m := range a.monomers {
		out[i] = m.Symbol
	}
	return out
}

// Masses returns the masses in order.
func (a *Alphabet) Masses() []float64 {
	out := make([]float64, len(a.monomers))
	for i, m := range a.monomers {
		out[i] = m.Mass
	}
	return out
}

// MassOf returns the mass stored for symbol.
func (a *Alphabet) MassOf(symbol string) (float64, error) {
	i, ok := a.index[symbol]
	if !ok {
		return 0, &LookupError{Symbol: symbol}
	}
	return a.monomers[i].Mass, nil
}

// SymbolOf returns the first symbol, in table order, whose mass is exactly
// equal to mass. Colliding masses always resolve to the same symbol.
func (a *Alphabet) SymbolOf(mass float64) (string, error) {
	for _, m := range a.monomers {
		if m.Mass == mass {
			return m.Symbol, nil
		}
	}
	return "", &LookupError{Mass: mass, ByMass: true}
}

// SumMass adds up the masses of symbols in order.
func (a *Alphabet) SumMass(symbols []string) (float64, error) {
	total := 0.0
	for _, s := range symbols {
		m, err := a.MassOf(s)
		if err != nil {
			return 0, err
		}
		total += m
	}
	return total, nil
}

// Validate checks that the alphabet can be searched.
func (a *Alphabet) Validate() error {
	if a == nil || len(a.monomers) == 0 {
		return &ConfigError{Field: "alphabet", Message: "alphabet is empty"}
	}

	var errs []string
	for _, m := range a.monomers {
		if m.Symbol == "" {
			errs = append(errs, "empty symbol")
		}
		if math.IsNaN(m.Mass) || math.IsInf(m.Mass, 0) || m.Mass <= 0 {
			errs = append(errs, fmt.Sprintf("symbol %q mass must be positive", m.Symbol))
		}
	}
	if len(errs) > 0 {
		return &ConfigError{Field: "alphabet", Message: strings.Join(errs, "; ")}
	}
	return nil
}

// Ambiguous returns groups of symbols sharing a mass. Only the first symbol
// of each group can ever be produced by SymbolOf.
func (a *Alphabet) Ambiguous() [][]string {
	var groups [][]string
	seen := make(map[float64]int)
	for _, m := range a.monomers {
		if g, ok := seen[m.Mass]; ok {
			groups[g] = append(groups[g], m.Symbol)
			continue
		}
		seen[m.Mass] = len(groups)
		groups = append(groups, []string{m.Symbol})
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g) > 1 {
			out = append(out, g)
		}
	}
	return out
}

// LoadAlphabetCSV reads an alphabet from CSV rows of symbol,mass. Row
// order is kept. A first row whose mass column is not a number is taken
// as a header and skipped; any other row is a monomer, so headerless files
// keep their first entry.
func LoadAlphabetCSV(r io.Reader) (*Alphabet, error) {
	a := NewAlphabet()
	scanner := bufio.NewScanner(r)

	lineNum := 0
	first := true
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		symbol, massStr, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("line %d: expected symbol,mass, got %q", lineNum, line)
		}
		symbol = strings.TrimSpace(symbol)
		// extra columns are ignored
		massStr, _, _ = strings.Cut(massStr, ",")
		massStr = strings.TrimSpace(massStr)

		mass, err := strconv.ParseFloat(massStr, 64)
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, fmt.Errorf("line %d: mass %q of %q is not a number: %w", lineNum, massStr, symbol, err)
		}
		first = false

		a.Add(symbol, mass)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading alphabet: %w", err)
	}

	return a, nil
}
