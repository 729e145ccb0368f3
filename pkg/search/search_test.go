package search

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ChrisMcGann/pepcomb/pkg/core"
	"github.com/ChrisMcGann/pepcomb/pkg/table"
)

func abcAlphabet() *core.Alphabet {
	return core.NewAlphabet(
		core.Monomer{Symbol: "A", Mass: 1.0},
		core.Monomer{Symbol: "B", Mass: 2.0},
		core.Monomer{Symbol: "C", Mass: 3.0},
	)
}

// demoItems is AVFPSJVGRPR with its residue masses.
func demoItems(t *testing.T, alpha *core.Alphabet, sequence string) []core.Monomer {
	t.Helper()
	items := make([]core.Monomer, 0, len(sequence))
	for _, r := range sequence {
		m, err := alpha.MassOf(string(r))
		if err != nil {
			t.Fatalf("MassOf(%q) error = %v", r, err)
		}
		items = append(items, core.Monomer{Symbol: string(r), Mass: m})
	}
	return items
}

func rows(t *table.Table) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = table.FormatValue(v)
		}
		out[i] = strings.Join(cells, ":")
	}
	return out
}

func TestBySequenceCompleteness(t *testing.T) {
	alpha := abcAlphabet()
	items := alpha.Monomers()

	got, err := BySequence(items, alpha, "ABC", 6.0)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}

	want := []string{"ABC:6", "AB:3", "BC:5", "A:1", "B:2", "C:3"}
	if !reflect.DeepEqual(rows(got), want) {
		t.Errorf("BySequence() rows = %v, want %v", rows(got), want)
	}
	if !reflect.DeepEqual(got.Columns, []string{ColSequence, ColMass}) {
		t.Errorf("Columns = %v", got.Columns)
	}
}

func TestBySequenceBound(t *testing.T) {
	alpha := abcAlphabet()

	got, err := BySequence(alpha.Monomers(), alpha, "ABC", 3.0)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}

	want := []string{"AB:3", "A:1", "B:2", "C:3"}
	if !reflect.DeepEqual(rows(got), want) {
		t.Errorf("BySequence() rows = %v, want %v", rows(got), want)
	}
}

func TestBySequenceDuplicateSequences(t *testing.T) {
	alpha := abcAlphabet()
	items := []core.Monomer{{Symbol: "A", Mass: 1.0}, {Symbol: "B", Mass: 2.0}, {Symbol: "A", Mass: 1.0}}

	got, err := BySequence(items, alpha, "ABA", 10)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}

	// A is produced twice, B once; the later A keeps the first position
	want := []string{"ABA:4", "AB:3", "BA:3", "A:1", "B:2"}
	if !reflect.DeepEqual(rows(got), want) {
		t.Errorf("BySequence() rows = %v, want %v", rows(got), want)
	}
}

func TestBySequenceAmbiguousMass(t *testing.T) {
	alpha := core.NewAlphabet(
		core.Monomer{Symbol: "K", Mass: 128.09496},
		core.Monomer{Symbol: "X", Mass: 128.09496},
		core.Monomer{Symbol: "G", Mass: 57.02146},
	)
	items := []core.Monomer{{Symbol: "X", Mass: 128.09496}, {Symbol: "G", Mass: 57.02146}}

	got, err := BySequence(items, alpha, "XG", 1000)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}

	// X resolves to K, so only G is a substring of XG
	want := []string{"G:57.02146"}
	if !reflect.DeepEqual(rows(got), want) {
		t.Errorf("BySequence() rows = %v, want %v", rows(got), want)
	}
}

func TestBySequenceLookupErrorAborts(t *testing.T) {
	alpha := abcAlphabet()
	items := []core.Monomer{{Symbol: "A", Mass: 1.0}, {Symbol: "Z", Mass: 9.5}}

	got, err := BySequence(items, alpha, "AZ", 100)
	if err == nil {
		t.Fatalf("BySequence() = %v, want lookup error", rows(got))
	}
	if got != nil {
		t.Errorf("BySequence() returned a table alongside error")
	}

	var lookupErr *core.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("error = %v, want *core.LookupError", err)
	}
	if lookupErr.Mass != 9.5 {
		t.Errorf("LookupError.Mass = %v, want 9.5", lookupErr.Mass)
	}
}

func TestBySequenceUnresolvableButFiltered(t *testing.T) {
	alpha := abcAlphabet()
	items := []core.Monomer{{Symbol: "A", Mass: 1.0}, {Symbol: "Z", Mass: 9.5}}

	// Z never passes the bound, so it is never resolved
	got, err := BySequence(items, alpha, "AZ", 2.0)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}
	if want := []string{"A:1"}; !reflect.DeepEqual(rows(got), want) {
		t.Errorf("BySequence() rows = %v, want %v", rows(got), want)
	}
}

func TestBySequenceConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		alpha *core.Alphabet
		bound float64
	}{
		{"empty alphabet", core.NewAlphabet(), 6},
		{"zero bound", abcAlphabet(), 0},
		{"negative bound", abcAlphabet(), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BySequence(abcAlphabet().Monomers(), tt.alpha, "ABC", tt.bound)
			if !errors.Is(err, core.ErrConfig) {
				t.Errorf("BySequence() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestBySequenceEmptyResult(t *testing.T) {
	alpha := abcAlphabet()

	got, err := BySequence(alpha.Monomers(), alpha, "XYZ", 6.0)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("BySequence() returned %d rows, want 0", got.Len())
	}
	if len(got.Columns) != 2 {
		t.Errorf("empty table lost its columns: %v", got.Columns)
	}

	got, err = BySequence(nil, alpha, "ABC", 6.0)
	if err != nil {
		t.Fatalf("BySequence(no items) error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("BySequence(no items) returned %d rows", got.Len())
	}
}

func TestBySequenceDemoInvariants(t *testing.T) {
	const (
		reference = "AVFPSJVGRPR"
		bound     = 1179.68761
	)
	alpha := core.StandardAlphabet()
	items := demoItems(t, alpha, reference)

	got, err := BySequence(items, alpha, reference, bound)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}
	if got.Len() == 0 {
		t.Fatal("BySequence() found nothing")
	}

	seqs := got.Strings(ColSequence)
	masses := got.Floats(ColMass)
	for i, seq := range seqs {
		if !strings.Contains(reference, seq) {
			t.Errorf("%q is not a substring of %q", seq, reference)
		}
		if masses[i] > bound {
			t.Errorf("%q mass %v exceeds bound", seq, masses[i])
		}

		symbols := strings.Split(seq, "")
		sum, err := alpha.SumMass(symbols)
		if err != nil {
			t.Fatalf("SumMass(%q) error = %v", seq, err)
		}
		if want := core.RoundFloat(sum, core.MassPrecision); masses[i] != want {
			t.Errorf("%q mass = %v, want %v", seq, masses[i], want)
		}
	}

	// the whole sequence sums to 1179.68763 and misses the bound
	if got.Len() != 62 {
		t.Errorf("BySequence() returned %d rows, want 62", got.Len())
	}
	if seqs[0] != "AVFPSJVGRP" || masses[0] != 1023.58652 {
		t.Errorf("first row = %s:%v, want AVFPSJVGRP:1023.58652", seqs[0], masses[0])
	}
	for _, seq := range seqs {
		if seq == reference {
			t.Errorf("full reference should exceed the bound")
		}
	}
}

func TestByMassToleranceBand(t *testing.T) {
	got, err := ByMass(abcAlphabet(), 3.0, 0.0)
	if err != nil {
		t.Fatalf("ByMass() error = %v", err)
	}

	want := []string{"0:A:1", "0:AB:3", "0:B:2", "1:C:3"}
	if !reflect.DeepEqual(rows(got), want) {
		t.Errorf("ByMass() rows = %v, want %v", rows(got), want)
	}
	if !reflect.DeepEqual(got.Columns, []string{ColVariantID, ColSequence, ColWeight}) {
		t.Errorf("Columns = %v", got.Columns)
	}
}

func TestByMassConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		alpha     *core.Alphabet
		target    float64
		tolerance float64
	}{
		{"negative tolerance", abcAlphabet(), 3.0, -0.5},
		{"empty alphabet", core.NewAlphabet(), 3.0, 0.1},
		{"zero target", abcAlphabet(), 0, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ByMass(tt.alpha, tt.target, tt.tolerance)
			var cfgErr *core.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("ByMass() error = %v, want *core.ConfigError", err)
			}
		})
	}
}

func TestByMassEmptyResult(t *testing.T) {
	got, err := ByMass(abcAlphabet(), 100.0, 0.5)
	if err != nil {
		t.Fatalf("ByMass() error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("ByMass() returned %d rows, want 0", got.Len())
	}
}

func TestVariantsBandInvariant(t *testing.T) {
	const (
		target    = 850.4528
		tolerance = 0.01
	)
	alpha := core.StandardAlphabet()

	variants, err := New(Options{MaxSize: 9}).Variants(alpha, target, tolerance)
	if err != nil {
		t.Fatalf("Variants() error = %v", err)
	}

	if variants.Len() != 19 {
		t.Errorf("Variants() found %d variants, want 19", variants.Len())
	}
	if variants.Len() > 0 && Join(variants.Variants[0].Combination) != "ANGHJKMV" {
		t.Errorf("first variant = %v, want ANGHJKMV", variants.Variants[0].Combination)
	}

	for i, v := range variants.Variants {
		if v.ID != i {
			t.Errorf("variant %d has ID %d", i, v.ID)
		}
		if v.Mass < target-tolerance || v.Mass > target+tolerance {
			t.Errorf("variant %d mass %v outside band", v.ID, v.Mass)
		}

		k := len(v.Combination)
		if len(v.Fragments) != k*(k+1)/2 {
			t.Errorf("variant %d has %d fragments, want %d", v.ID, len(v.Fragments), k*(k+1)/2)
		}

		whole := v.Fragments[k-1]
		if whole.Sequence != Join(v.Combination) || whole.Weight != v.Mass {
			t.Errorf("variant %d full fragment = %+v, want %s at %v", v.ID, whole, Join(v.Combination), v.Mass)
		}
	}
}

func TestWorkersMatchSequential(t *testing.T) {
	alpha := core.StandardAlphabet()
	reference := "AVFPSJVGRPR"
	items := demoItems(t, alpha, reference)

	seq := New(Options{})
	par := New(Options{Workers: 4})

	a, err := seq.BySequence(items, alpha, reference, 600)
	if err != nil {
		t.Fatalf("sequential BySequence() error = %v", err)
	}
	b, err := par.BySequence(items, alpha, reference, 600)
	if err != nil {
		t.Fatalf("parallel BySequence() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parallel sequence search differs:\n%v\n%v", rows(a), rows(b))
	}

	c, err := seq.ByMass(alpha, 500, 0.5)
	if err != nil {
		t.Fatalf("sequential ByMass() error = %v", err)
	}
	d, err := par.ByMass(alpha, 500, 0.5)
	if err != nil {
		t.Fatalf("parallel ByMass() error = %v", err)
	}
	if !reflect.DeepEqual(c, d) {
		t.Errorf("parallel mass search differs: %d vs %d rows", c.Len(), d.Len())
	}
}

func TestWorkersLookupError(t *testing.T) {
	alpha := abcAlphabet()
	items := []core.Monomer{{Symbol: "A", Mass: 1.0}, {Symbol: "Z", Mass: 9.5}, {Symbol: "B", Mass: 2.0}}

	_, err := New(Options{Workers: 3}).BySequence(items, alpha, "AZB", 100)
	if !errors.Is(err, core.ErrLookup) {
		t.Errorf("BySequence() error = %v, want ErrLookup", err)
	}
}

func TestIdempotence(t *testing.T) {
	alpha := core.StandardAlphabet()

	first, err := ByMass(alpha, 300, 0.05)
	if err != nil {
		t.Fatalf("ByMass() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := ByMass(alpha, 300, 0.05)
		if err != nil {
			t.Fatalf("ByMass() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestMaxSize(t *testing.T) {
	alpha := abcAlphabet()

	got, err := New(Options{MaxSize: 1}).BySequence(alpha.Monomers(), alpha, "ABC", 6)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}
	if want := []string{"A:1", "B:2", "C:3"}; !reflect.DeepEqual(rows(got), want) {
		t.Errorf("rows = %v, want %v", rows(got), want)
	}
}

func TestMassConservationRounding(t *testing.T) {
	alpha := core.NewAlphabet(
		core.Monomer{Symbol: "A", Mass: 0.1},
		core.Monomer{Symbol: "B", Mass: 0.2},
	)

	got, err := BySequence(alpha.Monomers(), alpha, "AB", 1)
	if err != nil {
		t.Fatalf("BySequence() error = %v", err)
	}
	mass, _ := got.Rows[0][1].(float64)
	if mass != 0.3 {
		t.Errorf("AB mass = %v, want 0.3 after rounding", mass)
	}
}
