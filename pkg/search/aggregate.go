package search

import "github.com/ChrisMcGann/pepcomb/pkg/table"

// Result column names
const (
	ColSequence  = "sequence"
	ColMass      = "mass"
	ColVariantID = "variant_id"
	ColWeight    = "weight"
)

// MatchSet maps sequences to masses in first-seen order. Storing a
// sequence again replaces its mass but keeps its position, so distinct
// combinations spelling the same sequence collapse into one entry.
type MatchSet struct {
	order  []string
	masses map[string]float64
}

// NewMatchSet creates an empty MatchSet.
func NewMatchSet() *MatchSet {
	return &MatchSet{masses: make(map[string]float64)}
}

// Put stores mass for sequence.
func (m *MatchSet) Put(sequence string, mass float64) {
	if _, ok := m.masses[sequence]; !ok {
		m.order = append(m.order, sequence)
	}
	m.masses[sequence] = mass
}

// Len returns the number of distinct sequences.
func (m *MatchSet) Len() int {
	return len(m.order)
}

// Mass returns the stored mass of sequence.
func (m *MatchSet) Mass(sequence string) (float64, bool) {
	mass, ok := m.masses[sequence]
	return mass, ok
}

// Sequences returns the sequences in order.
func (m *MatchSet) Sequences() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Table returns the matches with columns sequence and mass.
func (m *MatchSet) Table() *table.Table {
	t := table.New(ColSequence, ColMass)
	for _, seq := range m.order {
		t.Append(seq, m.masses[seq])
	}
	return t
}

// Variant is one combination accepted by the tolerance band together with
// its fragments.
type Variant struct {
	ID          int
	Combination []string
	Mass        float64 // summed mass of the whole combination
	Fragments   []Fragment
}

// addFragment appends f, or replaces the weight of an earlier fragment
// spelling the same sequence.
func (v *Variant) addFragment(f Fragment) {
	for i := range v.Fragments {
		if v.Fragments[i].Sequence == f.Sequence {
			v.Fragments[i].Weight = f.Weight
			return
		}
	}
	v.Fragments = append(v.Fragments, f)
}

// VariantSet is the de novo result in enumeration order.
type VariantSet struct {
	Variants []*Variant
}

// Len returns the number of variants.
func (vs *VariantSet) Len() int {
	return len(vs.Variants)
}

// Rows returns the number of (variant, fragment) pairs.
func (vs *VariantSet) Rows() int {
	n := 0
	for _, v := range vs.Variants {
		n += len(v.Fragments)
	}
	return n
}

// Table flattens the variants into columns variant_id, sequence and weight,
// one row per fragment.
func (vs *VariantSet) Table() *table.Table {
	t := table.New(ColVariantID, ColSequence, ColWeight)
	for _, v := range vs.Variants {
		for _, f := range v.Fragments {
			t.Append(v.ID, f.Sequence, f.Weight)
		}
	}
	return t
}
