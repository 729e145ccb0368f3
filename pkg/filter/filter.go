// Package filter provides the mass predicates applied to combinations
package filter

import (
	"fmt"
	"math"

	"github.com/ChrisMcGann/pepcomb/pkg/core"
)

// Predicate decides whether a combination with the given summed mass is kept.
type Predicate interface {
	Keep(sum float64) bool
}

// Bounded keeps combinations whose summed mass is at most Bound.
type Bounded struct {
	Bound float64
}

// NewBounded returns a Bounded filter. The bound must be positive.
func NewBounded(bound float64) (Bounded, error) {
	if !isFinite(bound) || bound <= 0 {
		return Bounded{}, &core.ConfigError{
			Field:   "bound",
			Message: fmt.Sprintf("mass bound must be positive, got %v", bound),
		}
	}
	return Bounded{Bound: bound}, nil
}

// Keep implements Predicate.
func (b Bounded) Keep(sum float64) bool {
	return sum <= b.Bound
}

func (b Bounded) String() string {
	return fmt.Sprintf("mass <= %v", b.Bound)
}

// Banded keeps combinations whose summed mass lies in [Lo, Hi].
type Banded struct {
	Lo, Hi float64
}

// NewBanded returns the tolerance band target-tolerance .. target+tolerance.
// A negative tolerance is rejected rather than inverted.
func NewBanded(target, tolerance float64) (Banded, error) {
	if !isFinite(target) || target <= 0 {
		return Banded{}, &core.ConfigError{
			Field:   "target",
			Message: fmt.Sprintf("target mass must be positive, got %v", target),
		}
	}
	if !isFinite(tolerance) || tolerance < 0 {
		return Banded{}, &core.ConfigError{
			Field:   "tolerance",
			Message: fmt.Sprintf("tolerance must be non-negative, got %v", tolerance),
		}
	}
	return Banded{Lo: target - tolerance, Hi: target + tolerance}, nil
}

// Keep implements Predicate.
func (b Banded) Keep(sum float64) bool {
	return b.Lo <= sum && sum <= b.Hi
}

func (b Banded) String() string {
	return fmt.Sprintf("%v <= mass <= %v", b.Lo, b.Hi)
}

// Sum adds masses in order with plain floating point addition.
func Sum(masses []float64) float64 {
	total := 0.0
	for _, m := range masses {
		total += m
	}
	return total
}

// SumAt adds the masses at the given positions in order.
func SumAt(masses []float64, positions []int) float64 {
	total := 0.0
	for _, p := range positions {
		total += masses[p]
	}
	return total
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
