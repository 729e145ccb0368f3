package core

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("configuration error")

	// ErrLookup is matched by every *LookupError.
	ErrLookup = errors.New("lookup error")
)

// ConfigError reports a parameter that makes a search impossible to run.
// It is raised before enumeration begins.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// LookupError reports a symbol or mass that is not in the alphabet.
type LookupError struct {
	Symbol string
	Mass   float64
	ByMass bool // true when the lookup was mass -> symbol
}

func (e *LookupError) Error() string {
	if e.ByMass {
		return "no symbol with mass " + strconv.FormatFloat(e.Mass, 'f', -1, 64)
	}
	return fmt.Sprintf("unknown symbol %q", e.Symbol)
}

func (e *LookupError) Unwrap() error { return ErrLookup }
