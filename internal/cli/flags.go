package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(allowed ...string) *enumValue {
	return &enumValue{allowed: allowed}
}

func (e *enumValue) String() string {
	return e.value
}

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range e.allowed {
		if s == a {
			e.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string {
	return strings.Join(e.allowed, "|")
}

// or returns the flag value, or fallback when the flag was not set.
func (e *enumValue) or(fallback string) string {
	if e.value != "" {
		return e.value
	}
	return fallback
}
