package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of choices.
// Values are matched case-insensitively and stored in lower case.
type enumValue struct {
	value   *string
	choices []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, p *string, choices ...string) *enumValue {
	*p = def
	return &enumValue{value: p, choices: choices}
}

func (e *enumValue) String() string { return *e.value }

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(e.choices, s) {
		return fmt.Errorf("must be one of %s", strings.Join(e.choices, ", "))
	}
	*e.value = s
	return nil
}

func (e *enumValue) Type() string { return "string" }

// enumFlag registers an enumValue on flags.
func enumFlag(flags *pflag.FlagSet, p *string, name, shorthand, def, usage string, choices ...string) {
	flags.VarP(newEnumValue(def, p, choices...), name, shorthand, usage)
}
