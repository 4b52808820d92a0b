package wizard

import "strings"

// Values maps a field name to the raw value the user entered.
type Values map[string]string

// Clone returns an independent copy. Nil stays nil.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Get returns the value for name and whether it was submitted at all.
func (v Values) Get(name string) (string, bool) {
	value, ok := v[name]
	return value, ok
}

// Blank reports whether name is missing or whitespace only.
func (v Values) Blank(name string) bool {
	value, ok := v[name]
	return !ok || strings.TrimSpace(value) == ""
}
