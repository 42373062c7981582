package config

import (
	"slices"
	"strings"
)

// mergeBindings appends the user bindings to the defaults. A user binding
// hides the defaults of its scope that it collides with: a seq hides the same
// seq, keys hide the same keys, and a default left without keys is dropped.
func mergeBindings(base []BindingConfig, overlay []BindingConfig) []BindingConfig {
	merged := slices.Clone(base)
	for _, user := range overlay {
		if shadows(user) {
			merged = unshadowed(merged, user)
		}
		merged = append(merged, user)
	}
	return merged
}

// shadows is false for bindings validation will reject anyway.
func shadows(user BindingConfig) bool {
	return strings.TrimSpace(user.Scope) != "" && (len(user.Key) > 0) != (len(user.Seq) > 0)
}

func unshadowed(existing []BindingConfig, user BindingConfig) []BindingConfig {
	scope := strings.TrimSpace(user.Scope)
	out := make([]BindingConfig, 0, len(existing))
	for _, b := range existing {
		if strings.TrimSpace(b.Scope) != scope {
			out = append(out, b)
			continue
		}
		if len(user.Seq) > 0 {
			if !slices.Equal(b.Seq, user.Seq) {
				out = append(out, b)
			}
			continue
		}
		if len(b.Key) > 0 {
			b.Key = slices.DeleteFunc(slices.Clone(b.Key), func(k string) bool {
				return slices.Contains(user.Key, k)
			})
			if len(b.Key) == 0 {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}
