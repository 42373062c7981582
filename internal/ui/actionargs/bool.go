package actionargs

// BoolArg returns nil when the arg is absent or not a bool, so callers can
// tell an explicit false from a missing arg.
func BoolArg(args map[string]any, name string) *bool {
	raw, ok := args[name]
	if !ok {
		return nil
	}
	v, ok := raw.(bool)
	if !ok {
		return nil
	}
	return &v
}
