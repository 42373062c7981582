package actionargs

// IntArg accepts the integer shapes produced by TOML and JSON decoding.
func IntArg(args map[string]any, name string, fallback int) int {
	raw, ok := args[name]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func StringArg(args map[string]any, name string, fallback string) string {
	raw, ok := args[name]
	if !ok {
		return fallback
	}
	v, ok := raw.(string)
	if !ok {
		return fallback
	}
	return v
}
