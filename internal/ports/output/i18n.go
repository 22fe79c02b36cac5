package output

// T looks up the command's user-facing messages.
type T interface {
	// T renders key for locale with data as template values (data may be
	// nil). Unknown keys come back unchanged.
	T(locale, key string, data map[string]any) string
}
