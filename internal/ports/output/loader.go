package output

// MessageLoader decodes one locale file format into a tree value
// (*entities.Tree, []any or a scalar).
type MessageLoader interface {
	// Extensions lists the file extensions handled, with the leading dot.
	Extensions() []string
	// StringsDomain reports whether files of this format hold flat
	// translation strings rather than a message group.
	StringsDomain() bool
	// Load decodes data read from the file called name. Errors wrap
	// domain.ErrInvalidInput or domain.ErrExecutionFailure.
	Load(name string, data []byte) (any, error)
}
