package output

// Minifier compresses rendered output of the given media type.
type Minifier interface {
	Minify(mediaType string, src []byte) ([]byte, error)
}
