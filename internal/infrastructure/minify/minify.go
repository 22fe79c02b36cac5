package minify

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"

	"langjs/internal/ports/output"
)

var _ output.Minifier = (*Minifier)(nil)

// Minifier strips whitespace and comments from scripts.
type Minifier struct {
	m *minify.M
}

func New() *Minifier {
	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)
	return &Minifier{m: m}
}

func (mf *Minifier) Minify(mediaType string, src []byte) ([]byte, error) {
	out, err := mf.m.Bytes(mediaType, src)
	if err != nil {
		return nil, fmt.Errorf("minify %s: %w", mediaType, err)
	}
	return out, nil
}
