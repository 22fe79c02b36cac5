// Package loader decodes locale files into message trees.
package loader

import "langjs/internal/ports/output"

// Default returns the loaders for every supported locale file format.
func Default() []output.MessageLoader {
	return []output.MessageLoader{PHP{}, JSON{}, YAML{}, TOML{}}
}
