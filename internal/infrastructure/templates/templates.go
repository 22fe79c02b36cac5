package templates

import (
	"embed"
	"fmt"

	"langjs/internal/domain/entities"
	"langjs/internal/ports/output"
)

//go:embed assets/*
var assetsFS embed.FS

var _ output.TemplateSource = (*Embedded)(nil)

var files = map[entities.TemplateMode]string{
	entities.ModeLibrary:      "assets/langjs_with_messages.js",
	entities.ModeMessagesOnly: "assets/messages.js",
	entities.ModeJSON:         "assets/messages.json",
	entities.ModeWindowObject: "assets/messages_as_window_object.js",
}

const libraryFile = "assets/lang.js"

// Embedded serves the templates compiled into the binary.
type Embedded struct{}

func New() *Embedded {
	return &Embedded{}
}

func (e *Embedded) Template(mode entities.TemplateMode) (string, error) {
	name, ok := files[mode]
	if !ok {
		return "", fmt.Errorf("templates: no template for mode %s", mode)
	}
	return e.read(name)
}

// Library returns the runtime library embedded by the default template.
func (e *Embedded) Library() (string, error) {
	return e.read(libraryFile)
}

func (e *Embedded) read(name string) (string, error) {
	b, err := assetsFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("templates: %w", err)
	}
	return string(b), nil
}
