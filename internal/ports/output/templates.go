package output

import "langjs/internal/domain/entities"

// TemplateSource provides the output templates and the runtime library.
type TemplateSource interface {
	Template(mode entities.TemplateMode) (string, error)
	Library() (string, error)
}
