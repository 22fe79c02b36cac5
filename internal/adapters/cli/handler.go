package cli

import (
	"context"
	"fmt"
	"io"

	"langjs/internal/domain/entities"
	"langjs/internal/ports/input"
	"langjs/internal/ports/output"
)

// Handler runs the generate use case and reports the outcome to the user.
type Handler struct {
	generator input.GeneratorUseCase
	tr        output.T
	locale    string
	stdout    io.Writer
	stderr    io.Writer
}

// NewHandler creates a Handler.
func NewHandler(generator input.GeneratorUseCase, tr output.T, locale string, stdout, stderr io.Writer) *Handler {
	return &Handler{
		generator: generator,
		tr:        tr,
		locale:    locale,
		stdout:    stdout,
		stderr:    stderr,
	}
}

// Generate writes one "created" line per file, then the localized error if
// the run failed. source is the lang directory quoted by a not-found error.
func (h *Handler) Generate(ctx context.Context, target, source string, opts entities.Options) error {
	written, err := h.generator.GenerateFiles(ctx, target, opts)
	for _, path := range written {
		fmt.Fprintln(h.stdout, h.tr.T(h.locale, "generate_created", map[string]any{"Target": path}))
	}
	if err != nil {
		fmt.Fprintln(h.stderr, h.tr.T(h.locale, "generate_failed", map[string]any{"Target": target}))
		fmt.Fprintln(h.stderr, ErrorMessage(h.tr, h.locale, err, source))
		return err
	}
	return nil
}
