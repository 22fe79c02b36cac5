package input

import (
	"context"

	"langjs/internal/domain/entities"
)

type GeneratorUseCase interface {
	Generate(ctx context.Context, target string, opts entities.Options) error
	// GenerateFiles is Generate returning the paths written, including
	// those written before a failure.
	GenerateFiles(ctx context.Context, target string, opts entities.Options) ([]string, error)
}
