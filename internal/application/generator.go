package application

import (
	"context"

	"github.com/rs/zerolog"

	"langjs/internal/domain/entities"
	"langjs/internal/ports/input"
)

var _ input.GeneratorUseCase = (*Generator)(nil)

type Generator struct {
	collector  *Collector
	emitter    *Emitter
	sourcePath string
	log        zerolog.Logger
}

func NewGenerator(collector *Collector, emitter *Emitter, sourcePath string, log zerolog.Logger) *Generator {
	return &Generator{
		collector:  collector,
		emitter:    emitter,
		sourcePath: sourcePath,
		log:        log,
	}
}

// Generate collects the messages below the lang path (or opts.Source) and
// writes them to target.
func (g *Generator) Generate(ctx context.Context, target string, opts entities.Options) error {
	_, err := g.GenerateFiles(ctx, target, opts)
	return err
}

// GenerateFiles is Generate returning the paths it wrote. On error the
// paths written before the failure are still returned.
func (g *Generator) GenerateFiles(ctx context.Context, target string, opts entities.Options) ([]string, error) {
	source := g.sourcePath
	if opts.Source != "" {
		source = opts.Source
	}

	messages, err := g.collector.Collect(ctx, source, opts.NoSort)
	if err != nil {
		return nil, err
	}
	g.log.Debug().Str("source", source).Int("entries", messages.Len()).Msg("messages collected")

	written, err := g.emitter.Emit(target, messages, opts)
	for _, path := range written {
		g.log.Debug().Str("target", path).Str("mode", opts.Mode().String()).Msg("created")
	}
	return written, err
}
