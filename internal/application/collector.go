package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"langjs/internal/domain"
	"langjs/internal/domain/entities"
	"langjs/internal/ports/output"
)

// Collector reads every locale file below a lang directory into one Tree.
type Collector struct {
	fs      afero.Fs
	filter  *Filter
	loaders map[string]output.MessageLoader
	log     zerolog.Logger
}

// NewCollector indexes loaders by extension; a later loader wins on a
// shared extension.
func NewCollector(fs afero.Fs, filter *Filter, loaders []output.MessageLoader, log zerolog.Logger) *Collector {
	byExt := make(map[string]output.MessageLoader)
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[strings.ToLower(ext)] = l
		}
	}
	return &Collector{fs: fs, filter: filter, loaders: byExt, log: log}
}

// Collect walks sourcePath and merges every recognized file under its
// derived key. Unless skipSort is set the result is sorted recursively.
func (c *Collector) Collect(ctx context.Context, sourcePath string, skipSort bool) (*entities.Tree, error) {
	ok, err := afero.DirExists(c.fs, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", sourcePath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", sourcePath, domain.ErrSourceNotFound)
	}

	messages := entities.NewTree()
	origins := make(map[string]string)

	err = afero.Walk(c.fs, sourcePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(sourcePath, path)
		if err != nil {
			return err
		}
		loader, ok := c.loaders[strings.ToLower(filepath.Ext(rel))]
		if !ok {
			return nil
		}
		if !c.filter.Includes(rel) {
			c.log.Debug().Str("file", rel).Msg("excluded by filter")
			return nil
		}

		key := MessageKey(rel, loader.StringsDomain())
		data, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		value, err := loader.Load(filepath.Base(path), data)
		if err != nil {
			return fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}

		if messages.Set(key, value) {
			c.log.Warn().
				Str("key", key).
				Str("previous", origins[key]).
				Str("file", rel).
				Msg("duplicate message key, keeping the last file")
		}
		origins[key] = rel
		c.log.Debug().Str("file", rel).Str("key", key).Msg("collected")
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !skipSort {
		messages.Sort()
	}
	return messages, nil
}
