package application

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"langjs/internal/domain"
	"langjs/internal/domain/entities"
	"langjs/internal/ports/output"
	"langjs/internal/util/jsonutil"
)

// Placeholder tokens of the output templates.
const (
	MessagesToken = `'{ messages }'`
	LibraryToken  = `'{ langjs }';`
)

const mediaJS = "application/javascript"

// payloadIdent stands in for MessagesToken while a template is minified. A
// free global is never renamed or folded by the minifier.
const payloadIdent = "__langjs_messages__"

// Emitter renders a Tree through a template and writes it to disk.
type Emitter struct {
	fs        afero.Fs
	templates output.TemplateSource
	minifier  output.Minifier
	log       zerolog.Logger
}

func NewEmitter(fs afero.Fs, templates output.TemplateSource, minifier output.Minifier, log zerolog.Logger) *Emitter {
	return &Emitter{fs: fs, templates: templates, minifier: minifier, log: log}
}

// Emit writes messages to target, or to one file per locale when
// opts.GroupLocales is set. It returns the paths written.
func (e *Emitter) Emit(target string, messages *entities.Tree, opts entities.Options) ([]string, error) {
	if err := e.prepareTarget(target); err != nil {
		return nil, err
	}
	if !opts.GroupLocales {
		if err := e.write(target, messages, opts); err != nil {
			return nil, err
		}
		return []string{target}, nil
	}

	var written []string
	for _, g := range GroupByLocale(messages) {
		localeTarget := LocaleTarget(target, g.Locale)
		if err := e.write(localeTarget, g.Messages, opts); err != nil {
			return written, err
		}
		written = append(written, localeTarget)
	}
	return written, nil
}

func (e *Emitter) prepareTarget(target string) error {
	dir := filepath.Dir(target)
	ok, err := afero.DirExists(e.fs, dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w: %v", dir, domain.ErrWriteFailure, err)
	}
	if ok {
		return nil
	}
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w: %v", dir, domain.ErrWriteFailure, err)
	}
	return nil
}

func (e *Emitter) write(target string, messages *entities.Tree, opts entities.Options) error {
	out, err := e.Render(messages, opts)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(e.fs, target, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %v", target, domain.ErrWriteFailure, err)
	}
	e.log.Debug().Str("target", target).Int("bytes", len(out)).Msg("written")
	return nil
}

// Render produces the file content for messages without writing it.
func (e *Emitter) Render(messages *entities.Tree, opts entities.Options) ([]byte, error) {
	mode := opts.Mode()
	tpl, err := e.templates.Template(mode)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", mode, err)
	}
	if mode == entities.ModeLibrary {
		lib, err := e.templates.Library()
		if err != nil {
			return nil, fmt.Errorf("runtime library: %w", err)
		}
		tpl = strings.Replace(tpl, LibraryToken, lib, 1)
	}

	if opts.Compress {
		if tpl, err = e.compress(mode, tpl); err != nil {
			return nil, err
		}
	}

	payload, err := jsonutil.MarshalNoEscape(messages)
	if err != nil {
		return nil, fmt.Errorf("encode messages: %w", err)
	}
	return []byte(strings.Replace(tpl, MessagesToken, string(payload), 1)), nil
}

// compress minifies the template only. The JSON payload is already compact
// and is spliced in afterwards so numbers and booleans keep their spelling.
func (e *Emitter) compress(mode entities.TemplateMode, tpl string) (string, error) {
	if mode == entities.ModeJSON {
		return MessagesToken, nil
	}
	src := strings.Replace(tpl, MessagesToken, payloadIdent, 1)
	out, err := e.minifier.Minify(mediaJS, []byte(src))
	if err != nil {
		return "", fmt.Errorf("compress: %w", err)
	}
	if strings.Count(string(out), payloadIdent) != 1 {
		return "", fmt.Errorf("compress: messages placeholder lost in %s template", mode)
	}
	return strings.Replace(string(out), payloadIdent, MessagesToken, 1), nil
}

// LocaleGroup holds the top-level entries of one locale.
type LocaleGroup struct {
	Locale   string
	Messages *entities.Tree
}

// GroupByLocale partitions the top-level keys of messages by the text
// before their first dot, in order of first appearance. Keys are kept as is.
func GroupByLocale(messages *entities.Tree) []LocaleGroup {
	var groups []LocaleGroup
	index := make(map[string]int)
	for _, key := range messages.Keys() {
		locale, _, _ := strings.Cut(key, ".")
		i, ok := index[locale]
		if !ok {
			i = len(groups)
			index[locale] = i
			groups = append(groups, LocaleGroup{Locale: locale, Messages: entities.NewTree()})
		}
		v, _ := messages.Get(key)
		groups[i].Messages.Set(key, v)
	}
	return groups
}

// LocaleTarget inserts "-<locale>" before the extension of target's base
// name: messages.js becomes messages-en.js.
func LocaleTarget(target, locale string) string {
	dir, base := filepath.Split(target)
	ext := filepath.Ext(base)
	return dir + strings.TrimSuffix(base, ext) + "-" + locale + ext
}
