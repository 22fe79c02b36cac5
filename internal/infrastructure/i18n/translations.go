package i18n

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"langjs/internal/ports/output"
)

//go:embed active.*.toml
var catalogFS embed.FS

var _ output.T = (*Translator)(nil)

// Translator serves the command's own messages (created, failed, error
// texts) from the active.<locale>.toml catalogs embedded in the binary.
type Translator struct {
	bundle   *i18n.Bundle
	fallback language.Tag
	locales  []string
	log      zerolog.Logger

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

// NewTranslator loads every embedded catalog. fallback is used when a
// message is missing in the requested locale; English replaces a fallback
// that has no catalog.
func NewTranslator(fallback string, log zerolog.Logger) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, _ := fs.Glob(catalogFS, "active.*.toml")
	var locales []string
	for _, file := range files {
		mf, err := bundle.LoadMessageFileFS(catalogFS, file)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("i18n: catalog skipped")
			continue
		}
		locales = append(locales, mf.Tag.String())
	}
	sort.Strings(locales)

	t := &Translator{
		bundle:     bundle,
		fallback:   language.English,
		locales:    locales,
		log:        log,
		localizers: make(map[string]*i18n.Localizer),
	}
	// catalogs are per base language
	if tag, err := language.Parse(normalizeLocale(fallback)); err == nil && t.Supports(tag.String()) {
		base, _ := tag.Base()
		t.fallback = language.Make(base.String())
	}
	return t
}

// Locales lists the locales that have an embedded catalog.
func (t *Translator) Locales() []string {
	return append([]string(nil), t.locales...)
}

// Supports reports whether locale, or its base language, has a catalog.
func (t *Translator) Supports(locale string) bool {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, l := range t.locales {
		if l == tag.String() || l == base.String() {
			return true
		}
	}
	return false
}

// T renders key in locale, then in the fallback locale. The key itself is
// returned when neither has it.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.log.Debug().Err(err).Str("key", key).Str("locale", locale).Msg("i18n: localize failed")
		return key
	}
	return msg
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	locale = normalizeLocale(locale)

	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.localizers[locale]; ok {
		return l
	}
	var prefs []string
	if locale != "" {
		prefs = append(prefs, locale)
	}
	prefs = append(prefs, t.fallback.String())
	l := i18n.NewLocalizer(t.bundle, prefs...)
	t.localizers[locale] = l
	return l
}

// normalizeLocale accepts POSIX spellings such as "fr_FR.UTF-8".
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}
