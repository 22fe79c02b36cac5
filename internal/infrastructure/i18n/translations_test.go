package i18n

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTranslator(t *testing.T) {
	tr := NewTranslator("en", zerolog.Nop())
	data := map[string]any{"Target": "public/messages.js"}

	assert.Equal(t, "Created: public/messages.js", tr.T("", "generate_created", data))
	assert.Equal(t, "Créé : public/messages.js", tr.T("fr", "generate_created", data))
	assert.Equal(t, "Created: public/messages.js", tr.T("de", "generate_created", data))
	assert.Equal(t, "missing_key", tr.T("en", "missing_key", nil))
	assert.Equal(t, "", tr.T("en", "", nil))
}

func TestTranslatorInvalidDefaultLocale(t *testing.T) {
	tr := NewTranslator("not a locale!", zerolog.Nop())
	assert.Equal(t, "Could not create: x.js", tr.T("", "generate_failed", map[string]any{"Target": "x.js"}))
}

func TestTranslatorDiscoversCatalogs(t *testing.T) {
	tr := NewTranslator("en", zerolog.Nop())

	assert.Equal(t, []string{"en", "fr"}, tr.Locales())
	assert.True(t, tr.Supports("fr"))
	assert.True(t, tr.Supports("fr_CA"))
	assert.False(t, tr.Supports("de"))
	assert.False(t, tr.Supports("??"))
}

func TestTranslatorPOSIXLocale(t *testing.T) {
	tr := NewTranslator("fr_FR.UTF-8", zerolog.Nop())
	data := map[string]any{"Target": "m.js"}

	assert.Equal(t, "Créé : m.js", tr.T("", "generate_created", data))
	assert.Equal(t, "Créé : m.js", tr.T("fr_FR", "generate_created", data))
	assert.Equal(t, "Created: m.js", tr.T("en_US.UTF-8", "generate_created", data))
}

func TestTranslatorFallbackWithoutCatalog(t *testing.T) {
	tr := NewTranslator("de", zerolog.Nop())
	assert.Equal(t, "Created: m.js", tr.T("de", "generate_created", map[string]any{"Target": "m.js"}))
}
