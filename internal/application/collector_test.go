package application

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langjs/internal/domain"
	"langjs/internal/infrastructure/loader"
)

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func newCollector(t *testing.T, fs afero.Fs, include []string) *Collector {
	t.Helper()
	filter, err := NewFilter(include)
	require.NoError(t, err)
	return NewCollector(fs, filter, loader.Default(), zerolog.Nop())
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return string(out)
}

var sampleLang = map[string]string{
	"/app/lang/en/validation.php":           `<?php return ['required' => 'The :attribute field is required.', 'accepted' => 'Accept :attribute.'];`,
	"/app/lang/en/auth.php":                 `<?php return ['failed' => 'These credentials do not match our records.'];`,
	"/app/lang/fr/auth.php":                 `<?php return ['failed' => 'Identifiants incorrects.'];`,
	"/app/lang/en.json":                     `{"Welcome": "Welcome"}`,
	"/app/lang/en/site.json":                `{"Home": "Home"}`,
	"/app/lang/vendor/acme/en/messages.php": `<?php return ['hello' => 'Hello from acme'];`,
	"/app/lang/en/forms.yaml":               "name: Name\n",
	"/app/lang/en/README.md":                "not a locale file",
	"/app/lang/.gitignore":                  "*",
}

func TestCollectSortsAndDerivesKeys(t *testing.T) {
	c := newCollector(t, memFS(t, sampleLang), nil)

	tree, err := c.Collect(context.Background(), "/app/lang", false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"en.acme::messages",
		"en.auth",
		"en.forms",
		"en.site.strings",
		"en.strings",
		"en.validation",
		"fr.auth",
	}, tree.Keys())

	validation, ok := tree.Get("en.validation")
	require.True(t, ok)
	assert.Equal(t,
		`{"accepted":"Accept :attribute.","required":"The :attribute field is required."}`,
		marshal(t, validation))
}

func TestCollectNoSortKeepsWalkAndFileOrder(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/lang/fr/b.php": `<?php return ['z' => 'Z', 'a' => 'A'];`,
		"/lang/en/a.php": `<?php return ['y' => 'Y', 'b' => 'B'];`,
	})
	c := newCollector(t, fs, nil)

	tree, err := c.Collect(context.Background(), "/lang", true)
	require.NoError(t, err)
	assert.Equal(t, `{"en.a":{"y":"Y","b":"B"},"fr.b":{"z":"Z","a":"A"}}`, marshal(t, tree))
}

func TestCollectInclusionFilter(t *testing.T) {
	c := newCollector(t, memFS(t, sampleLang), []string{"validation"})

	tree, err := c.Collect(context.Background(), "/app/lang", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"en.validation"}, tree.Keys())
}

func TestCollectInclusionFilterAppliesToEveryLocale(t *testing.T) {
	c := newCollector(t, memFS(t, sampleLang), []string{"auth", "site"})

	tree, err := c.Collect(context.Background(), "/app/lang", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"en.auth", "en.site.strings", "fr.auth"}, tree.Keys())
}

func TestCollectMissingSource(t *testing.T) {
	c := newCollector(t, afero.NewMemMapFs(), nil)

	_, err := c.Collect(context.Background(), "/nope", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	assert.Equal(t, "source_not_found", domain.Code(err))
}

func TestCollectSourceIsAFile(t *testing.T) {
	fs := memFS(t, map[string]string{"/lang": "file"})
	c := newCollector(t, fs, nil)

	_, err := c.Collect(context.Background(), "/lang", false)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestCollectInvalidJSONAborts(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/lang/en/auth.php": `<?php return ['a' => 'b'];`,
		"/lang/en/site.json": `{"broken": }`,
	})
	c := newCollector(t, fs, nil)

	tree, err := c.Collect(context.Background(), "/lang", false)
	require.Error(t, err)
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "site.json")
}

func TestCollectPHPFailureAborts(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/lang/en/auth.php": `<?php return ['a' => env('X')];`,
	})
	c := newCollector(t, fs, nil)

	_, err := c.Collect(context.Background(), "/lang", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExecutionFailure)
	assert.Contains(t, err.Error(), "auth.php")
}

func TestCollectDuplicateKeyLastWriteWins(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/lang/en/auth.php":  `<?php return ['from' => 'php'];`,
		"/lang/en/auth.yaml": "from: yaml\n",
	})
	var logs bytes.Buffer
	filter, err := NewFilter(nil)
	require.NoError(t, err)
	c := NewCollector(fs, filter, loader.Default(), zerolog.New(&logs))

	tree, err := c.Collect(context.Background(), "/lang", false)
	require.NoError(t, err)
	assert.Equal(t, `{"en.auth":{"from":"yaml"}}`, marshal(t, tree))
	assert.Contains(t, logs.String(), "duplicate message key")
	assert.Contains(t, logs.String(), "en/auth.php")
}

func TestCollectHonorsCancellation(t *testing.T) {
	c := newCollector(t, memFS(t, sampleLang), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Collect(ctx, "/app/lang", false)
	assert.ErrorIs(t, err, context.Canceled)
}
