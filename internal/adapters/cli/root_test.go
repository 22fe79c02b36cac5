package cli

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langjs/internal/domain"
	"langjs/internal/infrastructure/i18n"
)

func setEnv(t *testing.T, locale string) {
	t.Helper()
	t.Setenv("LANGJS_LANG_PATH", "/app/lang")
	t.Setenv("LANGJS_MESSAGES", "")
	t.Setenv("LANGJS_LOCALE", locale)
}

func langFS(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/lang/en/auth.php", []byte(`<?php return ['failed' => 'Nope'];`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/app/lang/fr/auth.php", []byte(`<?php return ['failed' => 'Non'];`), 0o644))
	return fs
}

func execute(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(fs, &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootWritesJSON(t *testing.T) {
	setEnv(t, "en")
	fs := langFS(t)

	stdout, stderr, err := execute(t, fs, "--json", "/app/public/messages.json")
	require.NoError(t, err)
	assert.Equal(t, "Created: /app/public/messages.json\n", stdout)
	assert.Empty(t, stderr, "each file is reported once, on stdout")

	out, err := afero.ReadFile(fs, "/app/public/messages.json")
	require.NoError(t, err)
	assert.Equal(t, `{"en.auth":{"failed":"Nope"},"fr.auth":{"failed":"Non"}}`+"\n", string(out))
}

func TestRootGroupLocalesLocalized(t *testing.T) {
	setEnv(t, "fr")
	fs := langFS(t)

	stdout, _, err := execute(t, fs, "--group-locales", "-j", "/out/m.js")
	require.NoError(t, err)
	assert.Equal(t, "Créé : /out/m-en.js\nCréé : /out/m-fr.js\n", stdout)
}

func TestRootSourceFlag(t *testing.T) {
	setEnv(t, "en")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/elsewhere/de/auth.json", []byte(`{"x": "y"}`), 0o644))

	_, _, err := execute(t, fs, "-s", "/elsewhere", "--no-lib", "/out/messages.js")
	require.NoError(t, err)

	out, err := afero.ReadFile(fs, "/out/messages.js")
	require.NoError(t, err)
	assert.Contains(t, string(out), `return {"de.auth.strings":{"x":"y"}};`)
}

func TestRootDefaultTemplateBundlesRuntime(t *testing.T) {
	setEnv(t, "en")
	fs := langFS(t)

	_, _, err := execute(t, fs, "/out/messages.js")
	require.NoError(t, err)

	out, err := afero.ReadFile(fs, "/out/messages.js")
	require.NoError(t, err)
	assert.Contains(t, string(out), "var Lang = ")
	assert.Contains(t, string(out), `lang.setMessages({"en.auth":{"failed":"Nope"},"fr.auth":{"failed":"Non"}});`)
}

func TestRootVerboseLogsToStderr(t *testing.T) {
	setEnv(t, "en")

	stdout, stderr, err := execute(t, langFS(t), "-v", "-j", "/out/messages.json")
	require.NoError(t, err)
	assert.Equal(t, "Created: /out/messages.json\n", stdout)
	assert.Contains(t, stderr, "created")
	assert.Contains(t, stderr, "target=/out/messages.json")
}

func TestRootMissingSource(t *testing.T) {
	setEnv(t, "en")

	stdout, stderr, err := execute(t, afero.NewMemMapFs(), "-s", "/nope", "/out/messages.js")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Could not create: /out/messages.js")
	assert.Contains(t, stderr, "The lang directory /nope does not exist.")
}

func TestRootRejectsExtraArgs(t *testing.T) {
	setEnv(t, "en")
	_, _, err := execute(t, langFS(t), "a.js", "b.js")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "langjs v"+Version)
}

func TestErrorMessage(t *testing.T) {
	tr := i18n.NewTranslator("en", zerolog.Nop())

	assert.Equal(t, "", ErrorMessage(tr, "en", nil, "lang"))
	assert.Equal(t, "The lang directory lang does not exist.",
		ErrorMessage(tr, "en", domain.ErrSourceNotFound, "lang"))
	assert.Equal(t, "The output could not be written: cannot write target",
		ErrorMessage(tr, "en", domain.ErrWriteFailure, "lang"))
	assert.Equal(t, "error_unknown", errorKey(""))
}
