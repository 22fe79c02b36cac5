package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"langjs/internal/application"
	"langjs/internal/config"
	"langjs/internal/domain/entities"
	"langjs/internal/infrastructure/i18n"
	"langjs/internal/infrastructure/loader"
	"langjs/internal/infrastructure/minify"
	"langjs/internal/infrastructure/templates"
	"langjs/internal/logging"
	"langjs/internal/ports/input"
)

// DefaultTarget est utilisé lorsque aucune cible n'est passée en argument.
const DefaultTarget = "public/messages.js"

type flags struct {
	configFile string
	verbose    bool
	opts       entities.Options
}

// NewRootCommand construit la commande racine. fs porte les fichiers de
// langues et la cible; stdout reçoit les lignes "créé", stderr les logs et
// les erreurs.
func NewRootCommand(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "langjs [target]",
		Short: "Export Laravel translations to a JavaScript or JSON file",
		Long: `langjs walks the Laravel lang directory and writes every translation
it finds (PHP, JSON, YAML and TOML files) to one client-side artifact.

Without flags the output bundles the Lang runtime with the messages.
Templates, by precedence:
  --no-lib         messages only, as a UMD module
  --json           a raw JSON document
  --window-object  messages assigned to window.messages`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := DefaultTarget
			if len(args) == 1 {
				target = args[0]
			}
			return run(cmd, fs, f, target, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")

	fl := cmd.Flags()
	fl.StringVarP(&f.opts.Source, "source", "s", "", "lang directory to read instead of the configured one")
	fl.BoolVar(&f.opts.NoSort, "no-sort", false, "keep discovery order instead of sorting keys")
	fl.BoolVar(&f.opts.GroupLocales, "group-locales", false, "write one file per locale")
	fl.BoolVar(&f.opts.NoLib, "no-lib", false, "do not bundle the Lang runtime")
	fl.BoolVarP(&f.opts.JSON, "json", "j", false, "write a raw JSON document")
	fl.BoolVar(&f.opts.WindowObject, "window-object", false, "assign the messages to window.messages")
	fl.BoolVarP(&f.opts.Compress, "compress", "c", false, "minify the output")

	cmd.AddCommand(newVersionCommand(stdout))
	return cmd
}

// Execute lance la commande sur le système de fichiers réel.
func Execute() error {
	return NewRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr).Execute()
}

func run(cmd *cobra.Command, fs afero.Fs, f *flags, target string, stdout, stderr io.Writer) error {
	log := logging.New(stderr, f.verbose)

	cfg, err := config.Load(f.configFile)
	if err != nil {
		tr := i18n.NewTranslator("en", log)
		fmt.Fprintln(stderr, tr.T("", "error_unknown", map[string]any{"Detail": err.Error()}))
		return err
	}
	tr := i18n.NewTranslator(cfg.Locale, log)
	if !tr.Supports(cfg.Locale) {
		log.Warn().Str("locale", cfg.Locale).Strs("available", tr.Locales()).Msg("no catalog for locale, messages fall back to English")
	}

	filter, err := application.NewFilter(cfg.Messages)
	if err != nil {
		fmt.Fprintln(stderr, tr.T(cfg.Locale, "error_unknown", map[string]any{"Detail": err.Error()}))
		return err
	}

	collector := application.NewCollector(fs, filter, loader.Default(), log)
	emitter := application.NewEmitter(fs, templates.New(), minify.New(), log)
	var generator input.GeneratorUseCase = application.NewGenerator(collector, emitter, cfg.LangPath, log)

	source := cfg.LangPath
	if f.opts.Source != "" {
		source = f.opts.Source
	}

	h := NewHandler(generator, tr, cfg.Locale, stdout, stderr)
	return h.Generate(cmd.Context(), target, source, f.opts)
}
