package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile est lu lorsqu'aucun fichier n'est fourni; il est optionnel.
const DefaultFile = "langjs.toml"

// langPathCandidates reprend l'emplacement du répertoire de langues selon la
// version de Laravel, de la plus récente à la plus ancienne.
var langPathCandidates = []string{"lang", "resources/lang", "app/lang"}

type Config struct {
	LangPath string   `toml:"lang_path"`
	Messages []string `toml:"messages"`
	Locale   string   `toml:"locale"`
}

// Load charge la configuration depuis le fichier TOML (DefaultFile s'il existe
// lorsque file est vide), puis les variables d'environnement, et la valide.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}

	cfg := &Config{}
	if err := cfg.readFile(file); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv("LANGJS_LANG_PATH")); v != "" {
		cfg.LangPath = v
	}
	if v := strings.TrimSpace(os.Getenv("LANGJS_MESSAGES")); v != "" {
		cfg.Messages = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("LANGJS_LOCALE")); v != "" {
		cfg.Locale = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(file string) error {
	explicit := file != ""
	if !explicit {
		file = DefaultFile
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: lecture de %s impossible: %w", file, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: %s invalide: %w", file, err)
	}
	return nil
}

// validate applique toutes les règles sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = "en"
	}

	messages := make([]string, 0, len(c.Messages))
	for _, m := range c.Messages {
		m = strings.TrimSpace(filepath.ToSlash(m))
		if m == "" {
			continue
		}
		if strings.HasPrefix(m, "/") || filepath.IsAbs(m) {
			return fmt.Errorf("config: messages: %q doit être un chemin relatif au répertoire de la locale", m)
		}
		messages = append(messages, m)
	}
	c.Messages = messages

	if strings.TrimSpace(c.LangPath) == "" {
		// Valeur par défaut: le premier répertoire existant, sinon "lang".
		c.LangPath = langPathCandidates[0]
		for _, candidate := range langPathCandidates {
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				c.LangPath = candidate
				break
			}
		}
	}

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
