package loader

import (
	"fmt"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"langjs/internal/domain"
	"langjs/internal/domain/entities"
	"langjs/internal/ports/output"
)

var _ output.MessageLoader = TOML{}

// TOML loads message group files written as TOML tables. go-toml does not
// expose table order, so keys come out sorted.
type TOML struct{}

func (TOML) Extensions() []string { return []string{".toml"} }

func (TOML) StringsDomain() bool { return false }

func (TOML) Load(name string, data []byte) (any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: failed to parse TOML file %s: %v", domain.ErrInvalidInput, name, err)
	}
	return tomlTree(m), nil
}

func tomlTree(m map[string]any) *entities.Tree {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tree := entities.NewTree()
	for _, k := range keys {
		tree.Set(k, tomlValue(m[k]))
	}
	return tree
}

func tomlValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return tomlTree(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = tomlValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = tomlTree(item)
		}
		return out
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		// local dates and times
		return x.String()
	default:
		return v
	}
}
