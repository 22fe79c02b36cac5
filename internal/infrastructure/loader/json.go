package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"langjs/internal/domain"
	"langjs/internal/domain/entities"
	"langjs/internal/ports/output"
)

var _ output.MessageLoader = JSON{}

// JSON loads flat translation-string files. Object key order is kept.
type JSON struct{}

func (JSON) Extensions() []string { return []string{".json"} }

func (JSON) StringsDomain() bool { return true }

func (JSON) Load(name string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: error while decoding %s: %v", domain.ErrInvalidInput, name, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: error while decoding %s: trailing data", domain.ErrInvalidInput, name)
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		tree := entities.NewTree()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", kt)
			}
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			tree.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return tree, nil
	case '[':
		list := []any{}
		for dec.More() {
			v, err := decodeJSON(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
