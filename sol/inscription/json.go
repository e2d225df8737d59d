package inscription

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/meme-bots/go-inscription/types"
)

func parseJSON(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var v interface{}
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("%v: %w", err, types.ErrInvalidJson)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value: %w", types.ErrInvalidJson)
	}
	return v, nil
}

// mergeAppend folds b into a. Objects merge key by key, strings concatenate
// and arrays extend. Any other pairing is invalid.
func mergeAppend(a, b interface{}) (interface{}, error) {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok {
			return nil, types.ErrInvalidJson
		}
		for k, v := range bv {
			existing, ok := av[k]
			if !ok {
				av[k] = v
				continue
			}
			merged, err := mergeAppend(existing, v)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			av[k] = merged
		}
		return av, nil
	case string:
		bv, ok := b.(string)
		if !ok {
			return nil, types.ErrInvalidJson
		}
		return av + bv, nil
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok {
			return nil, types.ErrInvalidJson
		}
		return append(av, bv...), nil
	}
	return nil, types.ErrInvalidJson
}

func mergeAppendJSON(current, value []byte) ([]byte, error) {
	a, err := parseJSON(current)
	if err != nil {
		return nil, err
	}
	b, err := parseJSON(value)
	if err != nil {
		return nil, err
	}
	merged, err := mergeAppend(a, b)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(merged); err != nil {
		return nil, fmt.Errorf("%v: %w", err, types.ErrInvalidJson)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
