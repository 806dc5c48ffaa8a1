package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// member is one key/value pair of a JSON object.
type member[T any] struct {
	Key   string
	Value T
}

// orderedObject decodes a JSON object into its members in document order.
// Both tools report network interfaces and mounts as objects whose order
// is meaningful to the user.
type orderedObject[T any] []member[T]

func (o *orderedObject[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	var out orderedObject[T]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var v T
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, member[T]{Key: key, Value: v})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}
