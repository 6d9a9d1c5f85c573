package rest

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Nullable отличает отсутствующее поле от явного null.
// Совпадает по устройству с value.Patch, поэтому приводится к нему напрямую.
type Nullable[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Null = bytes.Equal(bytes.TrimSpace(data), []byte("null"))

	if n.Null {
		var zero T
		n.Value = zero

		return nil
	}

	return json.Unmarshal(data, &n.Value)
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Null {
		return []byte("null"), nil
	}

	return json.Marshal(n.Value)
}
