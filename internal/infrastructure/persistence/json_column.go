package persistence

import (
	"database/sql/driver"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// jsonColumn хранит значение в колонке JSONB.
type jsonColumn[T any] struct {
	V     T
	Valid bool
}

func newJSONColumn[T any](v T) jsonColumn[T] {
	return jsonColumn[T]{V: v, Valid: true}
}

func (c jsonColumn[T]) Value() (driver.Value, error) {
	if !c.Valid {
		return nil, nil
	}

	b, err := json.Marshal(c.V)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return string(b), nil
}

func (c *jsonColumn[T]) Scan(src any) error {
	var zero T
	c.V = zero

	var b []byte
	switch v := src.(type) {
	case nil:
		c.Valid = false
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}

	if err := json.Unmarshal(b, &c.V); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	c.Valid = true

	return nil
}
