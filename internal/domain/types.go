package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MapOfAny is persisted as JSON in the database
type MapOfAny map[string]any

// Scan implements the sql.Scanner interface
func (m *MapOfAny) Scan(val interface{}) error {
	return scanJSON(val, m)
}

// Value implements the driver.Valuer interface
func (m MapOfAny) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// JSONColumn wraps any value stored in a JSONB column
type JSONColumn[T any] struct {
	V *T
}

// Scan implements the sql.Scanner interface
func (c JSONColumn[T]) Scan(val interface{}) error {
	return scanJSON(val, c.V)
}

// Value implements the driver.Valuer interface
func (c JSONColumn[T]) Value() (driver.Value, error) {
	if c.V == nil {
		return nil, nil
	}
	return json.Marshal(c.V)
}

// AsJSON wraps v for use as a query argument or scan destination
func AsJSON[T any](v *T) JSONColumn[T] {
	return JSONColumn[T]{V: v}
}

func scanJSON(val interface{}, dest interface{}) error {
	var data []byte

	switch v := val.(type) {
	case []byte:
		// the driver reuses the buffer for the next row
		data = bytes.Clone(v)
	case string:
		data = []byte(v)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported JSON column type %T", val)
	}

	return json.Unmarshal(data, dest)
}
