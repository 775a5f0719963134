package models

import (
	"bytes"
	"database/sql"
	"encoding/json"
)

// NullInt is a nullable integer column that also records whether the JSON
// field was supplied at all, so that an explicit null can be told apart from
// an absent key. Scan and Value come from the embedded sql.Null.
type NullInt struct {
	sql.Null[int64]
	Set bool `json:"-"`
}

// NewNullInt returns a valid NullInt holding v.
func NewNullInt(v int64) NullInt {
	return NullInt{Null: sql.Null[int64]{V: v, Valid: true}, Set: true}
}

// UnmarshalJSON is called for explicit nulls as well as numbers.
func (n *NullInt) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Null = sql.Null[int64]{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Null = sql.Null[int64]{V: v, Valid: true}
	return nil
}

func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.V)
}
