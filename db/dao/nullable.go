package dao

import "database/sql"

type NullInt64 struct {
	sql.NullInt64
}

// AsPtr returns nil for NULL, otherwise a pointer to the value.
func (ni *NullInt64) AsPtr() *int64 {
	if !ni.NullInt64.Valid {
		return nil
	}
	val := ni.NullInt64.Int64
	return &val
}
