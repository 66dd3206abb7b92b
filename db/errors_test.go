package db

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDupKeyErr(t *testing.T) {
	dup := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'ABC-123' for key 'van.plate_number'",
	}
	other := &mysql.MySQLError{
		Number:  1146,
		Message: "Table 'hafilati.van' doesn't exist",
	}

	assert.True(t, IsDupKeyErr(dup))
	assert.False(t, IsDupKeyErr(other))
}

func TestGetDupKey(t *testing.T) {
	dup := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'ABC-123' for key 'van.plate_number'",
	}

	assert.Equal(t, "van.plate_number", GetDupKey(dup))
	assert.Equal(t, "", GetDupKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
}
