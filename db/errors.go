package db

import (
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
)

func IsDupKeyErr(error *mysql.MySQLError) bool {
	return strings.Contains(error.Error(), "Duplicate")
}

var dupKeyRe = regexp.MustCompile(`for key '((?:[^'])+)'`)

// GetDupKey extracts the index name from a duplicate-key error message.
// Returns "" when the message has an unexpected shape.
func GetDupKey(error *mysql.MySQLError) string {
	match := dupKeyRe.FindStringSubmatch(error.Error())
	if match == nil {
		return ""
	}
	return match[1]
}
