package models

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Postgres truncates identifiers beyond 63 bytes, which would silently change
// the name of the created table.
const maxIdentifierLength = 63

var identifierRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateIdentifier accepts the subset of SQL identifiers that never needs
// quoting. User input that fails it is rejected before reaching any DDL.
func ValidateIdentifier(name string) error {
	if name == "" {
		return errors.Wrap(BadParameterError, "identifier is empty")
	}
	if len(name) > maxIdentifierLength {
		return errors.Wrapf(BadParameterError, "identifier %q is longer than %d bytes", name, maxIdentifierLength)
	}
	if !identifierRegexp.MatchString(name) {
		return errors.Wrapf(BadParameterError, "identifier %q contains invalid characters", name)
	}
	return nil
}

// allowedSqlTypes is the fixed grammar of column types accepted in a column
// mapping. Anything else is rejected rather than interpolated into DDL.
var allowedSqlTypes = map[string]struct{}{
	"smallint":         {},
	"int":              {},
	"integer":          {},
	"bigint":           {},
	"real":             {},
	"float":            {},
	"double precision": {},
	"numeric":          {},
	"decimal":          {},
	"boolean":          {},
	"text":             {},
	"varchar":          {},
	"char":             {},
	"date":             {},
	"time":             {},
	"timestamp":        {},
	"timestamptz":      {},
	"uuid":             {},
	"json":             {},
	"jsonb":            {},
	"bytea":            {},
}

func ValidateSqlType(typeName string) error {
	if _, ok := allowedSqlTypes[strings.ToLower(strings.TrimSpace(typeName))]; !ok {
		return errors.Wrapf(BadParameterError, "unsupported column type %q", typeName)
	}
	return nil
}

// NormalizeSqlType returns the canonical lower-case spelling used in DDL.
func NormalizeSqlType(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}
