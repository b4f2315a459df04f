package models

import (
	"fmt"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// StagingDirPrefix is the remote path convention for staging directories: one
// uniquely named directory per upload, holding the header-stripped file for
// the duration of one ingestion request.
const StagingDirPrefix = "/projects/vlgmic_"

func NewStagingDirectory() string {
	return StagingDirPrefix + uuid.NewString()
}

// UploadSession is the transient state of one upload request: the staged
// remote file plus the header names extracted from it.
type UploadSession struct {
	Filename     string
	Headers      []string
	StagingDir   string
	RemoteFile   string
	DataRowCount int
}

// ColumnMapping is the user-submitted description of the staged file: one
// declared type per column name, and the delimiter the file uses.
type ColumnMapping struct {
	TableName string
	Columns   []string
	Types     []string
	Delimiter string
}

// Validate checks the mapping before any remote or database call is made.
// Everything in it ends up inside DDL, so identifiers and types are held to a
// strict grammar rather than trusted.
func (m ColumnMapping) Validate() error {
	if err := ValidateIdentifier(m.TableName); err != nil {
		return errors.Wrap(err, "invalid table name")
	}
	if len(m.Columns) == 0 {
		return errors.Wrap(BadParameterError, "at least one column is required")
	}
	if len(m.Columns) != len(m.Types) {
		return errors.Wrapf(BadParameterError,
			"got %d column names but %d types", len(m.Columns), len(m.Types))
	}
	for _, col := range m.Columns {
		if err := ValidateIdentifier(col); err != nil {
			return errors.Wrap(err, "invalid column name")
		}
	}
	for _, typ := range m.Types {
		if err := ValidateSqlType(typ); err != nil {
			return err
		}
	}
	if utf8.RuneCountInString(m.Delimiter) != 1 {
		return errors.Wrapf(BadParameterError, "delimiter must be a single character, got %q", m.Delimiter)
	}
	return nil
}

// StagedTableRef identifies a table in the warehouse catalog.
type StagedTableRef struct {
	Schema string
	Table  string
}

func (r StagedTableRef) QualifiedName() string {
	return fmt.Sprintf("%s.%s", r.Schema, r.Table)
}

// IngestionResult is returned to the user once the pipeline reaches Done.
type IngestionResult struct {
	ExternalTableName string
	InternalTableName string
}
