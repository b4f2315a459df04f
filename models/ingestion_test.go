package models

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func validMapping() ColumnMapping {
	return ColumnMapping{
		TableName: "t1",
		Columns:   []string{"id", "name"},
		Types:     []string{"int", "text"},
		Delimiter: ",",
	}
}

func TestColumnMapping_Validate(t *testing.T) {
	t.Run("nominal", func(t *testing.T) {
		assert.NoError(t, validMapping().Validate())
	})

	t.Run("columns and types of different cardinality", func(t *testing.T) {
		mapping := validMapping()
		mapping.Types = []string{"int"}

		err := mapping.Validate()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, BadParameterError))
	})

	t.Run("no columns", func(t *testing.T) {
		mapping := validMapping()
		mapping.Columns = nil
		mapping.Types = nil

		assert.Error(t, mapping.Validate())
	})

	t.Run("hostile table name", func(t *testing.T) {
		mapping := validMapping()
		mapping.TableName = "t1; DROP TABLE users; --"

		err := mapping.Validate()
		assert.True(t, errors.Is(err, BadParameterError))
	})

	t.Run("hostile column name", func(t *testing.T) {
		mapping := validMapping()
		mapping.Columns = []string{"id", `name" text) LOCATION ('x')`}

		assert.Error(t, mapping.Validate())
	})

	t.Run("type outside the allow-list", func(t *testing.T) {
		mapping := validMapping()
		mapping.Types = []string{"int", "text); DROP TABLE users"}

		assert.Error(t, mapping.Validate())
	})

	t.Run("multi character delimiter", func(t *testing.T) {
		mapping := validMapping()
		mapping.Delimiter = ",,"

		assert.Error(t, mapping.Validate())
	})

	t.Run("empty delimiter", func(t *testing.T) {
		mapping := validMapping()
		mapping.Delimiter = ""

		assert.Error(t, mapping.Validate())
	})
}

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"t1", "my_table", "_private", "CamelCase", "a2b"}
	for _, name := range valid {
		assert.NoError(t, ValidateIdentifier(name), name)
	}

	invalid := []string{"", "1table", "ta-ble", "ta ble", `ta"ble`, "ta.ble",
		strings.Repeat("x", 64)}
	for _, name := range invalid {
		assert.Error(t, ValidateIdentifier(name), name)
	}
}

func TestValidateSqlType(t *testing.T) {
	assert.NoError(t, ValidateSqlType("int"))
	assert.NoError(t, ValidateSqlType("TEXT"))
	assert.NoError(t, ValidateSqlType(" timestamp "))
	assert.Error(t, ValidateSqlType("serial"))
	assert.Error(t, ValidateSqlType("int4range"))
	assert.Error(t, ValidateSqlType("text'); DROP TABLE users; --"))
}

func TestNewStagingDirectory(t *testing.T) {
	first := NewStagingDirectory()
	second := NewStagingDirectory()

	assert.True(t, strings.HasPrefix(first, "/projects/vlgmic_"))
	assert.NotEqual(t, first, second)
}
