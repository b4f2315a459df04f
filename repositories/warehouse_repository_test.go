package repositories

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/vlgmic/warehouse-ingest/models"
)

var (
	externalRef = models.StagedTableRef{Schema: "ext", Table: "t1"}
	internalRef = models.StagedTableRef{Schema: "int", Table: "t1"}

	testMapping = models.ColumnMapping{
		TableName: "t1",
		Columns:   []string{"id", "name"},
		Types:     []string{"int", "text"},
		Delimiter: ",",
	}
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestWarehouseRepository_CreateExternalTable(t *testing.T) {
	repo := NewWarehouseRepositoryPostgresql()

	t.Run("nominal", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`CREATE EXTERNAL TABLE "ext"."t1" ("id" int, "name" text) ` +
			`LOCATION ('pxf:///projects/vlgmic_abc/data.csv?PROFILE=hdfs:csv&SERVER=adh') ` +
			`FORMAT 'CSV' (delimiter=E',')`).
			WillReturnResult(pgxmock.NewResult("CREATE", 0))

		err := repo.CreateExternalTable(context.Background(), mock, externalRef,
			"/projects/vlgmic_abc/data.csv", testMapping)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate table is a conflict", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`CREATE EXTERNAL TABLE "ext"."t1" ("id" int, "name" text) ` +
			`LOCATION ('pxf:///projects/vlgmic_abc/data.csv?PROFILE=hdfs:csv&SERVER=adh') ` +
			`FORMAT 'CSV' (delimiter=E',')`).
			WillReturnError(&pgconn.PgError{Code: "42P07"})

		err := repo.CreateExternalTable(context.Background(), mock, externalRef,
			"/projects/vlgmic_abc/data.csv", testMapping)
		assert.True(t, errors.Is(err, models.ConflictError))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWarehouseRepository_CreateTableFromExternal(t *testing.T) {
	repo := NewWarehouseRepositoryPostgresql()

	t.Run("nominal", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`CREATE TABLE "int"."t1" AS SELECT * FROM "ext"."t1"`).
			WillReturnResult(pgxmock.NewResult("SELECT", 2))

		err := repo.CreateTableFromExternal(context.Background(), mock, externalRef, internalRef)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`CREATE TABLE "int"."t1" AS SELECT * FROM "ext"."t1"`).
			WillReturnError(assert.AnError)

		err := repo.CreateTableFromExternal(context.Background(), mock, externalRef, internalRef)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWarehouseRepository_DropExternalTable(t *testing.T) {
	repo := NewWarehouseRepositoryPostgresql()

	mock := newMockPool(t)
	mock.ExpectExec(`DROP EXTERNAL TABLE IF EXISTS "ext"."t1"`).
		WillReturnResult(pgxmock.NewResult("DROP", 0))

	assert.NoError(t, repo.DropExternalTable(context.Background(), mock, externalRef))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarehouseRepository_DropTable(t *testing.T) {
	repo := NewWarehouseRepositoryPostgresql()

	mock := newMockPool(t)
	mock.ExpectExec(`DROP TABLE IF EXISTS "int"."t1"`).
		WillReturnResult(pgxmock.NewResult("DROP", 0))

	assert.NoError(t, repo.DropTable(context.Background(), mock, internalRef))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarehouseRepository_GrantOnTable(t *testing.T) {
	repo := NewWarehouseRepositoryPostgresql()

	mock := newMockPool(t)
	mock.ExpectExec(`GRANT SELECT ON "int"."t1" TO "analyst"`).
		WillReturnResult(pgxmock.NewResult("GRANT", 0))

	err := repo.GrantOnTable(context.Background(), mock, models.RoleGrant{
		Privilege: "select",
		Grantee:   "analyst",
		Table:     internalRef,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarehouseRepository_TableExists(t *testing.T) {
	repo := NewWarehouseRepositoryPostgresql()

	t.Run("exists", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2`).
			WithArgs("int", "t1").
			WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

		exists, err := repo.TableExists(context.Background(), mock, internalRef)
		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = $2`).
			WithArgs("int", "t1").
			WillReturnRows(pgxmock.NewRows([]string{"?column?"}))

		exists, err := repo.TableExists(context.Background(), mock, internalRef)
		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWarehouseRepository_CountRows(t *testing.T) {
	repo := NewWarehouseRepositoryPostgresql()

	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT COUNT(*) FROM "int"."t1"`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	count, err := repo.CountRows(context.Background(), mock, internalRef)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeDelimiter(t *testing.T) {
	assert.Equal(t, ",", escapeDelimiter(","))
	assert.Equal(t, `\'`, escapeDelimiter("'"))
	assert.Equal(t, `\\`, escapeDelimiter(`\`))
}
