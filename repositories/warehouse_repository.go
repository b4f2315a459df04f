package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/vlgmic/warehouse-ingest/models"
)

// WarehouseRepository is the catalog side of the ingestion pipeline: it maps
// a staged remote file into an external table, materializes it into a durable
// table, and manages grants on the result. Statements auto-commit one by one;
// consistency across the sequence is the caller's concern.
type WarehouseRepository interface {
	CreateExternalTable(ctx context.Context, exec Executor, ref models.StagedTableRef,
		remotePath string, mapping models.ColumnMapping) error
	CreateTableFromExternal(ctx context.Context, exec Executor, source, dest models.StagedTableRef) error
	DropExternalTable(ctx context.Context, exec Executor, ref models.StagedTableRef) error
	DropTable(ctx context.Context, exec Executor, ref models.StagedTableRef) error
	GrantOnTable(ctx context.Context, exec Executor, grant models.RoleGrant) error
	TableExists(ctx context.Context, exec Executor, ref models.StagedTableRef) (bool, error)
	CountRows(ctx context.Context, exec Executor, ref models.StagedTableRef) (int64, error)
}

const (
	pxfProfile = "hdfs:csv"
	pxfServer  = "adh"
)

type WarehouseRepositoryPostgresql struct {
	queryBuilder squirrel.StatementBuilderType
}

func NewWarehouseRepositoryPostgresql() WarehouseRepositoryPostgresql {
	return WarehouseRepositoryPostgresql{
		queryBuilder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func sanitizeRef(ref models.StagedTableRef) string {
	return pgx.Identifier{ref.Schema, ref.Table}.Sanitize()
}

// columnsDefinition renders "name type, name type, ...". Identifiers and
// types were validated upstream; identifiers are still quoted here so the
// rendered DDL never depends on that contract alone.
func columnsDefinition(mapping models.ColumnMapping) string {
	parts := make([]string, len(mapping.Columns))
	for i, col := range mapping.Columns {
		parts[i] = fmt.Sprintf("%s %s",
			pgx.Identifier{col}.Sanitize(),
			models.NormalizeSqlType(mapping.Types[i]))
	}
	return strings.Join(parts, ", ")
}

func escapeDelimiter(delimiter string) string {
	escaped := strings.ReplaceAll(delimiter, `\`, `\\`)
	return strings.ReplaceAll(escaped, `'`, `\'`)
}

func (repo WarehouseRepositoryPostgresql) CreateExternalTable(
	ctx context.Context,
	exec Executor,
	ref models.StagedTableRef,
	remotePath string,
	mapping models.ColumnMapping,
) error {
	sql := fmt.Sprintf(
		"CREATE EXTERNAL TABLE %s (%s) LOCATION ('pxf://%s?PROFILE=%s&SERVER=%s') FORMAT 'CSV' (delimiter=E'%s')",
		sanitizeRef(ref),
		columnsDefinition(mapping),
		remotePath,
		pxfProfile,
		pxfServer,
		escapeDelimiter(mapping.Delimiter),
	)

	if _, err := exec.Exec(ctx, sql); err != nil {
		if IsDuplicateTableError(err) {
			return errors.Wrapf(models.ConflictError, "external table %s already exists", ref.QualifiedName())
		}
		return errors.Wrapf(err, "failed to create external table %s", ref.QualifiedName())
	}
	return nil
}

func (repo WarehouseRepositoryPostgresql) CreateTableFromExternal(
	ctx context.Context,
	exec Executor,
	source, dest models.StagedTableRef,
) error {
	sql := fmt.Sprintf("CREATE TABLE %s AS SELECT * FROM %s",
		sanitizeRef(dest), sanitizeRef(source))

	if _, err := exec.Exec(ctx, sql); err != nil {
		if IsDuplicateTableError(err) {
			return errors.Wrapf(models.ConflictError, "table %s already exists", dest.QualifiedName())
		}
		return errors.Wrapf(err, "failed to materialize %s from %s",
			dest.QualifiedName(), source.QualifiedName())
	}
	return nil
}

func (repo WarehouseRepositoryPostgresql) DropExternalTable(
	ctx context.Context,
	exec Executor,
	ref models.StagedTableRef,
) error {
	sql := fmt.Sprintf("DROP EXTERNAL TABLE IF EXISTS %s", sanitizeRef(ref))

	if _, err := exec.Exec(ctx, sql); err != nil {
		return errors.Wrapf(err, "failed to drop external table %s", ref.QualifiedName())
	}
	return nil
}

func (repo WarehouseRepositoryPostgresql) DropTable(
	ctx context.Context,
	exec Executor,
	ref models.StagedTableRef,
) error {
	sql := fmt.Sprintf("DROP TABLE IF EXISTS %s", sanitizeRef(ref))

	if _, err := exec.Exec(ctx, sql); err != nil {
		return errors.Wrapf(err, "failed to drop table %s", ref.QualifiedName())
	}
	return nil
}

func (repo WarehouseRepositoryPostgresql) GrantOnTable(
	ctx context.Context,
	exec Executor,
	grant models.RoleGrant,
) error {
	// GRANT takes no bind parameters: privilege comes from a fixed allow-list
	// and the identifiers are quoted.
	sql := fmt.Sprintf("GRANT %s ON %s TO %s",
		grant.NormalizedPrivilege(),
		sanitizeRef(grant.Table),
		pgx.Identifier{grant.Grantee}.Sanitize(),
	)

	if _, err := exec.Exec(ctx, sql); err != nil {
		return errors.Wrapf(err, "failed to grant %s on %s to %s",
			grant.NormalizedPrivilege(), grant.Table.QualifiedName(), grant.Grantee)
	}
	return nil
}

func (repo WarehouseRepositoryPostgresql) TableExists(
	ctx context.Context,
	exec Executor,
	ref models.StagedTableRef,
) (bool, error) {
	sql, args, err := repo.queryBuilder.
		Select("1").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_schema": ref.Schema}).
		Where(squirrel.Eq{"table_name": ref.Table}).
		ToSql()
	if err != nil {
		return false, err
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return false, errors.Wrapf(err, "failed to look up table %s", ref.QualifiedName())
	}
	defer rows.Close()

	exists := rows.Next()
	return exists, rows.Err()
}

func (repo WarehouseRepositoryPostgresql) CountRows(
	ctx context.Context,
	exec Executor,
	ref models.StagedTableRef,
) (int64, error) {
	sql, _, err := repo.queryBuilder.
		Select("COUNT(*)").
		From(sanitizeRef(ref)).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := exec.QueryRow(ctx, sql).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "failed to count rows of %s", ref.QualifiedName())
	}
	return count, nil
}
