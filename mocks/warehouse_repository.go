package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vlgmic/warehouse-ingest/models"
	"github.com/vlgmic/warehouse-ingest/repositories"
)

type WarehouseRepository struct {
	mock.Mock
}

func (m *WarehouseRepository) CreateExternalTable(
	ctx context.Context,
	exec repositories.Executor,
	ref models.StagedTableRef,
	remotePath string,
	mapping models.ColumnMapping,
) error {
	args := m.Called(ctx, exec, ref, remotePath, mapping)
	return args.Error(0)
}

func (m *WarehouseRepository) CreateTableFromExternal(
	ctx context.Context,
	exec repositories.Executor,
	source, dest models.StagedTableRef,
) error {
	args := m.Called(ctx, exec, source, dest)
	return args.Error(0)
}

func (m *WarehouseRepository) DropExternalTable(
	ctx context.Context,
	exec repositories.Executor,
	ref models.StagedTableRef,
) error {
	args := m.Called(ctx, exec, ref)
	return args.Error(0)
}

func (m *WarehouseRepository) DropTable(
	ctx context.Context,
	exec repositories.Executor,
	ref models.StagedTableRef,
) error {
	args := m.Called(ctx, exec, ref)
	return args.Error(0)
}

func (m *WarehouseRepository) GrantOnTable(
	ctx context.Context,
	exec repositories.Executor,
	grant models.RoleGrant,
) error {
	args := m.Called(ctx, exec, grant)
	return args.Error(0)
}

func (m *WarehouseRepository) TableExists(
	ctx context.Context,
	exec repositories.Executor,
	ref models.StagedTableRef,
) (bool, error) {
	args := m.Called(ctx, exec, ref)
	return args.Bool(0), args.Error(1)
}

func (m *WarehouseRepository) CountRows(
	ctx context.Context,
	exec repositories.Executor,
	ref models.StagedTableRef,
) (int64, error) {
	args := m.Called(ctx, exec, ref)
	return args.Get(0).(int64), args.Error(1)
}
