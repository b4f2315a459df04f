package usecases

import (
	"context"
	"log/slog"

	"github.com/vlgmic/warehouse-ingest/models"
	"github.com/vlgmic/warehouse-ingest/repositories"
	"github.com/vlgmic/warehouse-ingest/utils"
)

// AccessUseCase grants privileges on ingested tables.
type AccessUseCase struct {
	executorFactory     repositories.ExecutorFactory
	warehouseRepository repositories.WarehouseRepository
	internalSchema      string
}

func (uc AccessUseCase) GrantRole(ctx context.Context, tableName, privilege, grantee string) error {
	grant := models.RoleGrant{
		Privilege: privilege,
		Grantee:   grantee,
		Table:     models.StagedTableRef{Schema: uc.internalSchema, Table: tableName},
	}
	if err := grant.Validate(); err != nil {
		return err
	}

	exec := uc.executorFactory.NewExecutor()
	if err := uc.warehouseRepository.GrantOnTable(ctx, exec, grant); err != nil {
		return err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "granted privilege on table",
		slog.String("privilege", grant.NormalizedPrivilege()),
		slog.String("table", grant.Table.QualifiedName()),
		slog.String("grantee", grant.Grantee))
	return nil
}
