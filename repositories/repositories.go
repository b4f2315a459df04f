package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	ExecutorFactory     ExecutorFactory
	HdfsRepository      HdfsRepository
	WarehouseRepository WarehouseRepository
}

func NewRepositories(pool *pgxpool.Pool, hdfs HdfsRepository) Repositories {
	return Repositories{
		ExecutorFactory:     NewPgExecutorFactory(pool),
		HdfsRepository:      hdfs,
		WarehouseRepository: NewWarehouseRepositoryPostgresql(),
	}
}
