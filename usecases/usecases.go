package usecases

import (
	"github.com/vlgmic/warehouse-ingest/repositories"
)

type Usecases struct {
	Repositories   repositories.Repositories
	externalSchema string
	internalSchema string
}

type Option func(*Usecases)

func WithExternalSchema(schema string) Option {
	return func(u *Usecases) {
		u.externalSchema = schema
	}
}

func WithInternalSchema(schema string) Option {
	return func(u *Usecases) {
		u.internalSchema = schema
	}
}

func NewUsecases(repos repositories.Repositories, opts ...Option) Usecases {
	u := Usecases{
		Repositories:   repos,
		externalSchema: "ext",
		internalSchema: "int",
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func (u Usecases) NewIngestionUseCase() IngestionUseCase {
	return IngestionUseCase{
		executorFactory:     u.Repositories.ExecutorFactory,
		hdfsRepository:      u.Repositories.HdfsRepository,
		warehouseRepository: u.Repositories.WarehouseRepository,
		externalSchema:      u.externalSchema,
		internalSchema:      u.internalSchema,
	}
}

func (u Usecases) NewAccessUseCase() AccessUseCase {
	return AccessUseCase{
		executorFactory:     u.Repositories.ExecutorFactory,
		warehouseRepository: u.Repositories.WarehouseRepository,
		internalSchema:      u.internalSchema,
	}
}
