package mocks

import (
	"github.com/pashagolub/pgxmock/v4"

	"github.com/vlgmic/warehouse-ingest/repositories"
)

type ExecutorFactoryStub struct {
	Mock pgxmock.PgxPoolIface
}

func NewExecutorFactoryStub() ExecutorFactoryStub {
	pool, _ := pgxmock.NewPool()

	return ExecutorFactoryStub{
		Mock: pool,
	}
}

func (stub ExecutorFactoryStub) NewExecutor() repositories.Executor {
	return stub.Mock
}
