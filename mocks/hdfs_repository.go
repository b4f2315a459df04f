package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type HdfsRepository struct {
	mock.Mock
}

func (m *HdfsRepository) Probe(ctx context.Context, root string) error {
	args := m.Called(ctx, root)
	return args.Error(0)
}

func (m *HdfsRepository) Mkdirs(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *HdfsRepository) Upload(ctx context.Context, remotePath string, content io.Reader) error {
	args := m.Called(ctx, remotePath, content)
	return args.Error(0)
}

func (m *HdfsRepository) DeleteRecursive(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
