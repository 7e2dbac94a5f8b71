package testutil

import (
	"context"

	"github.com/fakturo/fakturo/internal/postgres"
)

// MockPostgresClient satisfies postgres.IClient for service tests that run
// against in-memory stores. WithTx simply runs the function: the stores
// apply writes immediately and tests assert on outcomes, not isolation.
type MockPostgresClient struct{}

func NewMockPostgresClient() *MockPostgresClient {
	return &MockPostgresClient{}
}

func (m *MockPostgresClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *MockPostgresClient) Querier(ctx context.Context) postgres.Querier {
	return nil
}

func (m *MockPostgresClient) Close() error {
	return nil
}
