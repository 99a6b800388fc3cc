// Package mocks provides mock implementations of database interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager for testing.
// When the configured return value is nil, the transactional function is
// executed with the original context and its error is returned, so use-case
// tests exercise the real code path inside WithTx.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks transactional execution.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
