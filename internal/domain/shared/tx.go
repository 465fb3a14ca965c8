package shared

import "context"

// TransactionManager runs a function inside a single store transaction.
// Cross-entity operations (inventory decrement plus transaction line, state
// flip plus ledger entry) use it so that partial effects never survive a
// failure: the rollback of the transaction is the compensation.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTransactionManager runs the function without any transactional
// boundary. Useful for tests with in-memory repositories.
type NopTransactionManager struct{}

// WithinTransaction invokes fn directly
func (NopTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
