package repositories

import "context"

// TransactionManager runs a unit of work atomically. The Repositories passed
// to fn are bound to a single transaction: every write made through them is
// committed together when fn returns nil and rolled back when it returns an error.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
}
