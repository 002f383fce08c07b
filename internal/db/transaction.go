package db

import "context"

// TransactionManager runs a function inside a database transaction. The
// service layer wraps every multi-write invoice transition with it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(sessCtx context.Context) (interface{}, error)) (interface{}, error)
}
