package dbmetrics

import "context"

type ctxKey int

const executorKey ctxKey = iota

// WithExecutor stores a transaction-bound executor in the context.
// Transaction managers use it to make repositories transparently join
// an open transaction.
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey, executor)
}

// GetExecutor returns the executor stored in the context, or fallback
// when the context carries none.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(executorKey).(DBExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction reports whether the context carries a transaction-bound
// executor. Repositories use it to decide on row locking suffixes.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(DBExecutor)
	return ok
}
