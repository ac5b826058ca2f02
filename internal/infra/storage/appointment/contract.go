package appointment

import (
	"context"
	"database/sql"

	"github.com/glamly/BSP-SchedulingService/pkg/dbmetrics"
)

// Shared executor interfaces from dbmetrics
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner starts transactions. Satisfied by *sql.DB and *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
