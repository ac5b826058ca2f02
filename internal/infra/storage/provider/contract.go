package provider

import "github.com/glamly/BSP-SchedulingService/pkg/dbmetrics"

// Shared executor interfaces from dbmetrics
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
