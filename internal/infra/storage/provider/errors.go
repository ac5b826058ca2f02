package provider

import "errors"

var (
	// ErrProviderNotFound is returned when the provider does not exist
	ErrProviderNotFound = errors.New("provider.repository: provider not found")

	// ErrServiceNotFound is returned when the service does not exist
	ErrServiceNotFound = errors.New("provider.repository: service not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("provider.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("provider.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("provider.repository: failed to scan row")
)
