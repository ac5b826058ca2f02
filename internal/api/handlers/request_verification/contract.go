package request_verification

import "context"

type ProviderService interface {
	RequestVerification(ctx context.Context, providerID, actorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
