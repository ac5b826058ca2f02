package providers

import "errors"

var (
	// ErrProviderNotFound возвращается, когда мастер не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNotEligible возвращается, когда мастер не проходит порог верификации
	ErrNotEligible = errors.New("provider is not eligible for verification")

	// ErrAlreadyVerified возвращается, когда мастер уже верифицирован
	ErrAlreadyVerified = errors.New("provider is already verified")

	// ErrAlreadyRequested возвращается при повторном запросе верификации
	ErrAlreadyRequested = errors.New("verification already requested")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("providers service: internal error")
)
