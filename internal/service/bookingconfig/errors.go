package bookingconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("booking config not found")

	// ErrInvalidConfig возвращается при некорректных параметрах конфигурации
	ErrInvalidConfig = errors.New("invalid booking config")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
