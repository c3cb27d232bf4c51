package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки салона не найдены
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrInvalidSettings возвращается при некорректных настройках
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
