package auth

import "errors"

var (
	// ErrEmailTaken возвращается, когда email уже занят
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive возвращается при попытке входа деактивированного пользователя
	ErrUserInactive = errors.New("user is inactive")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
