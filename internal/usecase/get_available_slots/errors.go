package get_available_slots

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или неактивен
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("service is not active")

	// ErrInvalidDateRange возвращается при некорректном диапазоне дат
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrRangeTooWide возвращается, когда диапазон превышает максимально допустимый
	ErrRangeTooWide = errors.New("date range is too wide")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
