package domain

import "time"

// SalonSettings общие настройки салона (единственная строка в БД)
type SalonSettings struct {
	ID             int64
	Name           string
	Timezone       string // IANA, например "Europe/Moscow"
	Currency       string // ISO 4217, например "RUB"
	TaxRatePercent float64
	UpdatedAt      time.Time
}

// Location возвращает *time.Location салона
// При некорректной таймзоне возвращает UTC
func (s *SalonSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
