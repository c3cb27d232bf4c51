package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// SaveConfigRequest запрос на создание или обновление конфигурации бронирования
// Пара (employeeId, serviceId) задаёт уровень иерархии; null означает "для всех"
type SaveConfigRequest struct {
	UserID                 int64  `json:"-"`
	EmployeeID             *int64 `json:"employeeId,omitempty"`
	ServiceID              *int64 `json:"serviceId,omitempty"`
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	BufferMinutes          int    `json:"bufferMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"`
	MinNoticeMinutes       int    `json:"minNoticeMinutes"`
}

// DeleteConfigRequest запрос на удаление конфигурации на одном уровне иерархии
type DeleteConfigRequest struct {
	UserID     int64  `json:"-"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	ServiceID  *int64 `json:"serviceId,omitempty"`
}

// Response модели

// ConfigResponse ответ с данными конфигурации бронирования
type ConfigResponse struct {
	ID                     int64     `json:"id"`
	EmployeeID             *int64    `json:"employeeId,omitempty"`
	ServiceID              *int64    `json:"serviceId,omitempty"`
	SlotGranularityMinutes int       `json:"slotGranularityMinutes"`
	BufferMinutes          int       `json:"bufferMinutes"`
	AdvanceBookingDays     int       `json:"advanceBookingDays"`
	MinNoticeMinutes       int       `json:"minNoticeMinutes"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BookingConfig) *ConfigResponse {
	if c == nil {
		return nil
	}
	return &ConfigResponse{
		ID:                     c.ID,
		EmployeeID:             c.EmployeeID,
		ServiceID:              c.ServiceID,
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		BufferMinutes:          c.BufferMinutes,
		AdvanceBookingDays:     c.AdvanceBookingDays,
		MinNoticeMinutes:       c.MinNoticeMinutes,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.BookingConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}
	for _, c := range configs {
		if cResp := FromDomainConfig(c); cResp != nil {
			resp.Configs = append(resp.Configs, *cResp)
		}
	}
	return resp
}

// ResolvedConfigResponse действующая конфигурация после разрешения иерархии
// employeeId/serviceId указывают уровень, с которого взяты значения
type ResolvedConfigResponse struct {
	EmployeeID             *int64 `json:"employeeId,omitempty"`
	ServiceID              *int64 `json:"serviceId,omitempty"`
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	BufferMinutes          int    `json:"bufferMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"`
	MinNoticeMinutes       int    `json:"minNoticeMinutes"`
}

// FromDomainResolvedConfig конвертирует разрешённую domain модель в DTO
func FromDomainResolvedConfig(c *domain.BookingConfig) *ResolvedConfigResponse {
	if c == nil {
		return nil
	}
	return &ResolvedConfigResponse{
		EmployeeID:             c.EmployeeID,
		ServiceID:              c.ServiceID,
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		BufferMinutes:          c.BufferMinutes,
		AdvanceBookingDays:     c.AdvanceBookingDays,
		MinNoticeMinutes:       c.MinNoticeMinutes,
	}
}
