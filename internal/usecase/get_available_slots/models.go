package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	EmployeeID int64     // ID сотрудника
	ServiceID  int64     // ID услуги
	FromDate   time.Time // Начало диапазона (без времени)
	ToDate     time.Time // Конец диапазона включительно (без времени)
}

// Response модель ответа: слоты, сгруппированные по календарным дням салона
type Response struct {
	EmployeeID int64      // ID сотрудника
	ServiceID  int64      // ID услуги
	Days       []DaySlots // По одному элементу на каждый день диапазона
}

// DaySlots слоты одного календарного дня
type DaySlots struct {
	Date  time.Time // Дата (в таймзоне салона, без времени)
	Slots []Slot    // Доступные слоты; пустой список, если день недоступен
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги в минутах
}
