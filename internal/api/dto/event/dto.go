package event

import "time"

// Record Строка общего хранилища ивентов. Нулевые multiplier-поля при
// чтении трактуются как значения по умолчанию
type Record struct {
	ID               int64     `json:"id,omitempty"`               // Назначается сервером
	EventName        string    `json:"event_name"`                 // Отображаемое имя
	SuffixName       string    `json:"suffix_name,omitempty"`      // Целевой суффикс
	SuffixMultiplier float64   `json:"suffix_multiplier,omitempty"` // По умолчанию 20.0
	CreatedFrom      string    `json:"created_from"`               // Кто создал
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	LuckMultiplier   float64   `json:"luck_multiplier,omitempty"`  // По умолчанию 1.0
	MoneyMultiplier  float64   `json:"money_multiplier,omitempty"` // По умолчанию 1.0
	RollTime         float64   `json:"roll_time,omitempty"`        // По умолчанию 1.0
}
