package model

import "time"

const (
	// DefaultSuffixBoost Множитель шанса суффикса по умолчанию
	DefaultSuffixBoost = 20.0
	// DefaultEventDuration Длительность ивента по умолчанию
	DefaultEventDuration = 150 * time.Second
	// UnknownSuffix Заглушка для битых удалённых записей без имени суффикса
	UnknownSuffix = "???"
)

// ActiveEvent Активный временный модификатор. Положительный ID — запись из
// общего хранилища, отрицательный — локально сгенерированный ивент
type ActiveEvent struct {
	ID          int64
	Name        string
	SuffixName  string
	SuffixBoost float64 // Во сколько раз повышается шанс целевого суффикса
	LuckMult    float64 // 1.0 — не влияет
	MoneyMult   float64 // 1.0 — не влияет
	RollTime    float64 // Масштаб кулдауна ролла, 1.0 — не влияет
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedFrom string
}

// IsActive Ивент активен, если now в полуинтервале [StartsAt, EndsAt)
func (e ActiveEvent) IsActive(now time.Time) bool {
	return !now.Before(e.StartsAt) && now.Before(e.EndsAt)
}

// Remote Ивент пришёл из общего хранилища
func (e ActiveEvent) Remote() bool {
	return e.ID > 0
}

// EventDraft Черновик ивента перед публикацией в общее хранилище
type EventDraft struct {
	Name        string
	SuffixName  string
	SuffixBoost float64
	LuckMult    float64
	MoneyMult   float64
	RollTime    float64
	Duration    time.Duration
}
