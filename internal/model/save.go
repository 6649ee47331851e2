package model

import "time"

// SaveRecord Запись сохранения в общем хранилище. State хранится как
// непрозрачный JSON-документ, флаги модерации живут отдельными колонками
// и выставляются только администратором
type SaveRecord struct {
	Player    string
	Version   int
	State     []byte // Сериализованное состояние игрока
	Banned    bool
	Kicked    bool
	UpdatedAt time.Time
}
