package model

import "errors"

// Классификация ошибок удалённого хранилища (см. политику в persist/sync)
var (
	// ErrRemoteUnavailable Временная ошибка сети или сериализации,
	// следующий периодический цикл повторит попытку
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrVersionIncompatible Формат удалённого сохранения несовместим.
	// Старая запись удаляется, игрок начинает заново
	ErrVersionIncompatible = errors.New("incompatible save format version")

	// ErrBanned / ErrKicked Модерация. Фатально, процесс завершается
	ErrBanned = errors.New("player is banned")
	ErrKicked = errors.New("player is kicked")

	// ErrEventNotFound Записи ивента больше нет в общем хранилище
	ErrEventNotFound = errors.New("event not found")

	// ErrSaveNotFound У игрока ещё нет удалённого сохранения
	ErrSaveNotFound = errors.New("save not found")
)
