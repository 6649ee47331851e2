package env

import (
	"errors"
	"os"
	"strings"

	"gacha_roller/internal/config"
)

const (
	storeURLEnvName     = "STORE_BASE_URL"
	playerNameEnvName   = "PLAYER_NAME"
	snapshotPathEnvName = "SNAPSHOT_PATH"

	defaultSnapshotPath = "save_local.json"
)

type remoteConfig struct {
	baseURL      string
	playerName   string
	snapshotPath string
}

// NewRemoteConfig Читает настройки подключения к общему хранилищу.
// STORE_BASE_URL опционален: без него клиент работает оффлайн
func NewRemoteConfig() (config.RemoteConfig, error) {
	name := os.Getenv(playerNameEnvName)
	if len(name) == 0 {
		return nil, errors.New("player name not found")
	}

	snapshot := os.Getenv(snapshotPathEnvName)
	if len(snapshot) == 0 {
		snapshot = defaultSnapshotPath
	}

	return &remoteConfig{
		baseURL:      strings.TrimRight(os.Getenv(storeURLEnvName), "/"),
		playerName:   name,
		snapshotPath: snapshot,
	}, nil
}

func (cfg *remoteConfig) BaseURL() string {
	return cfg.baseURL
}

func (cfg *remoteConfig) PlayerName() string {
	return cfg.playerName
}

func (cfg *remoteConfig) SnapshotPath() string {
	return cfg.snapshotPath
}
