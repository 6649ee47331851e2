package app

import (
	"gacha_roller/internal/config"
	"gacha_roller/internal/config/env"
	"gacha_roller/internal/repository"
	"gacha_roller/internal/repository/local_save_repo"
	"gacha_roller/internal/repository/remote_event_repo"
	"gacha_roller/internal/repository/remote_save_repo"
	"gacha_roller/internal/service"
	"gacha_roller/internal/service/economy"
	"gacha_roller/internal/service/events"
	"gacha_roller/internal/service/game"
	"gacha_roller/internal/service/persist"
	"gacha_roller/internal/service/quests"
	"gacha_roller/internal/service/roll"
	syncserv "gacha_roller/internal/service/sync"
)

type ServiceProvider struct {
	// Конфиги
	balanceCfg config.BalanceConfig
	remoteCfg  config.RemoteConfig

	// Репозитории
	eventRepo repository.EventStoreRepository
	saveRepo  repository.SaveStoreRepository
	localRepo repository.LocalSnapshotRepository

	// Сервисы
	rollServ    service.RollService
	econServ    service.EconomyService
	eventsServ  service.EventService
	persistServ service.PersistService
	syncServ    service.SyncService
	gameServ    *game.Serv

	// Уведомления
	hub *game.Hub
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) BalanceCfg() config.BalanceConfig {
	if sp.balanceCfg == nil {
		cfg, err := env.NewBalanceConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get balance config: " + err.Error())
		}
		sp.balanceCfg = cfg
	}
	return sp.balanceCfg
}

func (sp *ServiceProvider) RemoteCfg() config.RemoteConfig {
	if sp.remoteCfg == nil {
		cfg, err := env.NewRemoteConfig()
		if err != nil {
			panic("failed to get remote config: " + err.Error())
		}
		sp.remoteCfg = cfg
	}
	return sp.remoteCfg
}

// EventRepo nil, если общее хранилище не настроено
func (sp *ServiceProvider) EventRepo() repository.EventStoreRepository {
	if sp.eventRepo == nil && sp.RemoteCfg().BaseURL() != "" {
		sp.eventRepo = remote_event_repo.NewEventStoreRepository(sp.RemoteCfg().BaseURL())
	}
	return sp.eventRepo
}

// SaveRepo nil, если общее хранилище не настроено
func (sp *ServiceProvider) SaveRepo() repository.SaveStoreRepository {
	if sp.saveRepo == nil && sp.RemoteCfg().BaseURL() != "" {
		sp.saveRepo = remote_save_repo.NewSaveStoreRepository(sp.RemoteCfg().BaseURL())
	}
	return sp.saveRepo
}

func (sp *ServiceProvider) LocalRepo() repository.LocalSnapshotRepository {
	if sp.localRepo == nil {
		sp.localRepo = local_save_repo.NewSnapshotRepository(sp.RemoteCfg().SnapshotPath())
	}
	return sp.localRepo
}

func (sp *ServiceProvider) RollService() service.RollService {
	if sp.rollServ == nil {
		cfg := sp.BalanceCfg()
		sp.rollServ = roll.NewRollService(cfg.Prefixes(), cfg.Suffixes(), nil)
	}
	return sp.rollServ
}

func (sp *ServiceProvider) EconomyService() service.EconomyService {
	if sp.econServ == nil {
		sp.econServ = economy.NewEconomyService()
	}
	return sp.econServ
}

func (sp *ServiceProvider) EventService() service.EventService {
	if sp.eventsServ == nil {
		var names []string
		for _, sf := range sp.BalanceCfg().Suffixes() {
			names = append(names, sf.Name)
		}
		sp.eventsServ = events.NewEventService(names, sp.RemoteCfg().PlayerName())
	}
	return sp.eventsServ
}

func (sp *ServiceProvider) PersistService() service.PersistService {
	if sp.persistServ == nil {
		sp.persistServ = persist.NewPersistService(
			sp.SaveRepo(),
			sp.LocalRepo(),
			sp.RemoteCfg().PlayerName(),
			sp.BalanceCfg().StartingDice(),
		)
	}
	return sp.persistServ
}

func (sp *ServiceProvider) Hub() *game.Hub {
	if sp.hub == nil {
		sp.hub = game.NewHub()
	}
	return sp.hub
}

// GameService Собирает оркестратор и, при настроенном хранилище, гейтвей
// синхронизации поверх него
func (sp *ServiceProvider) GameService() *game.Serv {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(
			sp.BalanceCfg(),
			sp.RollService(),
			sp.EconomyService(),
			sp.EventService(),
			sp.PersistService(),
			sp.Hub(),
		)
		sp.gameServ.AttachQuestJournal(quests.NewQuestJournal())

		if sp.EventRepo() != nil {
			sp.syncServ = syncserv.NewSyncService(
				sp.EventRepo(),
				sp.EventService(),
				sp.gameServ,
				sp.Hub(),
				sp.RemoteCfg().PlayerName(),
			)
			sp.gameServ.AttachSync(sp.syncServ)
		}
	}
	return sp.gameServ
}
