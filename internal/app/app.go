package app

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"gacha_roller/internal/config"
	"gacha_roller/internal/model"
	"gacha_roller/internal/service/game"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameServ := s.ServiceProvider.GameService()
	go s.consumeNotifications(ctx)

	if s.ServiceProvider.EventRepo() == nil {
		log.Printf("shared store is not configured, running offline")
	}
	log.Printf("starting game loop for player %s", s.ServiceProvider.RemoteCfg().PlayerName())

	err = gameServ.Run(ctx)
	if errors.Is(err, model.ErrBanned) || errors.Is(err, model.ErrKicked) {
		log.Printf("session refused by shared store: %v", err)
		return err
	}
	return err
}

// consumeNotifications Журнальный потребитель уведомлений. Встаёт на место
// слоя представления: интерфейс подписывается на тот же хаб тем же способом
func (s *App) consumeNotifications(ctx context.Context) {
	ch := s.ServiceProvider.Hub().Subscribe(32)

	for {
		select {
		case <-ctx.Done():
			return
		case n := <-ch:
			switch n.Kind {
			case game.NoteItemRolled:
				log.Printf("rolled: %s%s (rarity %v, value %s)",
					n.Item.Prefix, suffixLabel(n.Item.Suffix), n.Item.Rarity, n.Item.TotalValue().String())
			case game.NoteActiveEventsChanged:
				log.Printf("active events: %d", len(n.Events))
			case game.NotePublishFailed:
				log.Printf("event publish failed: %v", n.Err)
			case game.NoteStatsChanged:
				// Статистику интерфейс перечитывает сам через Stats,
				// в журнал её не пишем
			}
		}
	}
}

func suffixLabel(suffix string) string {
	if suffix == "" {
		return ""
	}
	return " " + suffix
}
