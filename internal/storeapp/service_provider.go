package storeapp

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	eventAPI "gacha_roller/internal/api/event"
	saveAPI "gacha_roller/internal/api/save"
	"gacha_roller/internal/config"
	"gacha_roller/internal/config/env"
	"gacha_roller/internal/repository"
	"gacha_roller/internal/repository/pg_event_repo"
	"gacha_roller/internal/repository/pg_save_repo"
	"gacha_roller/internal/service"
	"gacha_roller/internal/service/store"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Event bits
	eventRepo repository.EventStoreRepository
	eventServ service.StoreEventService
	eventHand *eventAPI.Handler

	// Save bits
	saveRepo repository.StoreSaveRepository
	saveServ service.StoreSaveService
	saveHand *saveAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) EventRepository(ctx context.Context) repository.EventStoreRepository {
	if sp.eventRepo == nil {
		sp.eventRepo = pg_event_repo.NewEventRepository(sp.DBClient(ctx))
	}
	return sp.eventRepo
}

func (sp *ServiceProvider) EventService(ctx context.Context) service.StoreEventService {
	if sp.eventServ == nil {
		sp.eventServ = store.NewEventService(sp.EventRepository(ctx))
	}
	return sp.eventServ
}

func (sp *ServiceProvider) EventHandler(ctx context.Context) *eventAPI.Handler {
	if sp.eventHand == nil {
		sp.eventHand = eventAPI.NewHandler(eventAPI.HandlerDeps{
			Serv: sp.EventService(ctx),
		})
	}
	return sp.eventHand
}

func (sp *ServiceProvider) SaveRepository(ctx context.Context) repository.StoreSaveRepository {
	if sp.saveRepo == nil {
		sp.saveRepo = pg_save_repo.NewSaveRepository(sp.DBClient(ctx))
	}
	return sp.saveRepo
}

func (sp *ServiceProvider) SaveService(ctx context.Context) service.StoreSaveService {
	if sp.saveServ == nil {
		sp.saveServ = store.NewSaveService(sp.SaveRepository(ctx), sp.TXManager(ctx))
	}
	return sp.saveServ
}

func (sp *ServiceProvider) SaveHandler(ctx context.Context) *saveAPI.Handler {
	if sp.saveHand == nil {
		sp.saveHand = saveAPI.NewHandler(saveAPI.HandlerDeps{Serv: sp.SaveService(ctx)})
	}
	return sp.saveHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Event endpoints
		eventHandler := sp.EventHandler(ctx)
		r.Route("/events", func(rr chi.Router) {
			rr.Post("/", eventHandler.Create)
			rr.Get("/active", eventHandler.ListActive)
			rr.Get("/{id}", eventHandler.Get)
			rr.Delete("/{id}", eventHandler.Delete)
		})

		// Save endpoints
		saveHandler := sp.SaveHandler(ctx)
		r.Route("/saves", func(rr chi.Router) {
			rr.Get("/{player}", saveHandler.Get)
			rr.Put("/{player}", saveHandler.Put)
			rr.Delete("/{player}", saveHandler.Delete)
		})

		sp.router = r
	}

	return sp.router
}
