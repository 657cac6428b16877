package main

import (
	"github.com/footyguess/gameserver/catalog"
	"github.com/footyguess/gameserver/config"
	"github.com/footyguess/gameserver/logger"
	"github.com/footyguess/gameserver/persistence"
	"github.com/footyguess/gameserver/server"
)

func main() {
	logger.Init(false)
	defer logger.Sync()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Server.Development {
		logger.Init(true)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()
	logger.Log.Info("Database connection successful.")

	footballers, questions, err := loadCatalogs(store)
	if err != nil {
		logger.Log.Fatalf("Failed to load catalogs: %v", err)
	}
	logger.Log.Infof("Catalog ready: %d footballers, %d questions", footballers.Len(), questions.Len())

	gameServer := server.NewGameServer(cfg, store, footballers, questions)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

func openStore(cfg *config.Config) (persistence.Store, error) {
	pg := cfg.Database.Postgres
	switch cfg.Database.Driver {
	case "pq":
		return persistence.NewPQStore(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	default:
		return persistence.NewGormStore(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	}
}

// loadCatalogs reads the footballer and question catalogs from the
// database, seeding the built-in set on first run.
func loadCatalogs(store persistence.Store) (*catalog.Footballers, *catalog.Questions, error) {
	footballers, err := store.LoadFootballers()
	if err != nil {
		return nil, nil, err
	}
	questions, err := store.LoadQuestions()
	if err != nil {
		return nil, nil, err
	}

	if len(footballers) == 0 || len(questions) == 0 {
		logger.Log.Info("Catalog empty, seeding built-in set.")
		footballers = catalog.SeedFootballers()
		questions = catalog.SeedQuestions()
		if err := store.SeedCatalog(footballers, questions); err != nil {
			return nil, nil, err
		}
	}

	return catalog.NewFootballers(footballers), catalog.NewQuestions(questions), nil
}
