package main

import (
	"net/http"

	"github.com/MosinFAM/cms-moderation/internal/api"
	"github.com/MosinFAM/cms-moderation/internal/bulk"
	"github.com/MosinFAM/cms-moderation/internal/comments"
	"github.com/MosinFAM/cms-moderation/internal/config"
	"github.com/MosinFAM/cms-moderation/internal/db"
	"github.com/MosinFAM/cms-moderation/internal/storage"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatal("Failed to load config: ", err)
	}

	var store storage.Storage

	if cfg.Storage.Type == "postgres" {
		if cfg.Storage.DSN == "" {
			logrus.Fatal("DATABASE_URL is not set")
		}
		dbConn, err := db.Connect(cfg.Storage.DSN)
		if err != nil {
			logrus.Fatal("Failed to connect to DB: ", err)
		}
		if err := storage.Migrate(dbConn, cfg.Storage.MigrationsDir); err != nil {
			logrus.Fatal("Failed to initialize DB: ", err)
		}
		store = storage.NewPostgresStorage(dbConn, cfg.Storage.DSN)
	} else if cfg.Storage.Type == "in-memory" {
		store = storage.NewMemoryStorage()
	} else {
		logrus.Fatalf("Unsupported storage type: %s", cfg.Storage.Type)
	}

	server := api.NewServer(
		comments.NewManager(store, cfg.Moderation.AllowAnonymous),
		bulk.NewDispatcher(store),
		api.HeaderIdentity{},
	)

	// Настройка CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
	})

	logrus.Infof("Server is running on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, c.Handler(server.Router())); err != nil {
		logrus.Fatal("Server stopped: ", err)
	}
}
