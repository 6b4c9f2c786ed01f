package app

import (
	"fmt"
	"log"

	"github.com/paulaveiga/doceria-api/api"
	"github.com/paulaveiga/doceria-api/config"
	"github.com/paulaveiga/doceria-api/database"
	"github.com/paulaveiga/doceria-api/router"
	cronsvc "github.com/paulaveiga/doceria-api/services/cron"
	instagramsvc "github.com/paulaveiga/doceria-api/services/instagram"
)

// SetupAndRunAPIServer boots the database, background jobs and HTTP server
func SetupAndRunAPIServer() error {
	if err := config.LoadENV(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	store, err := database.StartGORM()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := database.EnsureDefaultAdmin(store.DB(), getEnv.ADMIN_EMAIL, getEnv.ADMIN_PASSWORD, getEnv.ADMIN_NAME); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	syncService := instagramsvc.NewSyncService(store.DB(), instagramsvc.NewClient())

	cronManager := cronsvc.NewCronManager(store.DB(), syncService)
	if err := cronManager.Start(); err != nil {
		return fmt.Errorf("failed to start cron jobs: %w", err)
	}
	defer cronManager.Stop()

	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))

	router.SetupRoutes(server.GetEngine(), store, syncService)

	return server.Run()
}
