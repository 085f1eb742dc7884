package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"stockdesk/collections"
	"stockdesk/config"
	"stockdesk/handlers"
	"stockdesk/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()
	desk := handlers.NewDesk(app, newStore(app, cfg), cfg.Rules(), cfg.DefaultProfile())

	// Create collections, seed demo data and normalise legacy statuses on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if cfg.SeedDemo {
			if err := collections.Seed(app); err != nil {
				log.Printf("Warning: seed data failed: %v", err)
			}
		}
		if err := collections.MigrateLegacyStatuses(app, cfg.Statuses); err != nil {
			log.Printf("Warning: status migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		handlers.Register(se.Router.Group("/api/desk"), desk)
		return se.Next()
	})

	app.RootCmd.AddCommand(newExportCommand(app, cfg))

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// newStore picks the document store named by DESK_STORE.
func newStore(app core.App, cfg *config.Config) services.DocumentStore {
	if cfg.Store == config.StoreMemory {
		log.Printf("Warning: documents are kept in memory and lost on restart")
		return services.NewMemoryStore()
	}
	return services.NewRecordStore(app)
}
