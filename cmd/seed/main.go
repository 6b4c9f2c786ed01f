package main

import (
	"errors"
	"log"

	"github.com/paulaveiga/doceria-api/config"
	"github.com/paulaveiga/doceria-api/database"
)

// Seeds the demo catalog. Separate from the server on purpose: the
// storefront never triggers seeding.
func main() {
	if err := config.LoadENV(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	if err := database.Seed(store.DB()); err != nil {
		if errors.Is(err, database.ErrAlreadySeeded) {
			log.Println("Catalog already seeded, nothing to do")
			return
		}
		log.Fatal("Seeding failed: ", err)
	}

	log.Println("Demo catalog seeded successfully")
}
