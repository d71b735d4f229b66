package main

import (
	"context"
	"log"

	"sdo-ticketing/pkg/config"
	"sdo-ticketing/pkg/database/postgresql"
	"sdo-ticketing/seeders"
)

func main() {
	cfg := config.New()

	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if err := seeders.Run(context.Background(), db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}
