package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var defaultDeviceTypes = []string{
	"Laptop",
	"Desktop",
	"Tablet",
	"Printer",
	"Projector",
	"Router",
}

func seedDeviceCatalog(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - device catalog...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM device_types").Scan(&count); err != nil {
		return fmt.Errorf("count device types: %w", err)
	}
	if count > 0 {
		log.Println("    - catalog already populated, skipping")
		return nil
	}

	for _, name := range defaultDeviceTypes {
		if _, err := db.Exec(ctx,
			"INSERT INTO device_types (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("insert device type %q: %w", name, err)
		}
	}
	return nil
}
