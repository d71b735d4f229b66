// Package seeders populates a fresh database with the records the portal
// needs on day one: the admin account and the issue and device catalogs.
package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Run(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("seeding database...")

	if err := seedAdminUser(ctx, db); err != nil {
		return err
	}
	if err := seedIssueCatalog(ctx, db); err != nil {
		return err
	}
	if err := seedDeviceCatalog(ctx, db); err != nil {
		return err
	}

	log.Println("seeding complete")
	return nil
}
