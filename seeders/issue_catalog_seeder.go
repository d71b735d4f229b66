package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var defaultIssues = map[string][]string{
	"Hardware": {
		"No power",
		"Broken screen",
		"Defective keyboard",
		"Defective touchpad",
		"Battery not charging",
		"Overheating",
	},
	"Software": {
		"Operating system won't boot",
		"Application crash",
		"LIS account issue",
		"Email account issue",
		"Malware infection",
	},
}

func seedIssueCatalog(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - issue catalog...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM issues").Scan(&count); err != nil {
		return fmt.Errorf("count issues: %w", err)
	}
	if count > 0 {
		log.Println("    - catalog already populated, skipping")
		return nil
	}

	for category, names := range defaultIssues {
		for _, name := range names {
			if _, err := db.Exec(ctx,
				"INSERT INTO issues (name, category) VALUES ($1, $2)", name, category); err != nil {
				return fmt.Errorf("insert issue %q: %w", name, err)
			}
		}
	}
	return nil
}
