package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - admin account...")

	username := getenv("ADMIN_USERNAME", "admin")

	var existingID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&existingID)
	if err == nil {
		log.Println("    - admin already exists, skipping")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin existence: %w", err)
	}

	password := getenv("ADMIN_PASSWORD", "changeme-on-first-login")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		"INSERT INTO users (username, password, role) VALUES ($1, $2, 'Admin')",
		username, string(hash))
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
