package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mtgbinder/mtgbinder-api/config"
	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
)

// Seeds a bootstrap admin account so role-gated routes are reachable on a
// fresh database. Registration always creates members, so the first admin
// has to come from outside the API.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := getenv("SEED_ADMIN_EMAIL", "admin@mtgbinder.local")
	password := getenv("SEED_ADMIN_PASSWORD", "changeme")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO accounts (email, role_id)
		VALUES ($1, 1)
		ON CONFLICT (email) DO UPDATE SET role_id = 1
		RETURNING account_id
	`, email).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO credentials (account_id, hashed_password)
		VALUES ($1, $2)
		ON CONFLICT (account_id) DO UPDATE SET hashed_password = EXCLUDED.hashed_password
	`, id, hash); err != nil {
		log.Fatalf("failed to seed admin credential: %v", err)
	}

	fmt.Printf("seeded admin account: accountid=%d email=%s\n", id, email)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
