package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lumaxtec/site-backend/config"
	"github.com/lumaxtec/site-backend/domain/content"
	"github.com/lumaxtec/site-backend/domain/product"
	"github.com/lumaxtec/site-backend/middleware"
	"github.com/lumaxtec/site-backend/utils"
)

// Seeds a local database with an admin account and the snapshot catalog.
// Not meant for production.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	config.InitConfig()
	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, db.Rebind(
		"INSERT INTO users (email, password, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"),
		adminEmail, hashed, middleware.RoleAdmin, now, now)
	if err != nil {
		if content.IsUniqueViolation(err) {
			log.Printf("Admin %s already exists, skipping", adminEmail)
		} else {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	} else {
		log.Printf("Seeded admin: %s", adminEmail)
	}

	catalog, err := product.Snapshot()
	if err != nil {
		log.Fatalf("Failed to load snapshot catalog: %v", err)
	}

	rows := make([]product.Row, 0, len(catalog.DE)+len(catalog.EN))
	for _, p := range catalog.DE {
		rows = append(rows, product.ToRow(p, content.LanguageDE))
	}
	for _, p := range catalog.EN {
		rows = append(rows, product.ToRow(p, content.LanguageEN))
	}

	if err := product.NewStore(db).BulkUpsert(ctx, rows); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Printf("Seeded %d product rows", len(rows))

	log.Println("Seeding completed")
}
