// Command seed creates or repairs the master admin account. Run it once
// against a fresh database, or again after rotating the master password.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/config"
	"github.com/amohooo/cv-app/internal/db"
	"github.com/amohooo/cv-app/internal/model"
	"github.com/amohooo/cv-app/internal/repository"
)

const bcryptCost = 10

func main() {
	log.Println("Starting master admin setup...")

	_ = godotenv.Load()
	cfg := config.Load()

	username := getEnv("MASTER_USERNAME", "master")
	password := os.Getenv("MASTER_PASSWORD")
	if password == "" {
		log.Fatal("MASTER_PASSWORD must be set")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx := context.Background()
	admins := repository.NewAdminRepository(gormDB)

	existing, err := admins.FindByUsername(ctx, username)
	switch {
	case err == nil:
		// Reset the password and make sure the account is usable.
		if err := admins.Update(ctx, existing.ID, map[string]interface{}{
			"password_hash": string(hash),
			"role":          model.RoleMaster,
			"is_active":     true,
		}); err != nil {
			log.Fatalf("Failed to update master admin: %v", err)
		}
		log.Printf("Master admin %q updated", username)
	case err == gorm.ErrRecordNotFound:
		admin := &model.Admin{
			Username:     username,
			PasswordHash: string(hash),
			Role:         model.RoleMaster,
			IsActive:     true,
		}
		if err := admins.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create master admin: %v", err)
		}
		log.Printf("Master admin %q created with id %d", username, admin.ID)
	default:
		log.Fatalf("Failed to look up master admin: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
