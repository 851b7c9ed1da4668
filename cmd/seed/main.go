package main

import (
	"context"
	"log"
	"os"

	"github.com/ev-g-hash/polyvideos/internal/config"
	"github.com/ev-g-hash/polyvideos/internal/database"
	"github.com/ev-g-hash/polyvideos/internal/domain/auth"
	"github.com/ev-g-hash/polyvideos/internal/domain/video"
)

// Seeds the schema and the single admin account the gallery needs.
// Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&auth.User{}, &video.Video{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	repo := auth.NewRepository(db)

	if existing, err := repo.GetByUsername(ctx, username); err == nil && existing != nil {
		log.Printf("Admin %q already exists (id=%d), nothing to do", username, existing.ID)
		return
	}

	svc := auth.NewService(repo, nil)
	user, err := svc.CreateUser(ctx, username, password, auth.RoleAdmin)
	if err != nil {
		log.Fatal("Creating admin failed:", err)
	}

	log.Printf("Created admin %q (id=%d)", user.Username, user.ID)
}
