// Command apikey-gen mints an API key for an existing user without going
// through the HTTP API. Intended for operators seeding integrations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jadara-labs.backend/internal/config"
	"jadara-labs.backend/internal/domain/entities"
	"jadara-labs.backend/internal/infrastructure/repositories"
	"jadara-labs.backend/internal/usecases"
)

func main() {
	userIDFlag := flag.String("user", "", "user ID (uuid) that will own the key")
	nameFlag := flag.String("name", "default", "key name")
	daysFlag := flag.Int("days", 0, "expiry in days (0 = never)")
	flag.Parse()

	if *userIDFlag == "" {
		log.Fatal("usage: apikey-gen -user <uuid> [-name <name>] [-days <n>]")
	}
	userID, err := uuid.Parse(*userIDFlag)
	if err != nil {
		log.Fatalf("invalid user ID: %v", err)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.Database.URL()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, userRepo)

	ctx := context.Background()
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Fatalf("user lookup failed: %v", err)
	}

	resp, err := apiKeyUsecase.CreateApiKey(ctx, user.ID, &entities.CreateApiKeyInput{
		KeyName:       *nameFlag,
		ExpiresInDays: *daysFlag,
	})
	if err != nil {
		log.Fatalf("failed to create api key: %v", err)
	}

	fmt.Printf("API key for %s (%s):\n", user.Email, resp.KeyName)
	fmt.Printf("  %s\n", resp.ApiKey)
	if resp.ExpiresAt != nil {
		fmt.Printf("  expires: %s\n", resp.ExpiresAt.Format("2006-01-02"))
	}
	fmt.Println("Store it now; it cannot be retrieved again.")
}
