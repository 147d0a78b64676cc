package jobs

import (
	"context"
	"log"
	"time"

	"jadara-labs.backend/internal/infrastructure/repositories"
)

// ApiKeyExpiryJob handles deactivating API keys past their expiry
type ApiKeyExpiryJob struct {
	repo     *repositories.ApiKeyRepository
	interval time.Duration
	stop     chan struct{}
}

func NewApiKeyExpiryJob(repo *repositories.ApiKeyRepository) *ApiKeyExpiryJob {
	return &ApiKeyExpiryJob{
		repo:     repo,
		interval: 1 * time.Minute, // Check every minute
		stop:     make(chan struct{}),
	}
}

func (j *ApiKeyExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting API key expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ API key expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ API key expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredKeys(ctx)
		}
	}
}

func (j *ApiKeyExpiryJob) Stop() {
	close(j.stop)
}

func (j *ApiKeyExpiryJob) processExpiredKeys(ctx context.Context) {
	count, err := j.repo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Error deactivating expired API keys: %v", err)
		return
	}
	if count > 0 {
		log.Printf("✅ Deactivated %d expired API keys", count)
	}
}
