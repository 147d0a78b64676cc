package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"jadara-labs.backend/internal/domain/entities"
	"jadara-labs.backend/internal/infrastructure/models"
	"jadara-labs.backend/pkg/utils"
)

// SmsLogRepository implements dispatch log operations
type SmsLogRepository struct {
	db *gorm.DB
}

// NewSmsLogRepository creates a new SMS log repository
func NewSmsLogRepository(db *gorm.DB) *SmsLogRepository {
	return &SmsLogRepository{db: db}
}

// Create records one dispatch attempt
func (r *SmsLogRepository) Create(ctx context.Context, log *entities.SmsLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	m := &models.SmsLog{
		ID:               log.ID,
		UserID:           log.UserID,
		Recipient:        log.Recipient,
		Message:          log.Message,
		SenderID:         log.SenderID,
		Status:           string(log.Status),
		CreditsUsed:      log.CreditsUsed,
		ProviderResponse: log.ProviderResponse,
		CreatedAt:        log.CreatedAt,
	}

	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// GetByUserID returns a user's SMS logs, newest first
func (r *SmsLogRepository) GetByUserID(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.SmsLog, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.SmsLog{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if p.Limit > 0 {
		query = query.Limit(p.Limit).Offset(p.CalculateOffset())
	}

	var rows []models.SmsLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*entities.SmsLog, 0, len(rows))
	for i := range rows {
		m := rows[i]
		logs = append(logs, &entities.SmsLog{
			ID:               m.ID,
			UserID:           m.UserID,
			Recipient:        m.Recipient,
			Message:          m.Message,
			SenderID:         m.SenderID,
			Status:           entities.SmsStatus(m.Status),
			CreditsUsed:      m.CreditsUsed,
			ProviderResponse: m.ProviderResponse,
			CreatedAt:        m.CreatedAt,
		})
	}
	return logs, total, nil
}
