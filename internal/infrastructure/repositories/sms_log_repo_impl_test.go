package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jadara-labs.backend/internal/domain/entities"
	"jadara-labs.backend/pkg/utils"
)

func TestSmsLogRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	createSmsLogTable(t, db)
	repo := NewSmsLogRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	statuses := []entities.SmsStatus{
		entities.SmsStatusSent,
		entities.SmsStatusFailed,
		entities.SmsStatusSent,
	}
	for i, status := range statuses {
		credits := decimal.Zero
		if status == entities.SmsStatusSent {
			credits = decimal.RequireFromString("5")
		}
		require.NoError(t, repo.Create(ctx, &entities.SmsLog{
			UserID:      userID,
			Recipient:   "+23480000000" + string(rune('0'+i)),
			Message:     "hello",
			SenderID:    "NotifyMe",
			Status:      status,
			CreditsUsed: credits,
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	logs, total, err := repo.GetByUserID(ctx, userID, utils.GetPaginationParams(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	assert.Equal(t, entities.SmsStatusSent, logs[0].Status, "newest first")
	assert.True(t, logs[0].CreditsUsed.Equal(decimal.RequireFromString("5")))
}

func TestSmsLogRepository_ListScopedToUser(t *testing.T) {
	db := newTestDB(t)
	createSmsLogTable(t, db)
	repo := NewSmsLogRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	require.NoError(t, repo.Create(ctx, &entities.SmsLog{
		UserID: owner, Recipient: "+2348000000001", Message: "a", Status: entities.SmsStatusSent,
		CreditsUsed: decimal.Zero,
	}))
	require.NoError(t, repo.Create(ctx, &entities.SmsLog{
		UserID: other, Recipient: "+2348000000002", Message: "b", Status: entities.SmsStatusSent,
		CreditsUsed: decimal.Zero,
	}))

	logs, total, err := repo.GetByUserID(ctx, owner, utils.GetPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, owner, logs[0].UserID)
}
