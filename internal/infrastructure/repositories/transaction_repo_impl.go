package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/infrastructure/models"
	"jadara-labs.backend/pkg/utils"
)

// TransactionRepository implements the append-only transaction log
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends a transaction. A unique index on reference backs the
// ledger's idempotency contract; a duplicate insert surfaces as
// ErrDuplicateReference so the caller can roll back and fetch the original.
func (r *TransactionRepository) Create(ctx context.Context, txn *entities.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	metadata := ""
	if len(txn.Metadata) > 0 {
		raw, err := json.Marshal(txn.Metadata)
		if err != nil {
			return err
		}
		metadata = string(raw)
	}

	m := &models.Transaction{
		ID:            txn.ID,
		UserID:        txn.UserID,
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		BalanceBefore: txn.BalanceBefore,
		BalanceAfter:  txn.BalanceAfter,
		Description:   txn.Description,
		Reference:     txn.Reference,
		Metadata:      metadata,
		CreatedAt:     txn.CreatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateReference
		}
		return err
	}
	return nil
}

// FindByReference returns the transaction recorded for an external reference
func (r *TransactionRepository) FindByReference(ctx context.Context, reference string) (*entities.Transaction, error) {
	var m models.Transaction
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("reference = ?", reference).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserID returns a user's transactions, newest first
func (r *TransactionRepository) GetByUserID(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.Transaction, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if p.Limit > 0 {
		query = query.Limit(p.Limit).Offset(p.CalculateOffset())
	}

	var rows []models.Transaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	txns := make([]*entities.Transaction, 0, len(rows))
	for i := range rows {
		txns = append(txns, r.toEntity(&rows[i]))
	}
	return txns, total, nil
}

// GetLatestByUserID returns the most recent transaction for a user
func (r *TransactionRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TransactionRepository) toEntity(m *models.Transaction) *entities.Transaction {
	var metadata map[string]interface{}
	if m.Metadata != "" {
		_ = json.Unmarshal([]byte(m.Metadata), &metadata)
	}
	return &entities.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		Type:          entities.TransactionType(m.Type),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Description:   m.Description,
		Reference:     m.Reference,
		Metadata:      metadata,
		CreatedAt:     m.CreatedAt,
	}
}
