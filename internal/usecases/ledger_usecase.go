package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/domain/repositories"
	"jadara-labs.backend/pkg/logger"
	"jadara-labs.backend/pkg/redis"
	"jadara-labs.backend/pkg/utils"
	"go.uber.org/zap"
)

// LedgerUsecase owns every wallet balance mutation. Debit and Credit are the
// only two write paths; each one updates the balance and appends a
// transaction row inside a single database transaction, so the audit trail
// can never drift from the balance.
type LedgerUsecase struct {
	uow          repositories.UnitOfWork
	walletRepo   repositories.WalletRepository
	txnRepo      repositories.TransactionRepository
	balanceCache *redis.BalanceCache
}

// NewLedgerUsecase creates a new ledger usecase
func NewLedgerUsecase(
	uow repositories.UnitOfWork,
	walletRepo repositories.WalletRepository,
	txnRepo repositories.TransactionRepository,
	balanceCache *redis.BalanceCache,
) *LedgerUsecase {
	return &LedgerUsecase{
		uow:          uow,
		walletRepo:   walletRepo,
		txnRepo:      txnRepo,
		balanceCache: balanceCache,
	}
}

// Debit withdraws from a wallet. It fails with ErrInsufficientFunds when the
// balance cannot cover the amount; the check and the write are one guarded
// update, so concurrent debits cannot both drain the same funds.
func (u *LedgerUsecase) Debit(ctx context.Context, userID uuid.UUID, input *entities.LedgerEntryInput) (*entities.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimalZero) {
		return nil, domainerrors.ErrInvalidInput
	}

	var txn *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		wallet, err := u.walletRepo.GetByUserID(u.uow.WithLock(txCtx), userID)
		if err != nil {
			return err
		}
		if wallet.Balance.LessThan(input.Amount) {
			return domainerrors.ErrInsufficientFunds
		}

		ok, err := u.walletRepo.AddToBalance(txCtx, userID, input.Amount.Neg())
		if err != nil {
			return err
		}
		if !ok {
			// Lost a race despite the locked read
			return domainerrors.ErrInsufficientFunds
		}

		txn = &entities.Transaction{
			UserID:        userID,
			Type:          entities.TransactionTypeDebit,
			Amount:        input.Amount,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  wallet.Balance.Sub(input.Amount),
			Description:   input.Description,
			Reference:     input.Reference,
			Metadata:      input.Metadata,
		}
		return u.txnRepo.Create(txCtx, txn)
	})
	if err != nil {
		return nil, err
	}

	u.balanceCache.Invalidate(ctx, userID)
	logger.WithContext(ctx).Info("wallet debited",
		zap.String("user_id", userID.String()),
		zap.String("amount", input.Amount.String()),
		zap.String("balance_after", txn.BalanceAfter.String()))
	return txn, nil
}

// Credit deposits into a wallet. When input.Reference is set and an entry
// with that reference already exists, the existing transaction is returned
// and nothing is written; the bool result reports whether a new entry was
// recorded.
func (u *LedgerUsecase) Credit(ctx context.Context, userID uuid.UUID, input *entities.LedgerEntryInput) (*entities.Transaction, bool, error) {
	if input.Amount.LessThanOrEqual(decimalZero) {
		return nil, false, domainerrors.ErrInvalidInput
	}

	if input.Reference.Valid {
		existing, err := u.txnRepo.FindByReference(ctx, input.Reference.String)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, false, err
		}
	}

	var txn *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		wallet, err := u.walletRepo.GetByUserID(u.uow.WithLock(txCtx), userID)
		if err != nil {
			return err
		}

		txn = &entities.Transaction{
			UserID:        userID,
			Type:          entities.TransactionTypeCredit,
			Amount:        input.Amount,
			BalanceBefore: wallet.Balance,
			BalanceAfter:  wallet.Balance.Add(input.Amount),
			Description:   input.Description,
			Reference:     input.Reference,
			Metadata:      input.Metadata,
		}
		if err := u.txnRepo.Create(txCtx, txn); err != nil {
			return err
		}

		ok, err := u.walletRepo.AddToBalance(txCtx, userID, input.Amount)
		if err != nil {
			return err
		}
		if !ok {
			return domainerrors.ErrWalletNotFound
		}
		return nil
	})
	if err != nil {
		// A concurrent settle of the same reference won the insert race;
		// surface its transaction as the idempotent result.
		if errors.Is(err, domainerrors.ErrDuplicateReference) && input.Reference.Valid {
			existing, findErr := u.txnRepo.FindByReference(ctx, input.Reference.String)
			if findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	u.balanceCache.Invalidate(ctx, userID)
	logger.WithContext(ctx).Info("wallet credited",
		zap.String("user_id", userID.String()),
		zap.String("amount", input.Amount.String()),
		zap.String("balance_after", txn.BalanceAfter.String()))
	return txn, true, nil
}

// Balance returns the current balance, served from cache when fresh
func (u *LedgerUsecase) Balance(ctx context.Context, userID uuid.UUID) (*entities.BalanceResponse, error) {
	if cached, currency, ok := u.balanceCache.Get(ctx, userID); ok {
		return &entities.BalanceResponse{Balance: cached, Currency: currency}, nil
	}

	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.balanceCache.Set(ctx, userID, wallet.Balance, wallet.Currency)
	return &entities.BalanceResponse{
		Balance:  wallet.Balance,
		Currency: wallet.Currency,
	}, nil
}

// ListTransactions returns a page of the user's ledger history, newest first
func (u *LedgerUsecase) ListTransactions(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.Transaction, *utils.PaginationMeta, error) {
	txns, total, err := u.txnRepo.GetByUserID(ctx, userID, p)
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(total, p.Page, p.Limit)
	return txns, &meta, nil
}
