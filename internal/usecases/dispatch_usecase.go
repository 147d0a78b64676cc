package usecases

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"jadara-labs.backend/internal/domain/entities"
	domainerrors "jadara-labs.backend/internal/domain/errors"
	"jadara-labs.backend/internal/domain/repositories"
	"jadara-labs.backend/internal/infrastructure/gateways"
	"jadara-labs.backend/pkg/logger"
	"jadara-labs.backend/pkg/utils"
	"go.uber.org/zap"
)

// SmsProvider abstracts the outbound SMS gateway
type SmsProvider interface {
	Send(ctx context.Context, to, from, body string) (*gateways.SmsSendResult, error)
}

// DispatchConfig carries the billing knobs for a dispatch batch
type DispatchConfig struct {
	UnitCost        decimal.Decimal
	DefaultSenderID string
	SendConcurrency int
}

// DispatchUsecase coordinates bulk SMS sends: it checks the balance covers
// the whole batch before any provider call, fans the batch out to the
// provider, records one log row per attempt, and charges the wallet for the
// messages that were actually delivered to the provider.
type DispatchUsecase struct {
	ledger     *LedgerUsecase
	walletRepo repositories.WalletRepository
	smsLogRepo repositories.SmsLogRepository
	provider   SmsProvider
	cfg        DispatchConfig
}

// NewDispatchUsecase creates a new dispatch usecase
func NewDispatchUsecase(
	ledger *LedgerUsecase,
	walletRepo repositories.WalletRepository,
	smsLogRepo repositories.SmsLogRepository,
	provider SmsProvider,
	cfg DispatchConfig,
) *DispatchUsecase {
	if cfg.SendConcurrency <= 0 {
		cfg.SendConcurrency = 1
	}
	return &DispatchUsecase{
		ledger:     ledger,
		walletRepo: walletRepo,
		smsLogRepo: smsLogRepo,
		provider:   provider,
		cfg:        cfg,
	}
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type sendOutcome struct {
	status   entities.SmsStatus
	detail   string
	response string
}

// Send dispatches one message to a batch of recipients.
//
// A provider failure for one recipient never aborts the batch; it becomes a
// failed result and a failed log row. The wallet is debited once, after the
// batch, for unit cost times the number of recipients that went through.
func (u *DispatchUsecase) Send(ctx context.Context, userID uuid.UUID, input *entities.SendSmsInput) (*entities.SendSmsResponse, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	senderID := strings.TrimSpace(input.SenderID)
	if senderID == "" {
		senderID = u.cfg.DefaultSenderID
	}

	recipients := normalizeRecipients(input)
	if len(recipients) == 0 {
		return nil, domainerrors.ErrNoValidRecipients
	}

	// Pre-flight: the balance must cover the whole batch before anything
	// leaves the building. Fails here mean zero provider calls and zero
	// log rows.
	totalCost := u.cfg.UnitCost.Mul(decimal.NewFromInt(int64(len(recipients))))
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Balance.LessThan(totalCost) {
		return nil, domainerrors.ErrInsufficientFunds
	}

	outcomes := u.dispatch(ctx, recipients, senderID, message)

	results := make([]entities.RecipientResult, len(recipients))
	sentCount := 0
	for i, recipient := range recipients {
		outcome := outcomes[i]
		results[i] = entities.RecipientResult{
			Recipient: recipient,
			Status:    outcome.status,
			Detail:    outcome.detail,
		}

		creditsUsed := decimal.Zero
		if outcome.status == entities.SmsStatusSent {
			creditsUsed = u.cfg.UnitCost
			sentCount++
		}

		logEntry := &entities.SmsLog{
			UserID:           userID,
			Recipient:        recipient,
			Message:          message,
			SenderID:         senderID,
			Status:           outcome.status,
			CreditsUsed:      creditsUsed,
			ProviderResponse: outcome.response,
		}
		if err := u.smsLogRepo.Create(ctx, logEntry); err != nil {
			logger.WithContext(ctx).Error("failed to record sms log",
				zap.String("recipient", recipient), zap.Error(err))
		}
	}

	resp := &entities.SendSmsResponse{
		Results:   results,
		TotalCost: totalCost,
		Charged:   decimal.Zero,
	}

	if sentCount == 0 {
		resp.NewBalance = wallet.Balance
		return resp, nil
	}

	charge := u.cfg.UnitCost.Mul(decimal.NewFromInt(int64(sentCount)))
	txn, err := u.ledger.Debit(ctx, userID, &entities.LedgerEntryInput{
		Amount:      charge,
		Description: fmt.Sprintf("SMS dispatch to %d recipient(s)", sentCount),
		Reference:   null.StringFrom(smsReferencePrefix + uuid.New().String()),
		Metadata: map[string]interface{}{
			"recipients": len(recipients),
			"sent":       sentCount,
			"failed":     len(recipients) - sentCount,
		},
	})
	if err != nil {
		// The attempts are already logged; the charge itself failed
		logger.WithContext(ctx).Error("failed to charge for dispatch",
			zap.String("user_id", userID.String()),
			zap.String("charge", charge.String()),
			zap.Error(err))
		return nil, err
	}

	resp.Charged = charge
	resp.NewBalance = txn.BalanceAfter
	return resp, nil
}

// ListLogs returns a page of the user's dispatch history, newest first
func (u *DispatchUsecase) ListLogs(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.SmsLog, *utils.PaginationMeta, error) {
	logs, total, err := u.smsLogRepo.GetByUserID(ctx, userID, p)
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(total, p.Page, p.Limit)
	return logs, &meta, nil
}

// dispatch fans the batch out to the provider with bounded concurrency and
// returns one outcome per recipient, in order
func (u *DispatchUsecase) dispatch(ctx context.Context, recipients []string, senderID, message string) []sendOutcome {
	outcomes := make([]sendOutcome, len(recipients))
	sem := make(chan struct{}, u.cfg.SendConcurrency)
	var wg sync.WaitGroup

	for i, recipient := range recipients {
		wg.Add(1)
		go func(idx int, to string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := u.provider.Send(ctx, to, senderID, message)
			switch {
			case err != nil:
				outcomes[idx] = sendOutcome{
					status:   entities.SmsStatusFailed,
					detail:   err.Error(),
					response: err.Error(),
				}
			case result.OK:
				outcomes[idx] = sendOutcome{
					status:   entities.SmsStatusSent,
					detail:   result.MessageID,
					response: result.Raw,
				}
			default:
				outcomes[idx] = sendOutcome{
					status:   entities.SmsStatusFailed,
					detail:   result.Detail,
					response: result.Raw,
				}
			}
		}(i, recipient)
	}

	wg.Wait()
	return outcomes
}

// normalizeRecipients merges the array and comma-separated forms, trims
// whitespace, drops entries that do not look like phone numbers, and removes
// duplicates while keeping first-seen order
func normalizeRecipients(input *entities.SendSmsInput) []string {
	raw := input.Recipients
	if len(raw) == 0 && input.RecipientsRaw != "" {
		raw = strings.Split(input.RecipientsRaw, ",")
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" || !phonePattern.MatchString(r) {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
