package bank

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/benjangure/banking-management-system/models"
)

// Default per-day caps applied to lazily created limit rows.
var (
	DefaultWithdrawalLimit = decimal.RequireFromString("5000.00")
	DefaultTransferLimit   = decimal.RequireFromString("10000.00")
)

// LimitStatus is the daily limit position of one account for today.
type LimitStatus struct {
	WithdrawalLimit     decimal.Decimal `json:"withdrawalLimit"`
	WithdrawalUsed      decimal.Decimal `json:"withdrawalUsed"`
	WithdrawalRemaining decimal.Decimal `json:"withdrawalRemaining"`
	TransferLimit       decimal.Decimal `json:"transferLimit"`
	TransferUsed        decimal.Decimal `json:"transferUsed"`
	TransferRemaining   decimal.Decimal `json:"transferRemaining"`
}

// dateOf truncates a timestamp to its calendar date. Limit rows are keyed by
// this value, so the midnight "reset" is nothing more than the next date
// getting its own fresh row.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// getOrCreateDailyLimit finds today's limit row for the account, creating it
// with zero counters and the default caps on first use. Callers run inside
// the movement transaction; the row is locked so two concurrent movements
// cannot both pass a check against a stale counter.
func (s *Service) getOrCreateDailyLimit(tx *gorm.DB, accountID uint) (*models.DailyLimit, error) {
	today := dateOf(s.now())

	var limit models.DailyLimit
	err := forUpdate(tx).
		Where("account_id = ? AND date = ?", accountID, today).
		First(&limit).Error
	if err == nil {
		return &limit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	limit = models.DailyLimit{
		AccountID:        accountID,
		Date:             today,
		TotalWithdrawals: decimal.Zero,
		TotalTransfers:   decimal.Zero,
		WithdrawalLimit:  DefaultWithdrawalLimit,
		TransferLimit:    DefaultTransferLimit,
	}
	if err := tx.Create(&limit).Error; err != nil {
		return nil, err
	}
	return &limit, nil
}

// checkWithdrawalLimit rejects the amount if it would push today's
// cumulative withdrawals past the cap. It never mutates the row.
func checkWithdrawalLimit(limit *models.DailyLimit, amount decimal.Decimal) error {
	if limit.TotalWithdrawals.Add(amount).Cmp(limit.WithdrawalLimit) > 0 {
		return &LimitError{
			Kind:      LimitKindWithdrawal,
			Remaining: limit.WithdrawalLimit.Sub(limit.TotalWithdrawals),
		}
	}
	return nil
}

// checkTransferLimit is the transfer-side counterpart of
// checkWithdrawalLimit; the two counters are independent.
func checkTransferLimit(limit *models.DailyLimit, amount decimal.Decimal) error {
	if limit.TotalTransfers.Add(amount).Cmp(limit.TransferLimit) > 0 {
		return &LimitError{
			Kind:      LimitKindTransfer,
			Remaining: limit.TransferLimit.Sub(limit.TotalTransfers),
		}
	}
	return nil
}

// addWithdrawal bumps today's withdrawal counter. Runs after the balance
// mutation, inside the same transaction.
func addWithdrawal(tx *gorm.DB, limit *models.DailyLimit, amount decimal.Decimal) error {
	limit.TotalWithdrawals = limit.TotalWithdrawals.Add(amount)
	return tx.Model(limit).Update("total_withdrawals", limit.TotalWithdrawals).Error
}

// addTransfer bumps today's transfer-out counter.
func addTransfer(tx *gorm.DB, limit *models.DailyLimit, amount decimal.Decimal) error {
	limit.TotalTransfers = limit.TotalTransfers.Add(amount)
	return tx.Model(limit).Update("total_transfers", limit.TotalTransfers).Error
}

// LimitStatus reports today's caps, usage and remaining headroom for an
// account, creating the row lazily exactly like a movement would.
func (s *Service) LimitStatus(accountID uint) (*LimitStatus, error) {
	if err := s.db.First(&models.Account{}, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	var status LimitStatus
	err := s.db.Transaction(func(tx *gorm.DB) error {
		limit, err := s.getOrCreateDailyLimit(tx, accountID)
		if err != nil {
			return err
		}
		status = LimitStatus{
			WithdrawalLimit:     limit.WithdrawalLimit,
			WithdrawalUsed:      limit.TotalWithdrawals,
			WithdrawalRemaining: limit.WithdrawalLimit.Sub(limit.TotalWithdrawals),
			TransferLimit:       limit.TransferLimit,
			TransferUsed:        limit.TotalTransfers,
			TransferRemaining:   limit.TransferLimit.Sub(limit.TotalTransfers),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// PurgeStaleLimits deletes limit rows older than the given number of days.
// Advisory housekeeping only: correctness relies solely on date-keyed lazy
// creation, never on rows being cleaned up.
func (s *Service) PurgeStaleLimits(olderThanDays int) (int64, error) {
	cutoff := dateOf(s.now()).AddDate(0, 0, -olderThanDays)
	res := s.db.Where("date < ?", cutoff).Delete(&models.DailyLimit{})
	return res.RowsAffected, res.Error
}
