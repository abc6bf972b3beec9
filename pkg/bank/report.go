package bank

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/benjangure/banking-management-system/models"
)

// MonthlySummary aggregates one account's ledger entries for a calendar
// month. The change-vs-previous-period fields are reserved and always zero.
type MonthlySummary struct {
	TotalDeposits    decimal.Decimal `json:"totalDeposits"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	TotalTransfers   decimal.Decimal `json:"totalTransfers"`
	TransactionCount int             `json:"transactionCount"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`

	DepositChange     decimal.Decimal `json:"depositChange"`
	WithdrawalChange  decimal.Decimal `json:"withdrawalChange"`
	TransferChange    decimal.Decimal `json:"transferChange"`
	TransactionChange int             `json:"transactionChange"`
}

// accountSide scopes a transaction query to entries touching the account on
// either side, newest first. Every derived view is built on this.
func accountSide(db *gorm.DB, accountID uint) *gorm.DB {
	return db.Model(&models.Transaction{}).
		Where("from_account_id = ? OR to_account_id = ?", accountID, accountID).
		Order("timestamp DESC")
}

// History returns a page of the account's ledger entries, newest first.
// Page numbering starts at 0.
func (s *Service) History(accountID uint, page, size int) ([]models.Transaction, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	var entries []models.Transaction
	err := accountSide(s.db, accountID).
		Offset(page * size).
		Limit(size).
		Find(&entries).Error
	return entries, err
}

// MiniStatement returns the 10 most recent entries for the account.
func (s *Service) MiniStatement(accountID uint) ([]models.Transaction, error) {
	var entries []models.Transaction
	err := accountSide(s.db, accountID).Limit(10).Find(&entries).Error
	return entries, err
}

// Filter returns entries matching an optional type or inclusive date range.
// A type filter takes precedence over a date range; with neither, the full
// ordered history comes back.
func (s *Service) Filter(accountID uint, txType string, start, end *time.Time) ([]models.Transaction, error) {
	q := accountSide(s.db, accountID)
	switch {
	case txType != "":
		q = q.Where("transaction_type = ?", txType)
	case start != nil && end != nil:
		q = q.Where("timestamp BETWEEN ? AND ?", *start, *end)
	}
	var entries []models.Transaction
	err := q.Find(&entries).Error
	return entries, err
}

// TransactionByID looks up one ledger entry by its TXN id.
func (s *Service) TransactionByID(transactionID string) (*models.Transaction, error) {
	var entry models.Transaction
	err := s.db.Where("transaction_id = ?", transactionID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// MonthlySummary rolls up one month of entries. Deposits and withdrawals sum
// directly; a transfer counts toward transfers-out when the account is the
// source and toward deposits when it is the destination.
func (s *Service) MonthlySummary(accountID uint, month, year int) (*MonthlySummary, error) {
	if err := s.db.First(&models.Account{}, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second) // last instant of the month

	var entries []models.Transaction
	err := accountSide(s.db, accountID).
		Where("timestamp BETWEEN ? AND ?", start, end).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TotalTransfers:   decimal.Zero,
		TransactionCount: len(entries),
		Month:            month,
		Year:             year,
		DepositChange:    decimal.Zero,
		WithdrawalChange: decimal.Zero,
		TransferChange:   decimal.Zero,
	}
	for _, entry := range entries {
		switch entry.TransactionType {
		case models.TransactionTypeDeposit:
			summary.TotalDeposits = summary.TotalDeposits.Add(entry.Amount)
		case models.TransactionTypeWithdrawal:
			summary.TotalWithdrawals = summary.TotalWithdrawals.Add(entry.Amount)
		case models.TransactionTypeTransfer:
			if entry.FromAccountID == accountID {
				summary.TotalTransfers = summary.TotalTransfers.Add(entry.Amount)
			} else if entry.ToAccountID != nil && *entry.ToAccountID == accountID {
				// incoming transfer counts as a deposit in this rollup
				summary.TotalDeposits = summary.TotalDeposits.Add(entry.Amount)
			}
		}
	}
	return summary, nil
}
