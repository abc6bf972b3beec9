package bank

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/benjangure/banking-management-system/models"
)

// minAmount is the smallest accepted movement amount (1.00).
var minAmount = decimal.NewFromInt(1)

// Service implements the money movement engine and everything derived from
// it. Every movement runs as one gorm transaction: balance reads are locked,
// limit counters and the ledger append commit together with the balance
// mutation or not at all.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// forUpdate adds a row lock on postgres. sqlite (used in tests) has a single
// writer and no FOR UPDATE syntax, so the clause is skipped there.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// validateAmount enforces the 1.00 minimum and the 2-decimal fixed-point
// contract shared by all movements.
func validateAmount(amount decimal.Decimal) error {
	if amount.Cmp(minAmount) < 0 || !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}

// newTransactionID generates the human-readable ledger id, e.g. TXN1A2B3C4D.
func newTransactionID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN" + strings.ToUpper(raw[:8])
}

// lockedAccountByID loads an account inside tx with a row lock.
func lockedAccountByID(tx *gorm.DB, accountID uint) (*models.Account, error) {
	var acc models.Account
	if err := forUpdate(tx).First(&acc, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// lockedAccountByNumber loads an account by its account number with a row lock.
func lockedAccountByNumber(tx *gorm.DB, accountNumber string) (*models.Account, error) {
	var acc models.Account
	if err := forUpdate(tx).Where("account_number = ?", accountNumber).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func ensureActive(acc *models.Account) error {
	if acc.Status != models.AccountStatusActive {
		return ErrAccountInactive
	}
	return nil
}

func defaultDescription(description, fallback string) string {
	if strings.TrimSpace(description) == "" {
		return fallback
	}
	return description
}

// Deposit credits an account and appends the ledger entry.
func (s *Service) Deposit(accountID uint, amount decimal.Decimal, description string) (*models.Transaction, error) {
	var entry *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		acc, err := lockedAccountByID(tx, accountID)
		if err != nil {
			return err
		}
		if err := validateAmount(amount); err != nil {
			return err
		}
		if err := ensureActive(acc); err != nil {
			return err
		}

		newBalance := acc.Balance.Add(amount)
		if err := tx.Model(acc).Update("balance", newBalance).Error; err != nil {
			return err
		}

		entry = &models.Transaction{
			TransactionID:   newTransactionID(),
			TransactionType: models.TransactionTypeDeposit,
			Amount:          amount,
			FromAccountID:   acc.ID,
			Description:     defaultDescription(description, "Deposit"),
			Timestamp:       s.now(),
			BalanceAfter:    newBalance,
			Status:          models.TransactionStatusCompleted,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Withdraw debits an account. The balance check runs before the limit check;
// both must pass before anything is written. The limit counter is bumped
// after the balance mutation, inside the same transaction.
func (s *Service) Withdraw(accountID uint, amount decimal.Decimal, description string) (*models.Transaction, error) {
	var entry *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		acc, err := lockedAccountByID(tx, accountID)
		if err != nil {
			return err
		}
		if err := validateAmount(amount); err != nil {
			return err
		}
		if err := ensureActive(acc); err != nil {
			return err
		}
		if acc.Balance.Cmp(amount) < 0 {
			return ErrInsufficientBalance
		}

		limit, err := s.getOrCreateDailyLimit(tx, acc.ID)
		if err != nil {
			return err
		}
		if err := checkWithdrawalLimit(limit, amount); err != nil {
			return err
		}

		newBalance := acc.Balance.Sub(amount)
		if err := tx.Model(acc).Update("balance", newBalance).Error; err != nil {
			return err
		}
		if err := addWithdrawal(tx, limit, amount); err != nil {
			return err
		}

		entry = &models.Transaction{
			TransactionID:   newTransactionID(),
			TransactionType: models.TransactionTypeWithdrawal,
			Amount:          amount,
			FromAccountID:   acc.ID,
			Description:     defaultDescription(description, "Withdrawal"),
			Timestamp:       s.now(),
			BalanceAfter:    newBalance,
			Status:          models.TransactionStatusCompleted,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Transfer moves money between two accounts. Both balances change in the
// same transaction and exactly one ledger entry is written, recorded
// against the source; the destination's history is derived from either-side
// queries.
func (s *Service) Transfer(fromAccountID uint, toAccountNumber string, amount decimal.Decimal, description string) (*models.Transaction, error) {
	var entry *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		from, err := lockedAccountByID(tx, fromAccountID)
		if err != nil {
			return err
		}
		to, err := lockedAccountByNumber(tx, toAccountNumber)
		if err != nil {
			return err
		}
		if err := validateAmount(amount); err != nil {
			return err
		}
		if from.ID == to.ID {
			return ErrSameAccountTransfer
		}
		if err := ensureActive(from); err != nil {
			return err
		}
		if err := ensureActive(to); err != nil {
			return err
		}
		if from.Balance.Cmp(amount) < 0 {
			return ErrInsufficientBalance
		}

		limit, err := s.getOrCreateDailyLimit(tx, from.ID)
		if err != nil {
			return err
		}
		if err := checkTransferLimit(limit, amount); err != nil {
			return err
		}

		newFromBalance := from.Balance.Sub(amount)
		newToBalance := to.Balance.Add(amount)
		if err := tx.Model(from).Update("balance", newFromBalance).Error; err != nil {
			return err
		}
		if err := tx.Model(to).Update("balance", newToBalance).Error; err != nil {
			return err
		}
		if err := addTransfer(tx, limit, amount); err != nil {
			return err
		}

		var recipient models.User
		if err := tx.First(&recipient, to.UserID).Error; err != nil {
			return err
		}

		toID := to.ID
		entry = &models.Transaction{
			TransactionID:   newTransactionID(),
			TransactionType: models.TransactionTypeTransfer,
			Amount:          amount,
			FromAccountID:   from.ID,
			ToAccountID:     &toID,
			ToAccountNumber: to.AccountNumber,
			Description:     defaultDescription(description, "Transfer"),
			Timestamp:       s.now(),
			BalanceAfter:    newFromBalance,
			Status:          models.TransactionStatusCompleted,
			RecipientName:   recipient.FullName,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
