package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TransactionTypeDeposit    = "DEPOSIT"
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypeTransfer   = "TRANSFER"
)

// Transaction statuses.
const (
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
)

// Transaction is one immutable ledger entry for a completed movement.
// Rows are insert-only: they are never updated or deleted. A transfer
// produces a single entry recorded against the source account; the
// destination side is reconstructed by querying either-side matches.
type Transaction struct {
	ID              uint            `gorm:"primaryKey"`
	TransactionID   string          `gorm:"size:16;not null;uniqueIndex"`
	TransactionType string          `gorm:"size:16;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	FromAccountID   uint            `gorm:"index;not null"`
	FromAccount     Account         `gorm:"foreignKey:FromAccountID"`
	ToAccountID     *uint           `gorm:"index"`
	ToAccount       *Account        `gorm:"foreignKey:ToAccountID"`
	ToAccountNumber string          `gorm:"size:32"`
	Description     string          `gorm:"size:500"`
	Timestamp       time.Time       `gorm:"not null;index"`
	// BalanceAfter is the source account's balance immediately after the effect.
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status        string          `gorm:"size:16;not null"`
	RecipientName string          `gorm:"size:255"`
}
