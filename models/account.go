package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types. Interest rates are fixed per type at opening time.
const (
	AccountTypeSavings  = "SAVINGS"
	AccountTypeChecking = "CHECKING"
)

// Account statuses.
const (
	AccountStatusActive = "ACTIVE"
	AccountStatusFrozen = "FROZEN"
	AccountStatusClosed = "CLOSED"
)

// Account is a single balance-bearing account belonging to a user.
// Balance is the sum of all completed ledger effects since opening and
// is never allowed to go negative by a movement.
type Account struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AccountNumber string          `gorm:"size:32;not null;uniqueIndex"`
	UserID        uint            `gorm:"index;not null"`
	User          User            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AccountType   string          `gorm:"size:16;not null"`
	InterestRate  float64         `gorm:"not null"` // percent per annum, not money
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status        string          `gorm:"size:16;not null;default:ACTIVE"`
}
