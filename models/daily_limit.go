package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyLimit tracks cumulative money moved out of an account on one
// calendar date. One row per (account, date), created lazily on the first
// movement of the day; a new date simply gets a fresh zero-counter row,
// old rows are never reset in place.
type DailyLimit struct {
	ID               uint `gorm:"primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	AccountID        uint            `gorm:"not null;uniqueIndex:idx_account_date"`
	Account          Account         `gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Date             time.Time       `gorm:"type:date;not null;uniqueIndex:idx_account_date"`
	TotalWithdrawals decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalTransfers   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	WithdrawalLimit  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TransferLimit    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}
