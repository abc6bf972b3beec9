package models

import "time"

// Beneficiary is a saved transfer destination belonging to a user. It only
// pre-fills a transfer's destination account number; deleting one never
// touches accounts or ledger entries.
type Beneficiary struct {
	ID                       uint `gorm:"primaryKey"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
	UserID                   uint   `gorm:"not null;uniqueIndex:idx_user_beneficiary"`
	User                     User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BeneficiaryAccountNumber string `gorm:"size:32;not null;uniqueIndex:idx_user_beneficiary"`
	Nickname                 string `gorm:"size:255;not null"`
	AccountName              string `gorm:"size:255;not null"`
	BankName                 string `gorm:"size:255;not null"`
}
