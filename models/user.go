package models

import (
	"time"
)

// User is a registered customer. Accounts and beneficiaries are owned
// by the user and removed with it.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string        `gorm:"size:255;not null;unique"`
	Email          string        `gorm:"size:255;not null;unique"`
	HashedPassword []byte        `gorm:"not null" json:"-"`
	FullName       string        `gorm:"size:255;not null"`
	PhoneNumber    string        `gorm:"size:64"`
	Accounts       []Account     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Beneficiaries  []Beneficiary `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
