package bank

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/benjangure/banking-management-system/models"
)

// BeneficiaryInput carries the caller-editable beneficiary fields.
type BeneficiaryInput struct {
	AccountNumber string
	Nickname      string
	AccountName   string
	BankName      string
}

// BeneficiariesForUser lists a user's saved beneficiaries.
func (s *Service) BeneficiariesForUser(userID uint) ([]models.Beneficiary, error) {
	if err := s.db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var list []models.Beneficiary
	err := s.db.Where("user_id = ?", userID).Order("id").Find(&list).Error
	return list, err
}

// BeneficiaryByID resolves one beneficiary.
func (s *Service) BeneficiaryByID(beneficiaryID uint) (*models.Beneficiary, error) {
	var b models.Beneficiary
	if err := s.db.First(&b, beneficiaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeneficiaryNotFound
		}
		return nil, err
	}
	return &b, nil
}

// AddBeneficiary saves a transfer destination for the user. The target
// account number must resolve to an existing account, and a user cannot save
// the same account number twice.
func (s *Service) AddBeneficiary(userID uint, input BeneficiaryInput) (*models.Beneficiary, error) {
	if err := s.db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.AccountByNumber(input.AccountNumber); err != nil {
		return nil, err
	}

	// pre-check existing (optimistic); the unique index catches races
	var existing models.Beneficiary
	err := s.db.Where("user_id = ? AND beneficiary_account_number = ?", userID, input.AccountNumber).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateBeneficiary
	}

	b := models.Beneficiary{
		UserID:                   userID,
		BeneficiaryAccountNumber: input.AccountNumber,
		Nickname:                 input.Nickname,
		AccountName:              input.AccountName,
		BankName:                 input.BankName,
	}
	if err := s.db.Create(&b).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateBeneficiary
		}
		return nil, err
	}
	return &b, nil
}

// UpdateBeneficiary edits the display fields of a saved beneficiary. The
// target account number is immutable; delete and re-add to change it.
func (s *Service) UpdateBeneficiary(beneficiaryID uint, input BeneficiaryInput) (*models.Beneficiary, error) {
	b, err := s.BeneficiaryByID(beneficiaryID)
	if err != nil {
		return nil, err
	}
	b.Nickname = input.Nickname
	b.AccountName = input.AccountName
	b.BankName = input.BankName
	if err := s.db.Save(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBeneficiary removes a saved beneficiary. Accounts and ledger entries
// are untouched.
func (s *Service) DeleteBeneficiary(beneficiaryID uint) error {
	b, err := s.BeneficiaryByID(beneficiaryID)
	if err != nil {
		return err
	}
	return s.db.Delete(b).Error
}

// TransferToBeneficiary pre-fills the destination from the saved beneficiary
// and delegates to the movement engine.
func (s *Service) TransferToBeneficiary(beneficiaryID, fromAccountID uint, amount decimal.Decimal, description string) (*models.Transaction, error) {
	b, err := s.BeneficiaryByID(beneficiaryID)
	if err != nil {
		return nil, err
	}
	return s.Transfer(fromAccountID, b.BeneficiaryAccountNumber, amount, description)
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "already exists")
}
