package bank

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/benjangure/banking-management-system/models"
)

// Interest rates fixed per account type at opening time.
const (
	savingsInterestRate  = 3.5
	checkingInterestRate = 0.5
)

// newAccountNumber makes a unique-enough human-readable account number,
// e.g. ACC1724803200123456. Uniqueness is enforced by the DB index; the
// caller retries on a collision.
func (s *Service) newAccountNumber() string {
	return fmt.Sprintf("ACC%d%03d", s.now().UnixMilli(), rand.Intn(1000))
}

// OpenAccount creates a new zero-balance ACTIVE account for the user.
func (s *Service) OpenAccount(userID uint, accountType string) (*models.Account, error) {
	var rate float64
	switch accountType {
	case models.AccountTypeSavings:
		rate = savingsInterestRate
	case models.AccountTypeChecking:
		rate = checkingInterestRate
	default:
		return nil, ErrInvalidAccountType
	}

	if err := s.db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var acc *models.Account
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		acc, err = createAccount(tx, userID, accountType, rate, s.newAccountNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// OpenDefaultAccounts opens the savings/checking pair every new user gets at
// registration. Runs inside the registration transaction.
func (s *Service) OpenDefaultAccounts(tx *gorm.DB, userID uint) ([]models.Account, error) {
	savings, err := createAccount(tx, userID, models.AccountTypeSavings, savingsInterestRate, s.newAccountNumber)
	if err != nil {
		return nil, err
	}
	checking, err := createAccount(tx, userID, models.AccountTypeChecking, checkingInterestRate, s.newAccountNumber)
	if err != nil {
		return nil, err
	}
	return []models.Account{*savings, *checking}, nil
}

func createAccount(tx *gorm.DB, userID uint, accountType string, rate float64, nextNumber func() string) (*models.Account, error) {
	// two attempts in case the generated number collides
	var lastErr error
	for i := 0; i < 2; i++ {
		acc := models.Account{
			AccountNumber: nextNumber(),
			UserID:        userID,
			AccountType:   accountType,
			InterestRate:  rate,
			Balance:       decimal.Zero,
			Status:        models.AccountStatusActive,
		}
		if err := tx.Create(&acc).Error; err != nil {
			lastErr = err
			continue
		}
		return &acc, nil
	}
	return nil, lastErr
}

// AccountByID resolves an account or reports ErrAccountNotFound.
func (s *Service) AccountByID(accountID uint) (*models.Account, error) {
	var acc models.Account
	if err := s.db.First(&acc, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// AccountByNumber resolves an account by its ACC number.
func (s *Service) AccountByNumber(accountNumber string) (*models.Account, error) {
	var acc models.Account
	if err := s.db.Where("account_number = ?", accountNumber).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// AccountsForUser lists the user's accounts, oldest first.
func (s *Service) AccountsForUser(userID uint) ([]models.Account, error) {
	if err := s.db.First(&models.User{}, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var accounts []models.Account
	err := s.db.Where("user_id = ?", userID).Order("id").Find(&accounts).Error
	return accounts, err
}
