package bank

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/benjangure/banking-management-system/models"
)

// newTestService spins up an isolated in-memory sqlite DB with the full
// schema. The shared-cache DSN is keyed by test name so connections from the
// pool see the same database without leaking between tests.
func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Transaction{},
		&models.DailyLimit{},
		&models.Beneficiary{},
	))
	return NewService(db)
}

var userSeq int

// seedAccount creates a fresh user owning one ACTIVE checking account with
// the given starting balance.
func seedAccount(t *testing.T, s *Service, balance string) *models.Account {
	t.Helper()
	userSeq++
	user := models.User{
		Username:       fmt.Sprintf("user%d", userSeq),
		Email:          fmt.Sprintf("user%d@example.com", userSeq),
		HashedPassword: []byte("x"),
		FullName:       fmt.Sprintf("User %d", userSeq),
	}
	require.NoError(t, s.db.Create(&user).Error)

	acc := models.Account{
		AccountNumber: fmt.Sprintf("ACC%010d", userSeq),
		UserID:        user.ID,
		AccountType:   models.AccountTypeChecking,
		InterestRate:  checkingInterestRate,
		Balance:       decimal.RequireFromString(balance),
		Status:        models.AccountStatusActive,
	}
	require.NoError(t, s.db.Create(&acc).Error)
	return &acc
}

func reloadAccount(t *testing.T, s *Service, id uint) *models.Account {
	t.Helper()
	var acc models.Account
	require.NoError(t, s.db.First(&acc, id).Error)
	return &acc
}

func ledgerFor(t *testing.T, s *Service, accountID uint) []models.Transaction {
	t.Helper()
	entries, err := s.History(accountID, 0, 100)
	require.NoError(t, err)
	return entries
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixedClock pins the service clock to a settable instant.
func fixedClock(s *Service, at time.Time) *time.Time {
	current := at
	s.now = func() time.Time { return current }
	return &current
}
