package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjangure/banking-management-system/models"
)

func TestDepositCreditsBalanceAndAppendsEntry(t *testing.T) {
	s := newTestService(t)
	acc := seedAccount(t, s, "0.00")

	entry, err := s.Deposit(acc.ID, dec("500.00"), "")
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeDeposit, entry.TransactionType)
	assert.True(t, entry.Amount.Equal(dec("500.00")))
	assert.True(t, entry.BalanceAfter.Equal(dec("500.00")))
	assert.Equal(t, models.TransactionStatusCompleted, entry.Status)
	assert.Equal(t, "Deposit", entry.Description)
	assert.Regexp(t, `^TXN[0-9A-F]{8}$`, entry.TransactionID)

	assert.True(t, reloadAccount(t, s, acc.ID).Balance.Equal(dec("500.00")))
	assert.Len(t, ledgerFor(t, s, acc.ID), 1)
}

func TestDepositRejectsBelowMinimum(t *testing.T) {
	s := newTestService(t)
	acc := seedAccount(t, s, "10.00")

	_, err := s.Deposit(acc.ID, dec("0.99"), "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.True(t, reloadAccount(t, s, acc.ID).Balance.Equal(dec("10.00")))
	assert.Empty(t, ledgerFor(t, s, acc.ID))
}

func TestDepositRejectsFractionalCents(t *testing.T) {
	s := newTestService(t)
	acc := seedAccount(t, s, "0.00")

	_, err := s.Deposit(acc.ID, dec("10.123"), "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDepositUnknownAccount(t *testing.T) {
	s := newTestService(t)

	_, err := s.Deposit(9999, dec("10.00"), "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestWithdrawInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	s := newTestService(t)
	acc := seedAccount(t, s, "100.00")

	_, err := s.Withdraw(acc.ID, dec("100.01"), "")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	assert.True(t, reloadAccount(t, s, acc.ID).Balance.Equal(dec("100.00")))
	assert.Empty(t, ledgerFor(t, s, acc.ID))

	var limitRows int64
	require.NoError(t, s.db.Model(&models.DailyLimit{}).Count(&limitRows).Error)
	assert.Zero(t, limitRows, "failed withdrawal must not persist a limit counter")
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	s := newTestService(t)
	acc := seedAccount(t, s, "25.00")

	_, err := s.Deposit(acc.ID, dec("100.00"), "")
	require.NoError(t, err)
	_, err = s.Withdraw(acc.ID, dec("100.00"), "")
	require.NoError(t, err)

	assert.True(t, reloadAccount(t, s, acc.ID).Balance.Equal(dec("25.00")))
	assert.Len(t, ledgerFor(t, s, acc.ID), 2)
}

func TestMovementRejectedOnInactiveAccount(t *testing.T) {
	s := newTestService(t)
	acc := seedAccount(t, s, "100.00")
	require.NoError(t, s.db.Model(acc).Update("status", models.AccountStatusFrozen).Error)

	_, err := s.Deposit(acc.ID, dec("10.00"), "")
	assert.ErrorIs(t, err, ErrAccountInactive)
	_, err = s.Withdraw(acc.ID, dec("10.00"), "")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestTransferMovesMoneyWithSingleLedgerEntry(t *testing.T) {
	s := newTestService(t)
	source := seedAccount(t, s, "0.00")
	dest := seedAccount(t, s, "50.00")

	_, err := s.Deposit(source.ID, dec("500.00"), "")
	require.NoError(t, err)

	entry, err := s.Transfer(source.ID, dest.AccountNumber, dec("200.00"), "")
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeTransfer, entry.TransactionType)
	assert.Equal(t, source.ID, entry.FromAccountID)
	require.NotNil(t, entry.ToAccountID)
	assert.Equal(t, dest.ID, *entry.ToAccountID)
	assert.Equal(t, dest.AccountNumber, entry.ToAccountNumber)
	assert.True(t, entry.BalanceAfter.Equal(dec("300.00")))

	assert.True(t, reloadAccount(t, s, source.ID).Balance.Equal(dec("300.00")))
	assert.True(t, reloadAccount(t, s, dest.ID).Balance.Equal(dec("250.00")))

	// no ledger entry is recorded against the destination directly
	var destSide int64
	require.NoError(t, s.db.Model(&models.Transaction{}).
		Where("from_account_id = ?", dest.ID).Count(&destSide).Error)
	assert.Zero(t, destSide)
	// but the destination's derived history sees the incoming transfer
	assert.Len(t, ledgerFor(t, s, dest.ID), 1)

	// follow-up over-withdrawal fails and leaves the source at 300.00
	_, err = s.Withdraw(source.ID, dec("350.00"), "")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, reloadAccount(t, s, source.ID).Balance.Equal(dec("300.00")))
}

func TestTransferCarriesRecipientName(t *testing.T) {
	s := newTestService(t)
	source := seedAccount(t, s, "100.00")
	dest := seedAccount(t, s, "0.00")

	var owner models.User
	require.NoError(t, s.db.First(&owner, dest.UserID).Error)

	entry, err := s.Transfer(source.ID, dest.AccountNumber, dec("10.00"), "rent")
	require.NoError(t, err)
	assert.Equal(t, owner.FullName, entry.RecipientName)
	assert.Equal(t, "rent", entry.Description)
}

func TestTransferToSameAccount(t *testing.T) {
	s := newTestService(t)
	acc := seedAccount(t, s, "100.00")

	_, err := s.Transfer(acc.ID, acc.AccountNumber, dec("10.00"), "")
	assert.ErrorIs(t, err, ErrSameAccountTransfer)
	assert.True(t, reloadAccount(t, s, acc.ID).Balance.Equal(dec("100.00")))
}

func TestTransferUnknownDestinationIsAtomic(t *testing.T) {
	s := newTestService(t)
	source := seedAccount(t, s, "100.00")

	_, err := s.Transfer(source.ID, "ACC0000000000404", dec("10.00"), "")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	assert.True(t, reloadAccount(t, s, source.ID).Balance.Equal(dec("100.00")))
	assert.Empty(t, ledgerFor(t, s, source.ID))
}

// The ledger is the source of truth: the signed sum of an account's entries
// must equal its balance delta since opening.
func TestLedgerEffectsSumToBalance(t *testing.T) {
	s := newTestService(t)
	a := seedAccount(t, s, "0.00")
	b := seedAccount(t, s, "0.00")

	_, err := s.Deposit(a.ID, dec("1000.00"), "")
	require.NoError(t, err)
	_, err = s.Withdraw(a.ID, dec("120.50"), "")
	require.NoError(t, err)
	_, err = s.Transfer(a.ID, b.AccountNumber, dec("300.25"), "")
	require.NoError(t, err)
	_, err = s.Deposit(b.ID, dec("42.00"), "")
	require.NoError(t, err)
	_, err = s.Transfer(b.ID, a.AccountNumber, dec("100.00"), "")
	require.NoError(t, err)

	for _, acc := range []*models.Account{a, b} {
		sum := decimal.Zero
		for _, e := range ledgerFor(t, s, acc.ID) {
			switch e.TransactionType {
			case models.TransactionTypeDeposit:
				sum = sum.Add(e.Amount)
			case models.TransactionTypeWithdrawal:
				sum = sum.Sub(e.Amount)
			case models.TransactionTypeTransfer:
				if e.FromAccountID == acc.ID {
					sum = sum.Sub(e.Amount)
				} else {
					sum = sum.Add(e.Amount)
				}
			}
		}
		assert.True(t, reloadAccount(t, s, acc.ID).Balance.Equal(sum),
			"account %d: ledger sum %s != balance", acc.ID, sum)
	}
}
