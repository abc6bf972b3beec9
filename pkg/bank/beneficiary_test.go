package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBeneficiary(t *testing.T) {
	s := newTestService(t)
	owner := seedAccount(t, s, "0.00")
	target := seedAccount(t, s, "0.00")

	b, err := s.AddBeneficiary(owner.UserID, BeneficiaryInput{
		AccountNumber: target.AccountNumber,
		Nickname:      "landlord",
		AccountName:   "Target Holdings",
		BankName:      "Savanna Bank",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, b.UserID)
	assert.Equal(t, target.AccountNumber, b.BeneficiaryAccountNumber)

	// same account number again for the same user is a duplicate
	_, err = s.AddBeneficiary(owner.UserID, BeneficiaryInput{
		AccountNumber: target.AccountNumber,
		Nickname:      "landlord-again",
		AccountName:   "Target Holdings",
		BankName:      "Savanna Bank",
	})
	assert.ErrorIs(t, err, ErrDuplicateBeneficiary)

	// another user may save the same destination
	_, err = s.AddBeneficiary(target.UserID, BeneficiaryInput{
		AccountNumber: owner.AccountNumber,
		Nickname:      "back-channel",
		AccountName:   "Owner",
		BankName:      "Savanna Bank",
	})
	require.NoError(t, err)
}

func TestAddBeneficiaryUnknownDestination(t *testing.T) {
	s := newTestService(t)
	owner := seedAccount(t, s, "0.00")

	_, err := s.AddBeneficiary(owner.UserID, BeneficiaryInput{
		AccountNumber: "ACC0000000000000",
		Nickname:      "ghost",
		AccountName:   "Ghost",
		BankName:      "Savanna Bank",
	})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateAndDeleteBeneficiary(t *testing.T) {
	s := newTestService(t)
	owner := seedAccount(t, s, "0.00")
	target := seedAccount(t, s, "0.00")

	b, err := s.AddBeneficiary(owner.UserID, BeneficiaryInput{
		AccountNumber: target.AccountNumber,
		Nickname:      "old-nick",
		AccountName:   "Old Name",
		BankName:      "Savanna Bank",
	})
	require.NoError(t, err)

	updated, err := s.UpdateBeneficiary(b.ID, BeneficiaryInput{
		Nickname:    "new-nick",
		AccountName: "New Name",
		BankName:    "Other Bank",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-nick", updated.Nickname)
	assert.Equal(t, "New Name", updated.AccountName)
	assert.Equal(t, "Other Bank", updated.BankName)
	assert.Equal(t, target.AccountNumber, updated.BeneficiaryAccountNumber, "account number is immutable")

	require.NoError(t, s.DeleteBeneficiary(b.ID))
	_, err = s.BeneficiaryByID(b.ID)
	assert.ErrorIs(t, err, ErrBeneficiaryNotFound)

	err = s.DeleteBeneficiary(b.ID)
	assert.ErrorIs(t, err, ErrBeneficiaryNotFound)
}

func TestTransferToBeneficiary(t *testing.T) {
	s := newTestService(t)
	source := seedAccount(t, s, "500.00")
	target := seedAccount(t, s, "0.00")

	b, err := s.AddBeneficiary(source.UserID, BeneficiaryInput{
		AccountNumber: target.AccountNumber,
		Nickname:      "savings-stash",
		AccountName:   "Stash",
		BankName:      "Savanna Bank",
	})
	require.NoError(t, err)

	entry, err := s.TransferToBeneficiary(b.ID, source.ID, dec("120.00"), "monthly")
	require.NoError(t, err)
	assert.Equal(t, target.AccountNumber, entry.ToAccountNumber)
	assert.True(t, reloadAccount(t, s, source.ID).Balance.Equal(dec("380.00")))
	assert.True(t, reloadAccount(t, s, target.ID).Balance.Equal(dec("120.00")))

	_, err = s.TransferToBeneficiary(999, source.ID, dec("10.00"), "")
	assert.ErrorIs(t, err, ErrBeneficiaryNotFound)
}
