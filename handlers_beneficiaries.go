package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/benjangure/banking-management-system/models"
	"github.com/benjangure/banking-management-system/pkg/bank"
)

// requireOwnBeneficiary resolves the beneficiary and checks ownership.
func requireOwnBeneficiary(c *gin.Context, beneficiaryID uint) (*models.Beneficiary, bool) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, false
	}
	b, err := svc.BeneficiaryByID(beneficiaryID)
	if err != nil {
		writeBankError(c, err)
		return nil, false
	}
	if b.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "beneficiary does not belong to the authenticated user"})
		return nil, false
	}
	return b, true
}

func requireSelf(c *gin.Context, userID uint) bool {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return false
	}
	if user.ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot act on another user's beneficiaries"})
		return false
	}
	return true
}

func listBeneficiariesHandler(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	if !requireSelf(c, userID) {
		return
	}
	list, err := svc.BeneficiariesForUser(userID)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type beneficiaryRequest struct {
	BeneficiaryAccountNumber string `json:"beneficiaryAccountNumber"`
	Nickname                 string `json:"nickname" binding:"required"`
	AccountName              string `json:"accountName" binding:"required"`
	BankName                 string `json:"bankName" binding:"required"`
}

func addBeneficiaryHandler(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	if !requireSelf(c, userID) {
		return
	}
	var req beneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BeneficiaryAccountNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "beneficiaryAccountNumber is required"})
		return
	}
	b, err := svc.AddBeneficiary(userID, bank.BeneficiaryInput{
		AccountNumber: req.BeneficiaryAccountNumber,
		Nickname:      req.Nickname,
		AccountName:   req.AccountName,
		BankName:      req.BankName,
	})
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func updateBeneficiaryHandler(c *gin.Context) {
	beneficiaryID, ok := uintParam(c, "beneficiaryId")
	if !ok {
		return
	}
	if _, ok := requireOwnBeneficiary(c, beneficiaryID); !ok {
		return
	}
	var req beneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := svc.UpdateBeneficiary(beneficiaryID, bank.BeneficiaryInput{
		Nickname:    req.Nickname,
		AccountName: req.AccountName,
		BankName:    req.BankName,
	})
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func deleteBeneficiaryHandler(c *gin.Context) {
	beneficiaryID, ok := uintParam(c, "beneficiaryId")
	if !ok {
		return
	}
	if _, ok := requireOwnBeneficiary(c, beneficiaryID); !ok {
		return
	}
	if err := svc.DeleteBeneficiary(beneficiaryID); err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "beneficiary deleted"})
}

// transferToBeneficiaryHandler pre-fills the destination from the saved
// beneficiary and runs a normal transfer from one of the caller's accounts.
func transferToBeneficiaryHandler(c *gin.Context) {
	beneficiaryID, ok := uintParam(c, "beneficiaryId")
	if !ok {
		return
	}
	if _, ok := requireOwnBeneficiary(c, beneficiaryID); !ok {
		return
	}
	var req struct {
		AccountID   uint            `json:"accountId" binding:"required"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := requireOwnAccount(c, req.AccountID); !ok {
		return
	}
	entry, err := svc.TransferToBeneficiary(beneficiaryID, req.AccountID, req.Amount, req.Description)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
