package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benjangure/banking-management-system/models"
)

// requireOwnAccount resolves the account and checks it belongs to the
// authenticated user. Replies itself on failure.
func requireOwnAccount(c *gin.Context, accountID uint) (*models.Account, bool) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, false
	}
	acc, err := svc.AccountByID(accountID)
	if err != nil {
		writeBankError(c, err)
		return nil, false
	}
	if acc.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "account does not belong to the authenticated user"})
		return nil, false
	}
	return acc, true
}

// listUserAccountsHandler lists the accounts of the user in the path, which
// must be the authenticated user.
func listUserAccountsHandler(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if user.ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot list another user's accounts"})
		return
	}
	accounts, err := svc.AccountsForUser(userID)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func getAccountHandler(c *gin.Context) {
	accountID, ok := uintParam(c, "accountId")
	if !ok {
		return
	}
	acc, ok := requireOwnAccount(c, accountID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, acc)
}

// openAccountHandler opens an additional account for the authenticated user.
func openAccountHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		AccountType string `json:"accountType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	acc, err := svc.OpenAccount(user.ID, req.AccountType)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// dailyLimitHandler reports today's limit usage for one owned account.
func dailyLimitHandler(c *gin.Context) {
	accountID, ok := uintParam(c, "accountId")
	if !ok {
		return
	}
	if _, ok := requireOwnAccount(c, accountID); !ok {
		return
	}
	status, err := svc.LimitStatus(accountID)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
