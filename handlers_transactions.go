package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type movementRequest struct {
	AccountID       uint            `json:"accountId" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ToAccountNumber string          `json:"toAccountNumber"`
}

func depositHandler(c *gin.Context) {
	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := requireOwnAccount(c, req.AccountID); !ok {
		return
	}
	entry, err := svc.Deposit(req.AccountID, req.Amount, req.Description)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func withdrawHandler(c *gin.Context) {
	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := requireOwnAccount(c, req.AccountID); !ok {
		return
	}
	entry, err := svc.Withdraw(req.AccountID, req.Amount, req.Description)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func transferHandler(c *gin.Context) {
	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ToAccountNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toAccountNumber is required"})
		return
	}
	if _, ok := requireOwnAccount(c, req.AccountID); !ok {
		return
	}
	entry, err := svc.Transfer(req.AccountID, req.ToAccountNumber, req.Amount, req.Description)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func historyHandler(c *gin.Context) {
	accountID, ok := uintParam(c, "accountId")
	if !ok {
		return
	}
	if _, ok := requireOwnAccount(c, accountID); !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	entries, err := svc.History(accountID, page, size)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func miniStatementHandler(c *gin.Context) {
	accountID, ok := uintParam(c, "accountId")
	if !ok {
		return
	}
	if _, ok := requireOwnAccount(c, accountID); !ok {
		return
	}
	entries, err := svc.MiniStatement(accountID)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// filterHandler narrows history by type and/or RFC3339 date range. A type
// filter takes precedence over the range.
func filterHandler(c *gin.Context) {
	accountID, ok := uintParam(c, "accountId")
	if !ok {
		return
	}
	if _, ok := requireOwnAccount(c, accountID); !ok {
		return
	}
	txType := c.Query("type")
	var start, end *time.Time
	if s := c.Query("startDate"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		start = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		end = &t
	}
	entries, err := svc.Filter(accountID, txType, start, end)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func monthlySummaryHandler(c *gin.Context) {
	accountID, ok := uintParam(c, "accountId")
	if !ok {
		return
	}
	if _, ok := requireOwnAccount(c, accountID); !ok {
		return
	}
	now := time.Now()
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}
	summary, err := svc.MonthlySummary(accountID, month, year)
	if err != nil {
		writeBankError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getTransactionHandler looks up a single ledger entry by TXN id. The entry
// must touch one of the caller's accounts.
func getTransactionHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	entry, err := svc.TransactionByID(c.Param("transactionId"))
	if err != nil {
		writeBankError(c, err)
		return
	}
	owns := func(accountID uint) bool {
		acc, err := svc.AccountByID(accountID)
		return err == nil && acc.UserID == user.ID
	}
	if !owns(entry.FromAccountID) && (entry.ToAccountID == nil || !owns(*entry.ToAccountID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "transaction does not involve the authenticated user"})
		return
	}
	c.JSON(http.StatusOK, entry)
}
