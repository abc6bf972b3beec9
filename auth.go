package main

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/benjangure/banking-management-system/models"
)

// RegisterUser creates a user plus its default savings/checking pair in one
// transaction. Returns the stored user and the freshly opened accounts.
func RegisterUser(username, email, password, fullName, phoneNumber string) (models.User, []models.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return models.User{}, nil, fmt.Errorf("username and email required")
	}
	if len(password) < 6 { // basic password policy
		return models.User{}, nil, fmt.Errorf("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		return models.User{}, nil, fmt.Errorf("username or email already exists")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, nil, err
	}

	user := models.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		FullName:       fullName,
		PhoneNumber:    phoneNumber,
	}
	var accounts []models.Account
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if isUserUniqueError(err) { // race condition after initial check
				return fmt.Errorf("username or email already exists")
			}
			return err
		}
		accounts, err = svc.OpenDefaultAccounts(tx, user.ID)
		return err
	})
	if err != nil {
		return models.User{}, nil, err
	}
	return user, accounts, nil
}

// Authenticate matches a username or email against the stored bcrypt hash.
func Authenticate(usernameOrEmail, password string) (models.User, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	var user models.User
	if err := db.Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid username or password")
	}
	return user, nil
}

func isUserUniqueError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
