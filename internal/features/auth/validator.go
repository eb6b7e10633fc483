package auth

import (
	"errors"
	"strings"

	"github.com/crimewatch/crimewatch-api/internal/pkg/validator"
)

// ValidateRegister checks a citizen registration payload
func ValidateRegister(req *RegisterRequest) error {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)

	if !validator.IsValidEmail(req.Email) {
		return errors.New("invalid email address")
	}

	if !validator.IsStrongPassword(req.Password) {
		return errors.New("password must be at least 8 characters and contain upper case, lower case and a number")
	}

	if !validator.IsValidName(req.FirstName) {
		return errors.New("first name must contain only letters and be at least 2 characters")
	}

	if !validator.IsValidName(req.LastName) {
		return errors.New("last name must contain only letters and be at least 2 characters")
	}

	if !validator.IsValidPhone(req.Phone) {
		return errors.New("invalid phone number")
	}

	return nil
}

// ValidateLogin checks a login payload
func ValidateLogin(req *LoginRequest) error {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if !validator.IsValidEmail(req.Email) {
		return errors.New("invalid email address")
	}

	if req.Password == "" {
		return errors.New("password is required")
	}

	return nil
}

// ValidateChangePassword checks a password change payload
func ValidateChangePassword(req *ChangePasswordRequest) error {
	if req.CurrentPassword == "" {
		return errors.New("current password is required")
	}

	if !validator.IsStrongPassword(req.NewPassword) {
		return errors.New("new password must be at least 8 characters and contain upper case, lower case and a number")
	}

	return nil
}
