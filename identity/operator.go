package identity

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	usernamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minUsernameLength = 3
	maxUsernameLength = 20

	passwordHashCost = 12
)

var (
	ErrUsernameTooShort  = errors.New("username too short")
	ErrUsernameTooLong   = errors.New("username too long")
	ErrInvalidUsername   = errors.New("invalid username format")
	ErrWeakPassword      = errors.New("weak password")
	ErrInvalidCredential = errors.New("invalid username or password")

	usernameRegex = regexp.MustCompile(usernamePattern)
)

// Operator is the account allowed to start and drive maze generation.
type Operator struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}

// NewOperator validates the credentials and stores a hash of the password.
func NewOperator(username, plainPassword string) (*Operator, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	if err := validatePassword(plainPassword); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(plainPassword)
	if err != nil {
		return nil, err
	}

	return &Operator{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
	}, nil
}

// VerifyPassword verifies if the given password matches the stored hash.
func (o *Operator) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password))
	return err == nil
}

// Authenticate checks username and password together so callers cannot tell
// which of the two was wrong.
func (o *Operator) Authenticate(username, password string) error {
	if username != o.Username || !o.VerifyPassword(password) {
		return ErrInvalidCredential
	}
	return nil
}

// validateUsername validates the username.
func validateUsername(username string) error {
	if len(username) < minUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// validatePassword checks the strength of the password.
func validatePassword(password string) error {
	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}

// hashPassword generates a bcrypt hash for the given password.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return string(bytes), err
}
