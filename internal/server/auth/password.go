package auth

import (
	"regexp"
	"strings"

	"github.com/webedt/webedt/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for stored password digests.
const BcryptCost = 10

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

const (
	generatedPasswordLength  = 12
	generatedPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches digest. A malformed digest
// is a mismatch.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// GenerateRandomPassword returns a 12-character password for auto-provisioned
// accounts.
func GenerateRandomPassword() string {
	return common.RandomString(generatedPasswordCharset, generatedPasswordLength)
}

// ValidatePassword applies the password policy and returns the message of
// the first rule that fails.
func ValidatePassword(password string) (bool, string) {
	if len(password) > MaxPasswordBytes {
		return false, "Password must be at most 72 bytes long"
	}
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	if !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		return false, "Password must contain at least one lowercase letter"
	}
	if !strings.ContainsAny(password, "0123456789") {
		return false, "Password must contain at least one number"
	}
	return true, ""
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
