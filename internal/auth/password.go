package auth

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches what the account base was hashed with.
const bcryptCost = 12

// MinPasswordLength is the registration floor.
const MinPasswordLength = 8

var studentIDPattern = regexp.MustCompile(`^\d{9}$`)

// defaultEmailDomains lists the campus domains accepted when
// ALLOWED_EMAIL_DOMAINS is not set.
var defaultEmailDomains = []string{
	"live.unilag.edu.ng",
	"unilag.edu.ng",
	"college.edu",
	"gmail.com",
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewVerificationToken returns an opaque single-use email verification token.
func NewVerificationToken() string {
	return uuid.NewString()
}

// IsValidEmail reports whether the address belongs to an allowed domain.
// Override the built-in list with a comma-separated ALLOWED_EMAIL_DOMAINS.
func IsValidEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(email[at+1:])

	allowed := defaultEmailDomains
	if env := getEnv("ALLOWED_EMAIL_DOMAINS", ""); env != "" {
		allowed = strings.Split(env, ",")
	}
	for _, d := range allowed {
		if domain == strings.ToLower(strings.TrimSpace(d)) {
			return true
		}
	}
	return false
}

// IsValidStudentID reports whether the matric number has the expected
// 9-digit format.
func IsValidStudentID(studentID string) bool {
	return studentIDPattern.MatchString(studentID)
}
