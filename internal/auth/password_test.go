package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	require.True(t, CheckPassword("correct horse battery", hash))
	require.False(t, CheckPassword("wrong password", hash))
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("student@unilag.edu.ng"))
	require.True(t, IsValidEmail("someone@live.unilag.edu.ng"))
	require.False(t, IsValidEmail("someone@example.com"))
	require.False(t, IsValidEmail("no-at-sign"))
	require.False(t, IsValidEmail("trailing@"))
}

func TestIsValidEmail_EnvOverride(t *testing.T) {
	t.Setenv("ALLOWED_EMAIL_DOMAINS", "example.org, campus.test")
	require.True(t, IsValidEmail("a@example.org"))
	require.True(t, IsValidEmail("b@Campus.Test"))
	require.False(t, IsValidEmail("student@unilag.edu.ng"))
}

func TestIsValidStudentID(t *testing.T) {
	require.True(t, IsValidStudentID("202400123"))
	require.False(t, IsValidStudentID("20240012"))   // too short
	require.False(t, IsValidStudentID("2024001234")) // too long
	require.False(t, IsValidStudentID("20240012a"))
}

func TestNewVerificationToken_Unique(t *testing.T) {
	require.NotEqual(t, NewVerificationToken(), NewVerificationToken())
}
