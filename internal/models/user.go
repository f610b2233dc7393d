package models

import (
	"gorm.io/gorm"
)

// User represents a registered student account
type User struct {
	ID                string `json:"id" gorm:"primaryKey"`
	Email             string `json:"email" gorm:"unique;not null"`
	StudentID         string `json:"studentId" gorm:"column:student_id;unique;not null"`
	FullName          string `json:"fullName" gorm:"column:full_name;not null"`
	PasswordHash      string `json:"-" gorm:"column:password_hash;not null"`
	IsVerified        bool   `json:"isVerified" gorm:"column:is_verified;default:false"`
	VerificationToken string `json:"-" gorm:"column:verification_token"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
