package models

import (
	"time"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleBoard  UserRole = "board"
)

type User struct {
	ID            uint       `json:"id" gorm:"primarykey"`
	Name          string     `json:"name" gorm:"not null"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Username      string     `json:"username" gorm:"uniqueIndex;not null"`
	Password      string     `json:"-" gorm:"not null"`
	Role          UserRole   `json:"role" gorm:"default:'member'"`
	IsActive      bool       `json:"is_active" gorm:"default:false"`
	EmailVerified *time.Time `json:"email_verified"`
	LoginAttempts int        `json:"-" gorm:"default:0"`
	BlockExpires  *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Info strips the credential and throttling fields for responses.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Username:      u.Username,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
	}
}
