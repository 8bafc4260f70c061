package models

import "time"

type CreateUserRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Username        string   `json:"username" validate:"required,min=3,max=50"`
	Password        string   `json:"password" validate:"required,min=8"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            UserRole `json:"role,omitempty" validate:"omitempty,oneof=member board"`
}

// CreatedUser carries the verification token back for out-of-band
// delivery; the mail itself is not this service's problem.
type CreatedUser struct {
	ID                  uint      `json:"id"`
	Name                string    `json:"name"`
	Verification        string    `json:"verification"`
	VerificationExpires time.Time `json:"verification_expires"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo is the sanitized user view. Password and login attempt
// counters never leave the service layer.
type UserInfo struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	Role          UserRole   `json:"role"`
	EmailVerified *time.Time `json:"email_verified"`
	IsActive      bool       `json:"is_active"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateRoleRequest struct {
	Role UserRole `json:"role" validate:"required,oneof=member board"`
}

type ForgotPasswordRequest struct {
	Email          string `json:"email" validate:"required,email"`
	IPRequest      string `json:"ip_request"`
	BrowserRequest string `json:"browser_request"`
	CountryRequest string `json:"country_request"`
}

type VerifyForgotPasswordRequest struct {
	IPChanged      string `json:"ip_changed"`
	BrowserChanged string `json:"browser_changed"`
	CountryChanged string `json:"country_changed"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateArticleRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Content     string  `json:"content" validate:"required"`
	Thumbnail   string  `json:"thumbnail"`
	CategoryIDs []uint  `json:"category_ids" validate:"required,min=1"`
	Publish     Publish `json:"publish" validate:"omitempty,oneof=draft publish"`
}

type UpdateArticleRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Content     string  `json:"content" validate:"required"`
	Thumbnail   string  `json:"thumbnail"`
	CategoryIDs []uint  `json:"category_ids" validate:"required,min=1"`
	Publish     Publish `json:"publish" validate:"omitempty,oneof=draft publish"`
}

type UpdatePublishRequest struct {
	Publish Publish `json:"publish" validate:"required,oneof=draft publish"`
}

type PublishState struct {
	Title       string     `json:"title"`
	Publish     Publish    `json:"publish"`
	DatePublish *time.Time `json:"date_publish"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
