package model

import "time"

// UserEntity represents the users table entity
type UserEntity struct {
	ID           uint64    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FullName     *string   `db:"full_name" json:"full_name"`
	Phone        *string   `db:"phone" json:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// UserFilter for querying users
type UserFilter struct {
	ID    uint64
	Email string
}

// UserProfile is the public view of a user; it never carries the hash.
type UserProfile struct {
	ID       uint64  `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

func (u *UserEntity) Profile() UserProfile {
	return UserProfile{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
	}
}

// AuthRequest is the body of POST /auth; Action selects register or login.
type AuthRequest struct {
	Action   string  `json:"action"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// RegisterRequest for user registration
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// LoginRequest for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// ProfileResponse is returned by GET /auth.
type ProfileResponse struct {
	User UserProfile `json:"user"`
}
