package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/EATMove/CDT-sub001/internal/access"
)

// bcrypt ignores everything past 72 bytes
const maxPasswordBytes = 72

// User is a mobile app account. Admins manage these; the admin itself is not
// a row.
type User struct {
	ID           string          `json:"id" db:"id"`
	Email        string          `json:"email" db:"email"`
	DisplayName  string          `json:"display_name" db:"display_name"`
	PasswordHash string          `json:"-" db:"password_hash"`
	Tier         access.UserTier `json:"tier" db:"tier"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateUserRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	DisplayName string          `json:"display_name" validate:"max=200"`
	Password    string          `json:"password" validate:"min=8"`
	Tier        access.UserTier `json:"tier" validate:"required,oneof=FREE TRIAL MEMBER"`
}

func (r *CreateUserRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if r.Tier == "" {
		r.Tier = access.UserFree
	}
	if err := check(r); err != nil {
		return err
	}
	return checkPasswordBytes(r.Password)
}

// UpdateUserRequest leaves the password hashing to the caller; Apply only
// validates it.
type UpdateUserRequest struct {
	DisplayName *string          `json:"display_name" validate:"omitnil,max=200"`
	Tier        *access.UserTier `json:"tier" validate:"omitnil,oneof=FREE TRIAL MEMBER"`
	Password    *string          `json:"password" validate:"omitnil,min=8"`
}

func (r *UpdateUserRequest) Apply(u *User) error {
	trimPtr(r.DisplayName)
	if err := check(r); err != nil {
		return err
	}
	if r.Password != nil {
		if err := checkPasswordBytes(*r.Password); err != nil {
			return err
		}
	}

	if r.DisplayName != nil {
		u.DisplayName = *r.DisplayName
	}
	if r.Tier != nil {
		u.Tier = *r.Tier
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPasswordBytes(pw string) error {
	if len(pw) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalid, maxPasswordBytes)
	}
	return nil
}
