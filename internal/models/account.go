package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Account links a human credential (email/password or Firebase identity) to a
// ledger address. The address is generated at signup and never changes.
// FirebaseUID is a pointer: local signups leave it NULL, and NULLs never
// collide under the unique index the way empty strings would.
type Account struct {
	gorm.Model  `json:"-"`
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name"`
	Email       string  `json:"email" gorm:"uniqueIndex"`
	Password    string  `json:"-"` // bcrypt hash, never serialized
	Address     string  `json:"address" gorm:"uniqueIndex"`
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
}

// SignupRequest defines the request body for local registration.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the request body for local authentication.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims.
// Address is the ledger address the token holder is entitled to sign for.
type JwtCustomClaims struct {
	AccountID uint   `json:"account_id"`
	Address   string `json:"address"`
	jwt.RegisteredClaims
}
