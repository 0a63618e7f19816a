package user

import (
	"time"

	"gorm.io/gorm"
)

// ContextUserKey is the key under which the authenticated User is stored in
// Gin context.
const ContextUserKey = "user"

// User is an account record. The password hash never leaves the service
// layer.
type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Name     string `json:"name" gorm:"index;not null"`
	Password string `json:"-" gorm:"not null"`
	Timezone string `json:"timezone" gorm:"default:'UTC'"`
}

// PublicUser is the externally visible projection of a User.
type PublicUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
}

func NewUser(email, name, hashedPassword, timezone string) *User {
	if timezone == "" {
		timezone = "UTC"
	}
	return &User{
		Email:    email,
		Name:     name,
		Password: hashedPassword,
		Timezone: timezone,
	}
}
