package models

import (
	"time"
)

// User represents an account in the system.
type User struct {
	ID        string    `json:"id" firestore:"-"`
	Username  string    `json:"username" firestore:"username"`
	Password  string    `json:"-" firestore:"password"` // bcrypt hash, never returned in JSON
	Email     string    `json:"email" firestore:"email"`
	Role      string    `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// UserRegister holds data needed for registration.
type UserRegister struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
}

// UserLogin holds data needed for login.
type UserLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
