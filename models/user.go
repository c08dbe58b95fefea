package models

import "time"

// User is the account document. Reminders live embedded in it, one per event.
type User struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"passwordHash,omitempty" json:"-"`
	SavedEvents  []EventID  `bson:"savedEvents" json:"savedEvents"`
	Reminders    []Reminder `bson:"reminders" json:"reminders"`
	FCMToken     string     `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// UserRegistration is the body of POST /api/users/register.
type UserRegistration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserLogin is the body of POST /api/users/login.
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
