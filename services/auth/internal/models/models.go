package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken is the single live refresh token of a user. Rotation
// overwrites Token and ExpiresAt in place.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null"     json:"token"`
	UserID    uint      `gorm:"uniqueIndex;not null"     json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
