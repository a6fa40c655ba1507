package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a Puffins account. Passwords are stored as bcrypt hashes only.
// The username is the natural key for follow/block relations.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Rank         int       `gorm:"default:1" json:"rank"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Comments     []Comment `json:"-"`
	Posts        []Post    `json:"-"`
}

const (
	// RankMin and RankMax bound the rank an admin may assign.
	RankMin = 1
	RankMax = 10
)

// BeforeCreate hook ensures timestamps and the default rank are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Rank == 0 {
		u.Rank = RankMin
	}
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
