package models

import "time"

// Vote is a ledger row recording one signed vote on a post.
//
// At most one row exists per (voter, post) pair; a changed mind flips the
// existing row's value in place. The admin account is exempt from the
// uniqueness rule and may accumulate any number of rows, so the pair is
// deliberately not a unique index.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_votes_user_post" json:"user_id"`
	PostID    uint      `gorm:"index:idx_votes_user_post;index" json:"post_id"`
	Value     int       `gorm:"not null" json:"value"` // +1 or -1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
