package models

import "time"

// Post represents an unpopular opinion published by a user.
//
// TooPopular is a one-way latch: once the net vote score crosses the
// popularity threshold the post leaves the main feed permanently.
// The three reaction counters are maintained incrementally by the
// reaction ledger and must always equal the count of reaction rows
// attributing that emotion to the post.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Category   string    `gorm:"size:64;index" json:"category"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	TooPopular bool      `gorm:"default:false;index" json:"too_popular"`
	FunnyCount int       `gorm:"default:0" json:"funny_count"`
	AngryCount int       `gorm:"default:0" json:"angry_count"`
	LoveCount  int       `gorm:"default:0" json:"love_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments   []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
