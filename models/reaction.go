package models

import "time"

// Reaction emotions a user may attach to a post. Mutually exclusive per
// (user, post): switching emotion updates the existing row.
const (
	EmotionFunny = "funny"
	EmotionAngry = "angry"
	EmotionLove  = "love"
)

// Emotions lists the valid reaction emotions.
var Emotions = []string{EmotionFunny, EmotionAngry, EmotionLove}

// ValidEmotion reports whether s names a known reaction emotion.
func ValidEmotion(s string) bool {
	for _, e := range Emotions {
		if s == e {
			return true
		}
	}
	return false
}

// Reaction is a ledger row recording one emotion reaction on a post.
// Like votes, the admin account may accumulate multiple rows per post.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_reactions_user_post" json:"user_id"`
	PostID    uint      `gorm:"index:idx_reactions_user_post;index" json:"post_id"`
	Emotion   string    `gorm:"size:16;not null" json:"emotion"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
