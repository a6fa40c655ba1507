package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rloerke/puffins/models"
)

// ReactionService is the reaction ledger: one emotion per (reactor, post)
// pair, with per-emotion tallies maintained incrementally on the post row.
// The tallies are never recomputed from the ledger outside of tests.
type ReactionService struct {
	db *gorm.DB
}

// NewReactionService creates a reaction ledger over db.
func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db}
}

// Set records viewer's reaction on a post.
//
// A first reaction inserts a ledger row and increments the matching tally.
// Re-sending the same emotion is rejected with ErrDuplicateReaction (the
// admin is exempt and always inserts and increments again). A different
// emotion is a switch: the old tally is decremented, the new one incremented,
// and the row updated in place, all in one transaction so a crash cannot
// leave the tallies out of sync with the ledger.
func (s *ReactionService) Set(viewer Viewer, postID uint, emotion string) error {
	if viewer.Anonymous() {
		return ErrAuthRequired
	}
	if !models.ValidEmotion(emotion) {
		return ErrInvalidEmotion
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load post: %w", err)
		}

		if viewer.IsAdmin {
			if err := tx.Create(&models.Reaction{UserID: viewer.ID, PostID: postID, Emotion: emotion}).Error; err != nil {
				return fmt.Errorf("insert reaction: %w", err)
			}
			return bumpTally(tx, postID, emotion, +1)
		}

		var existing models.Reaction
		err := tx.Where("user_id = ? AND post_id = ?", viewer.ID, postID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Reaction{UserID: viewer.ID, PostID: postID, Emotion: emotion}).Error; err != nil {
				return fmt.Errorf("insert reaction: %w", err)
			}
			return bumpTally(tx, postID, emotion, +1)
		case err != nil:
			return fmt.Errorf("lookup reaction: %w", err)
		case existing.Emotion == emotion:
			return ErrDuplicateReaction
		default:
			// Switch: move the tally from the old emotion to the new one.
			// Update mutates existing in place, so remember the old emotion.
			previous := existing.Emotion
			if err := tx.Model(&existing).Update("emotion", emotion).Error; err != nil {
				return fmt.Errorf("switch reaction: %w", err)
			}
			if err := bumpTally(tx, postID, previous, -1); err != nil {
				return err
			}
			return bumpTally(tx, postID, emotion, +1)
		}
	})
}

// tallyColumn maps an emotion to its counter column on posts.
func tallyColumn(emotion string) string {
	switch emotion {
	case models.EmotionFunny:
		return "funny_count"
	case models.EmotionAngry:
		return "angry_count"
	case models.EmotionLove:
		return "love_count"
	}
	return ""
}

func bumpTally(tx *gorm.DB, postID uint, emotion string, delta int) error {
	col := tallyColumn(emotion)
	if col == "" {
		return ErrInvalidEmotion
	}
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta)).Error; err != nil {
		return fmt.Errorf("update %s: %w", col, err)
	}
	return nil
}
