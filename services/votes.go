package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rloerke/puffins/models"
)

// Direction of a vote.
type Direction int

const (
	// Up adds +1 to the post's net score.
	Up Direction = 1
	// Down adds -1 to the post's net score.
	Down Direction = -1
)

// VoteResult reports the outcome of a cast vote.
type VoteResult struct {
	// NetScore is the post's net vote score after the cast.
	NetScore int
	// BecameTooPopular is true only on the single cast that pushed the post
	// over the popularity threshold; the caller uses it to redirect the voter
	// to the Too Popular feed.
	BecameTooPopular bool
}

// VoteService is the vote ledger: one signed vote per (voter, post) pair with
// idempotent set/flip semantics, plus the popularity latch applied after each
// score change.
type VoteService struct {
	db        *gorm.DB
	threshold int
}

// NewVoteService creates a vote ledger over db. A post is latched too-popular
// once its net score exceeds threshold.
func NewVoteService(db *gorm.DB, threshold int) *VoteService {
	return &VoteService{db: db, threshold: threshold}
}

// Cast records viewer's vote on a post.
//
// No prior vote inserts a new ±1 row. A prior vote of the opposite sign is
// flipped in place, moving the net score by 2. A prior vote of the same sign
// is rejected with ErrDuplicateVote — unless the viewer is the admin, who is
// never deduplicated and always inserts a fresh row. The ledger mutation and
// the popularity latch update run in one transaction.
func (s *VoteService) Cast(viewer Viewer, postID uint, dir Direction) (VoteResult, error) {
	if viewer.Anonymous() {
		return VoteResult{}, ErrAuthRequired
	}
	if dir != Up && dir != Down {
		return VoteResult{}, fmt.Errorf("invalid vote direction %d", dir)
	}

	var result VoteResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load post: %w", err)
		}

		if viewer.IsAdmin {
			// Admin votes are never deduplicated; each cast is a new row.
			if err := tx.Create(&models.Vote{UserID: viewer.ID, PostID: postID, Value: int(dir)}).Error; err != nil {
				return fmt.Errorf("insert vote: %w", err)
			}
		} else {
			var existing models.Vote
			err := tx.Where("user_id = ? AND post_id = ?", viewer.ID, postID).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&models.Vote{UserID: viewer.ID, PostID: postID, Value: int(dir)}).Error; err != nil {
					return fmt.Errorf("insert vote: %w", err)
				}
			case err != nil:
				return fmt.Errorf("lookup vote: %w", err)
			case existing.Value == int(dir):
				return ErrDuplicateVote
			default:
				// Opposite sign: flip the existing row, net score moves by 2.
				if err := tx.Model(&existing).Update("value", int(dir)).Error; err != nil {
					return fmt.Errorf("flip vote: %w", err)
				}
			}
		}

		net, err := netScore(tx, postID)
		if err != nil {
			return err
		}
		result.NetScore = net

		// One-way latch: a too-popular post never returns to the main feed,
		// even if later downvotes bring the score back under the threshold.
		if net > s.threshold && !post.TooPopular {
			if err := tx.Model(&post).Update("too_popular", true).Error; err != nil {
				return fmt.Errorf("latch too popular: %w", err)
			}
			result.BecameTooPopular = true
		}
		return nil
	})
	if err != nil {
		return VoteResult{}, err
	}
	return result, nil
}

// NetScore returns the sum of all signed votes for a post, 0 when none exist.
func (s *VoteService) NetScore(postID uint) (int, error) {
	return netScore(s.db, postID)
}

func netScore(tx *gorm.DB, postID uint) (int, error) {
	var net int
	if err := tx.Model(&models.Vote{}).
		Where("post_id = ?", postID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&net).Error; err != nil {
		return 0, fmt.Errorf("sum votes: %w", err)
	}
	return net, nil
}
