package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rloerke/puffins/models"
)

// RelationService manages follow/block edges between users and the
// admin-only rank adjustment.
type RelationService struct {
	db *gorm.DB
}

// NewRelationService creates a relation service over db.
func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

// Follow records that viewer follows target. Following is add-only; there is
// no unfollow operation.
func (s *RelationService) Follow(viewer Viewer, target string) error {
	if err := s.checkRelation(viewer, target); err != nil {
		return err
	}
	var existing models.Follow
	err := s.db.Where("followed_username = ? AND follower_username = ?", target, viewer.Username).
		First(&existing).Error
	if err == nil {
		return ErrDuplicateRelation
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup follow: %w", err)
	}
	edge := models.Follow{FollowedUsername: target, FollowerUsername: viewer.Username}
	if err := s.db.Create(&edge).Error; err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

// Block hides target's posts from viewer's feeds.
func (s *RelationService) Block(viewer Viewer, target string) error {
	if err := s.checkRelation(viewer, target); err != nil {
		return err
	}
	var existing models.Block
	err := s.db.Where("blocked_username = ? AND blocker_username = ?", target, viewer.Username).
		First(&existing).Error
	if err == nil {
		return ErrDuplicateRelation
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup block: %w", err)
	}
	edge := models.Block{BlockedUsername: target, BlockerUsername: viewer.Username}
	if err := s.db.Create(&edge).Error; err != nil {
		return fmt.Errorf("create block: %w", err)
	}
	return nil
}

// Unblock removes viewer's block on target, restoring visibility. Unblocking
// a user who was never blocked succeeds silently.
func (s *RelationService) Unblock(viewer Viewer, target string) error {
	if viewer.Anonymous() {
		return ErrAuthRequired
	}
	if target == viewer.Username {
		return ErrSelfRelation
	}
	if err := s.db.Where("blocked_username = ? AND blocker_username = ?", target, viewer.Username).
		Delete(&models.Block{}).Error; err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	return nil
}

// Blocked lists the usernames viewer has blocked.
func (s *RelationService) Blocked(viewer Viewer) ([]string, error) {
	if viewer.Anonymous() {
		return nil, ErrAuthRequired
	}
	var names []string
	if err := s.db.Model(&models.Block{}).
		Where("blocker_username = ?", viewer.Username).
		Order("blocked_username ASC").
		Pluck("blocked_username", &names).Error; err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	return names, nil
}

// SetRank sets a user's rank. Admin only; ranks run 1-10.
func (s *RelationService) SetRank(viewer Viewer, userID uint, rank int) error {
	if viewer.Anonymous() {
		return ErrAuthRequired
	}
	if !viewer.IsAdmin {
		return ErrOwnership
	}
	if rank < models.RankMin || rank > models.RankMax {
		return ErrInvalidRank
	}
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("rank", rank)
	if res.Error != nil {
		return fmt.Errorf("update rank: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// checkRelation validates the shared preconditions for follow/block edges:
// the viewer is authenticated, is not targeting themselves, and the target
// account exists.
func (s *RelationService) checkRelation(viewer Viewer, target string) error {
	if viewer.Anonymous() {
		return ErrAuthRequired
	}
	if target == viewer.Username {
		return ErrSelfRelation
	}
	var user models.User
	if err := s.db.Where("username = ?", target).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	return nil
}
