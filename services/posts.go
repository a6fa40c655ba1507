package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rloerke/puffins/models"
)

// PostService owns the post and comment lifecycle: create, edit, delete with
// ownership checks (admin override), and the single-post view with its
// derived counters.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a post service over db.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostView is a single post with its comments and derived counters.
type PostView struct {
	Post         models.Post      `json:"post"`
	Comments     []models.Comment `json:"comments"`
	CommentCount int64            `json:"comment_count"`
	NetScore     int              `json:"net_score"`
}

// Create publishes a new post authored by viewer.
func (s *PostService) Create(viewer Viewer, title, category, body string) (models.Post, error) {
	if viewer.Anonymous() {
		return models.Post{}, ErrAuthRequired
	}
	post := models.Post{
		UserID:   viewer.ID,
		Title:    strings.TrimSpace(title),
		Category: strings.TrimSpace(category),
		Body:     body,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}
	if err := s.db.Preload("User").First(&post, post.ID).Error; err != nil {
		return models.Post{}, fmt.Errorf("reload post: %w", err)
	}
	return post, nil
}

// Update edits a post's title, category and body. Only the owner or the
// admin may edit; ownership and tallies are untouched.
func (s *PostService) Update(viewer Viewer, postID uint, title, category, body string) (models.Post, error) {
	if viewer.Anonymous() {
		return models.Post{}, ErrAuthRequired
	}
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, fmt.Errorf("load post: %w", err)
	}
	if post.UserID != viewer.ID && !viewer.IsAdmin {
		return models.Post{}, ErrOwnership
	}
	// Only the edited columns are written. Writing the whole row back would
	// clobber tally bumps or the popularity latch committed since the load.
	if err := s.db.Model(&post).Updates(map[string]interface{}{
		"title":    strings.TrimSpace(title),
		"category": strings.TrimSpace(category),
		"body":     body,
	}).Error; err != nil {
		return models.Post{}, fmt.Errorf("update post: %w", err)
	}
	if err := s.db.First(&post, post.ID).Error; err != nil {
		return models.Post{}, fmt.Errorf("reload post: %w", err)
	}
	return post, nil
}

// Delete removes a post and cascades its dependent rows: comments and the
// vote/reaction ledger entries referencing it, in one transaction. Only the
// owner or the admin may delete.
func (s *PostService) Delete(viewer Viewer, postID uint) error {
	if viewer.Anonymous() {
		return ErrAuthRequired
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load post: %w", err)
		}
		if post.UserID != viewer.ID && !viewer.IsAdmin {
			return ErrOwnership
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Vote{}).Error; err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error; err != nil {
			return fmt.Errorf("delete reactions: %w", err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}

// Get returns a single post with its author, ordered comments and counters.
func (s *PostService) Get(postID uint) (PostView, error) {
	var view PostView
	if err := s.db.Preload("User").First(&view.Post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PostView{}, ErrNotFound
		}
		return PostView{}, fmt.Errorf("load post: %w", err)
	}
	if err := s.db.Preload("User").
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&view.Comments).Error; err != nil {
		return PostView{}, fmt.Errorf("load comments: %w", err)
	}
	view.CommentCount = int64(len(view.Comments))
	net, err := netScore(s.db, postID)
	if err != nil {
		return PostView{}, err
	}
	view.NetScore = net
	return view, nil
}

// CreateComment adds a comment by viewer to a post.
func (s *PostService) CreateComment(viewer Viewer, postID uint, body string) (models.Comment, error) {
	if viewer.Anonymous() {
		return models.Comment{}, ErrAuthRequired
	}
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, ErrNotFound
		}
		return models.Comment{}, fmt.Errorf("load post: %w", err)
	}
	comment := models.Comment{PostID: post.ID, UserID: viewer.ID, Body: body}
	if err := s.db.Create(&comment).Error; err != nil {
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return models.Comment{}, fmt.Errorf("reload comment: %w", err)
	}
	return comment, nil
}
