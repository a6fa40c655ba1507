package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/rloerke/puffins/models"
)

// FeedKind selects the candidate post set before filtering.
type FeedKind int

const (
	// FeedGlobal is the main feed: every non-too-popular post.
	FeedGlobal FeedKind = iota
	// FeedPopular shows posts latched too popular.
	FeedPopular
	// FeedFollowing restricts the main feed to authors the viewer follows.
	FeedFollowing
	// FeedByAuthor shows a single author's non-too-popular posts (profile view).
	FeedByAuthor
)

// FeedItem is one post enriched with its derived counters. The reaction
// tallies ride along on the Post row itself; they are maintained
// incrementally and not recomputed here.
type FeedItem struct {
	Post         models.Post `json:"post"`
	CommentCount int64       `json:"comment_count"`
	NetScore     int         `json:"net_score"`
}

// Feed is an ordered post list plus the distinct categories present in the
// candidate set, for the category filter control.
type Feed struct {
	Items      []FeedItem `json:"items"`
	Categories []string   `json:"categories"`
}

// FeedService composes feeds: candidate selection by kind, visibility
// filtering, category filtering, counter aggregation and ordering.
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a feed composer over db.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// Compose builds the feed of the given kind for viewer.
//
// authorID is only consulted for FeedByAuthor. A non-empty category retains
// only posts whose category matches exactly (case-sensitive). Posts by
// authors the viewer has blocked are hidden from every kind except
// FeedByAuthor, where the profile is shown as-is. Items are ordered newest
// first (descending post id).
func (s *FeedService) Compose(kind FeedKind, viewer Viewer, authorID uint, category string) (Feed, error) {
	if kind == FeedFollowing && viewer.Anonymous() {
		return Feed{}, ErrAuthRequired
	}

	query := s.db.Preload("User").
		Where("too_popular = ?", kind == FeedPopular).
		Order("id DESC")
	if kind == FeedByAuthor {
		query = query.Where("user_id = ?", authorID)
	}

	var candidates []models.Post
	if err := query.Find(&candidates).Error; err != nil {
		return Feed{}, fmt.Errorf("select candidates: %w", err)
	}

	followed, err := s.followedSet(kind, viewer)
	if err != nil {
		return Feed{}, err
	}
	blocked, err := s.blockedSet(kind, viewer)
	if err != nil {
		return Feed{}, err
	}

	// Visibility pass over the candidates, deduplicated by post id.
	seen := make(map[uint]bool, len(candidates))
	visible := make([]models.Post, 0, len(candidates))
	for _, post := range candidates {
		if seen[post.ID] {
			continue
		}
		seen[post.ID] = true
		if kind == FeedFollowing && !followed[post.User.Username] {
			continue
		}
		if blocked[post.User.Username] {
			continue
		}
		visible = append(visible, post)
	}

	// The category menu reflects the whole candidate set, before the
	// visibility and category filters narrow it.
	feed := Feed{
		Items:      make([]FeedItem, 0, len(visible)),
		Categories: distinctCategories(candidates),
	}

	matched := visible
	if category != "" {
		matched = matched[:0]
		for _, post := range visible {
			if post.Category == category {
				matched = append(matched, post)
			}
		}
	}
	if len(matched) == 0 {
		return feed, nil
	}

	commentCounts, netScores, err := s.aggregate(matched)
	if err != nil {
		return Feed{}, err
	}
	for _, post := range matched {
		feed.Items = append(feed.Items, FeedItem{
			Post:         post,
			CommentCount: commentCounts[post.ID],
			NetScore:     netScores[post.ID],
		})
	}
	return feed, nil
}

// followedSet returns the usernames the viewer follows, for FeedFollowing only.
func (s *FeedService) followedSet(kind FeedKind, viewer Viewer) (map[string]bool, error) {
	if kind != FeedFollowing {
		return nil, nil
	}
	var names []string
	if err := s.db.Model(&models.Follow{}).
		Where("follower_username = ?", viewer.Username).
		Pluck("followed_username", &names).Error; err != nil {
		return nil, fmt.Errorf("load follows: %w", err)
	}
	return toSet(names), nil
}

// blockedSet returns the usernames the viewer has blocked. Profile views are
// not block-filtered, and anonymous viewers have no block list.
func (s *FeedService) blockedSet(kind FeedKind, viewer Viewer) (map[string]bool, error) {
	if kind == FeedByAuthor || viewer.Anonymous() {
		return nil, nil
	}
	var names []string
	if err := s.db.Model(&models.Block{}).
		Where("blocker_username = ?", viewer.Username).
		Pluck("blocked_username", &names).Error; err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}
	return toSet(names), nil
}

// aggregate attaches comment counts and net vote scores for the given posts,
// one grouped query per counter so the aggregation stays independent of the
// filtering above.
func (s *FeedService) aggregate(posts []models.Post) (map[uint]int64, map[uint]int, error) {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	type commentRow struct {
		PostID uint
		Total  int64
	}
	var commentRows []commentRow
	if err := s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentRows).Error; err != nil {
		return nil, nil, fmt.Errorf("count comments: %w", err)
	}
	commentCounts := make(map[uint]int64, len(commentRows))
	for _, row := range commentRows {
		commentCounts[row.PostID] = row.Total
	}

	type voteRow struct {
		PostID uint
		Total  int
	}
	var voteRows []voteRow
	if err := s.db.Model(&models.Vote{}).
		Select("post_id, COALESCE(SUM(value), 0) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&voteRows).Error; err != nil {
		return nil, nil, fmt.Errorf("sum votes: %w", err)
	}
	netScores := make(map[uint]int, len(voteRows))
	for _, row := range voteRows {
		netScores[row.PostID] = row.Total
	}

	return commentCounts, netScores, nil
}

func distinctCategories(posts []models.Post) []string {
	seen := make(map[string]bool, len(posts))
	categories := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
