package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rloerke/puffins/models"
)

func feedTitles(feed Feed) []string {
	titles := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		titles = append(titles, item.Post.Title)
	}
	return titles
}

func TestFeedCompose_GlobalExcludesTooPopular(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)

	bob := createUser(t, db, "bob")
	first := createPost(t, db, bob, "Socks with sandals", "Fashion")
	second := createPost(t, db, bob, "My New Car", "Vehicles")
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", second.ID).
		Update("too_popular", true).Error)

	feed, err := svc.Compose(FeedGlobal, Viewer{}, 0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{first.Title}, feedTitles(feed))

	popular, err := svc.Compose(FeedPopular, Viewer{}, 0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{second.Title}, feedTitles(popular))
}

func TestFeedCompose_NewestFirstWithCounters(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)

	bob := createUser(t, db, "bob")
	john := createUser(t, db, "john")
	older := createPost(t, db, bob, "Rain is pleasant", "Weather")
	newer := createPost(t, db, bob, "Winter beats summer", "Weather")

	require.NoError(t, db.Create(&models.Comment{PostID: older.ID, UserID: john.ID, Body: "agreed"}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: older.ID, UserID: bob.ID, Body: "thanks"}).Error)
	require.NoError(t, db.Create(&models.Vote{PostID: older.ID, UserID: john.ID, Value: 1}).Error)
	require.NoError(t, db.Create(&models.Vote{PostID: newer.ID, UserID: john.ID, Value: -1}).Error)

	feed, err := svc.Compose(FeedGlobal, asViewer(john), 0, "")
	require.NoError(t, err)
	require.Len(t, feed.Items, 2)

	assert.Equal(t, newer.Title, feed.Items[0].Post.Title, "feeds are ordered newest first")
	assert.Equal(t, -1, feed.Items[0].NetScore)
	assert.EqualValues(t, 0, feed.Items[0].CommentCount)

	assert.Equal(t, older.Title, feed.Items[1].Post.Title)
	assert.Equal(t, 1, feed.Items[1].NetScore)
	assert.EqualValues(t, 2, feed.Items[1].CommentCount)

	assert.Equal(t, "bob", feed.Items[0].Post.User.Username, "authors ride along on feed items")
}

func TestFeedCompose_CategoryFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)

	bob := createUser(t, db, "bob")
	movies := createPost(t, db, bob, "Sequels beat originals", "Movies")
	createPost(t, db, bob, "Pineapple belongs on pizza", "Pizza")

	feed, err := svc.Compose(FeedGlobal, Viewer{}, 0, "Movies")
	require.NoError(t, err)
	assert.Equal(t, []string{movies.Title}, feedTitles(feed))
	assert.Equal(t, []string{"Movies", "Pizza"}, feed.Categories,
		"the category list covers the candidate set, not the filtered one")

	feed, err = svc.Compose(FeedGlobal, Viewer{}, 0, "movies")
	require.NoError(t, err)
	assert.Empty(t, feed.Items, "category matching is case-sensitive")
}

func TestFeedCompose_BlockHidesAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	relations := NewRelationService(db)

	bob := createUser(t, db, "bob")
	john := createUser(t, db, "john")
	bobPost := createPost(t, db, bob, "Socks with sandals", "Fashion")
	johnPost := createPost(t, db, john, "Cats are overrated", "Pets")

	require.NoError(t, relations.Block(asViewer(john), "bob"))

	feed, err := svc.Compose(FeedGlobal, asViewer(john), 0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{johnPost.Title}, feedTitles(feed))
	assert.Equal(t, []string{"Fashion", "Pets"}, feed.Categories,
		"blocking an author does not remove their categories from the menu")

	// The block is one-directional and per-viewer.
	feed, err = svc.Compose(FeedGlobal, asViewer(bob), 0, "")
	require.NoError(t, err)
	assert.Len(t, feed.Items, 2)

	feed, err = svc.Compose(FeedGlobal, Viewer{}, 0, "")
	require.NoError(t, err)
	assert.Len(t, feed.Items, 2, "anonymous viewers see everything")

	require.NoError(t, relations.Unblock(asViewer(john), "bob"))
	feed, err = svc.Compose(FeedGlobal, asViewer(john), 0, "")
	require.NoError(t, err)
	assert.Contains(t, feedTitles(feed), bobPost.Title, "unblocking restores visibility")
}

func TestFeedCompose_Following(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	relations := NewRelationService(db)

	bob := createUser(t, db, "bob")
	jane := createUser(t, db, "jane")
	john := createUser(t, db, "john")
	bobPost := createPost(t, db, bob, "Socks with sandals", "Fashion")
	createPost(t, db, jane, "Cereal is soup", "Food")

	require.NoError(t, relations.Follow(asViewer(john), "bob"))

	feed, err := svc.Compose(FeedFollowing, asViewer(john), 0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{bobPost.Title}, feedTitles(feed))

	_, err = svc.Compose(FeedFollowing, Viewer{}, 0, "")
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestFeedCompose_ByAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	relations := NewRelationService(db)

	bob := createUser(t, db, "bob")
	john := createUser(t, db, "john")
	visible := createPost(t, db, bob, "Socks with sandals", "Fashion")
	latched := createPost(t, db, bob, "My New Car", "Vehicles")
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", latched.ID).
		Update("too_popular", true).Error)
	createPost(t, db, john, "Cats are overrated", "Pets")

	require.NoError(t, relations.Block(asViewer(john), "bob"))

	feed, err := svc.Compose(FeedByAuthor, asViewer(john), bob.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{visible.Title}, feedTitles(feed),
		"a profile shows the author's posts regardless of blocks, minus the too-popular ones")
}
