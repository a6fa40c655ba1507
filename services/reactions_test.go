package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rloerke/puffins/models"
)

func tallies(t *testing.T, db *gorm.DB, postID uint) (funny, angry, love int) {
	t.Helper()
	var p models.Post
	require.NoError(t, db.First(&p, postID).Error)
	return p.FunnyCount, p.AngryCount, p.LoveCount
}

func TestReactionSet_FirstReaction(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)

	author := createUser(t, db, "bob")
	reader := createUser(t, db, "john")
	post := createPost(t, db, author, "Mondays are fine", "Work")

	require.NoError(t, svc.Set(asViewer(reader), post.ID, models.EmotionFunny))

	funny, angry, love := tallies(t, db, post.ID)
	assert.Equal(t, 1, funny)
	assert.Equal(t, 0, angry)
	assert.Equal(t, 0, love)
}

func TestReactionSet_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)

	author := createUser(t, db, "bob")
	reader := createUser(t, db, "john")
	post := createPost(t, db, author, "Mondays are fine", "Work")

	require.NoError(t, svc.Set(asViewer(reader), post.ID, models.EmotionLove))
	err := svc.Set(asViewer(reader), post.ID, models.EmotionLove)
	assert.ErrorIs(t, err, ErrDuplicateReaction)

	funny, _, love := tallies(t, db, post.ID)
	assert.Equal(t, 0, funny)
	assert.Equal(t, 1, love, "a rejected duplicate must not inflate the tally")
}

func TestReactionSet_SwitchMovesTally(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)

	author := createUser(t, db, "bob")
	reader := createUser(t, db, "john")
	post := createPost(t, db, author, "Mondays are fine", "Work")

	require.NoError(t, svc.Set(asViewer(reader), post.ID, models.EmotionFunny))
	require.NoError(t, svc.Set(asViewer(reader), post.ID, models.EmotionAngry))

	funny, angry, love := tallies(t, db, post.ID)
	assert.Equal(t, 0, funny, "the old tally is decremented on a switch")
	assert.Equal(t, 1, angry)
	assert.Equal(t, 0, love)

	var rows int64
	require.NoError(t, db.Model(&models.Reaction{}).
		Where("user_id = ? AND post_id = ?", reader.ID, post.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows, "a switch updates the row in place")

	var row models.Reaction
	require.NoError(t, db.Where("user_id = ? AND post_id = ?", reader.ID, post.ID).First(&row).Error)
	assert.Equal(t, models.EmotionAngry, row.Emotion)
}

func TestReactionSet_AdminAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)

	author := createUser(t, db, "bob")
	root := createUser(t, db, "admin")
	post := createPost(t, db, author, "Mondays are fine", "Work")

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Set(asAdmin(root), post.ID, models.EmotionFunny))
	}

	funny, _, _ := tallies(t, db, post.ID)
	assert.Equal(t, 3, funny)

	var rows int64
	require.NoError(t, db.Model(&models.Reaction{}).Where("post_id = ?", post.ID).Count(&rows).Error)
	assert.EqualValues(t, 3, rows)
}

func TestReactionSet_Rejections(t *testing.T) {
	db := newTestDB(t)
	svc := NewReactionService(db)

	author := createUser(t, db, "bob")
	reader := createUser(t, db, "john")
	post := createPost(t, db, author, "Mondays are fine", "Work")

	assert.ErrorIs(t, svc.Set(Viewer{}, post.ID, models.EmotionFunny), ErrAuthRequired)
	assert.ErrorIs(t, svc.Set(asViewer(reader), post.ID, "bored"), ErrInvalidEmotion)
	assert.ErrorIs(t, svc.Set(asViewer(reader), 9999, models.EmotionFunny), ErrNotFound)
}
