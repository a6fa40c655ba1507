package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rloerke/puffins/models"
)

func TestVoteCast_FirstVote(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db, 20)

	author := createUser(t, db, "bob")
	voter := createUser(t, db, "john")
	post := createPost(t, db, author, "Pineapple belongs on pizza", "Food")

	net, err := svc.NetScore(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, net, "a fresh post starts at zero")

	res, err := svc.Cast(asViewer(voter), post.ID, Up)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NetScore)
	assert.False(t, res.BecameTooPopular)

	res, err = svc.Cast(asViewer(author), post.ID, Down)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NetScore)
}

func TestVoteCast_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db, 20)

	author := createUser(t, db, "bob")
	voter := createUser(t, db, "john")
	post := createPost(t, db, author, "Cats are overrated", "Pets")

	_, err := svc.Cast(asViewer(voter), post.ID, Up)
	require.NoError(t, err)

	_, err = svc.Cast(asViewer(voter), post.ID, Up)
	assert.ErrorIs(t, err, ErrDuplicateVote)

	net, err := svc.NetScore(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, net, "a rejected duplicate must not change the score")

	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).Where("post_id = ?", post.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestVoteCast_FlipMovesScoreByTwo(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db, 20)

	author := createUser(t, db, "bob")
	voter := createUser(t, db, "john")
	post := createPost(t, db, author, "Winter beats summer", "Weather")

	res, err := svc.Cast(asViewer(voter), post.ID, Up)
	require.NoError(t, err)
	require.Equal(t, 1, res.NetScore)

	res, err = svc.Cast(asViewer(voter), post.ID, Down)
	require.NoError(t, err)
	assert.Equal(t, -1, res.NetScore, "a flip moves the net score by two")

	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).Where("post_id = ?", post.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows, "a flip updates the row in place")
}

func TestVoteCast_AdminRepeatVotesLatchPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db, 20)

	author := createUser(t, db, "bob")
	root := createUser(t, db, "admin")
	post := createPost(t, db, author, "My New Car", "Vehicles")

	for i := 0; i < 20; i++ {
		res, err := svc.Cast(asAdmin(root), post.ID, Up)
		require.NoError(t, err)
		assert.False(t, res.BecameTooPopular, "vote %d must not cross the threshold", i+1)
	}

	res, err := svc.Cast(asAdmin(root), post.ID, Up)
	require.NoError(t, err)
	assert.Equal(t, 21, res.NetScore)
	assert.True(t, res.BecameTooPopular, "the 21st upvote crosses the threshold")

	var latched models.Post
	require.NoError(t, db.First(&latched, post.ID).Error)
	assert.True(t, latched.TooPopular)
}

func TestVoteCast_LatchIsOneWay(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db, 2)

	author := createUser(t, db, "bob")
	root := createUser(t, db, "admin")
	voter := createUser(t, db, "john")
	post := createPost(t, db, author, "Tea over coffee", "Drinks")

	for i := 0; i < 3; i++ {
		_, err := svc.Cast(asAdmin(root), post.ID, Up)
		require.NoError(t, err)
	}
	var latched models.Post
	require.NoError(t, db.First(&latched, post.ID).Error)
	require.True(t, latched.TooPopular)

	res, err := svc.Cast(asViewer(voter), post.ID, Down)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NetScore)
	assert.False(t, res.BecameTooPopular)

	require.NoError(t, db.First(&latched, post.ID).Error)
	assert.True(t, latched.TooPopular, "dropping below the threshold must not unlatch")
}

func TestVoteCast_Rejections(t *testing.T) {
	db := newTestDB(t)
	svc := NewVoteService(db, 20)

	voter := createUser(t, db, "john")

	_, err := svc.Cast(Viewer{}, 1, Up)
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = svc.Cast(asViewer(voter), 9999, Up)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Cast(asViewer(voter), 1, Direction(0))
	assert.Error(t, err)
}
