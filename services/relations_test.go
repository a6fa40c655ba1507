package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rloerke/puffins/models"
)

func TestFollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationService(db)

	createUser(t, db, "bob")
	john := createUser(t, db, "john")

	require.NoError(t, svc.Follow(asViewer(john), "bob"))
	assert.ErrorIs(t, svc.Follow(asViewer(john), "bob"), ErrDuplicateRelation)
	assert.ErrorIs(t, svc.Follow(asViewer(john), "john"), ErrSelfRelation)
	assert.ErrorIs(t, svc.Follow(asViewer(john), "ghost"), ErrNotFound)
	assert.ErrorIs(t, svc.Follow(Viewer{}, "bob"), ErrAuthRequired)
}

func TestBlockUnblock(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationService(db)

	createUser(t, db, "bob")
	createUser(t, db, "alice")
	john := createUser(t, db, "john")

	require.NoError(t, svc.Block(asViewer(john), "bob"))
	require.NoError(t, svc.Block(asViewer(john), "alice"))
	assert.ErrorIs(t, svc.Block(asViewer(john), "bob"), ErrDuplicateRelation)
	assert.ErrorIs(t, svc.Block(asViewer(john), "john"), ErrSelfRelation)
	assert.ErrorIs(t, svc.Block(asViewer(john), "ghost"), ErrNotFound)

	names, err := svc.Blocked(asViewer(john))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)

	require.NoError(t, svc.Unblock(asViewer(john), "bob"))
	names, err = svc.Blocked(asViewer(john))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, names)

	// Unblocking someone who was never blocked is a quiet no-op.
	require.NoError(t, svc.Unblock(asViewer(john), "bob"))

	_, err = svc.Blocked(Viewer{})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestSetRank(t *testing.T) {
	db := newTestDB(t)
	svc := NewRelationService(db)

	bob := createUser(t, db, "bob")
	root := createUser(t, db, "admin")

	assert.ErrorIs(t, svc.SetRank(asViewer(bob), bob.ID, 5), ErrOwnership)
	assert.ErrorIs(t, svc.SetRank(asAdmin(root), bob.ID, 0), ErrInvalidRank)
	assert.ErrorIs(t, svc.SetRank(asAdmin(root), bob.ID, 11), ErrInvalidRank)
	assert.ErrorIs(t, svc.SetRank(asAdmin(root), 9999, 5), ErrNotFound)
	assert.ErrorIs(t, svc.SetRank(Viewer{}, bob.ID, 5), ErrAuthRequired)

	require.NoError(t, svc.SetRank(asAdmin(root), bob.ID, 7))
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, bob.ID).Error)
	assert.Equal(t, 7, reloaded.Rank)
}
