package services

import "errors"

// Typed outcomes for the feed/ledger core. Controllers translate these into
// HTTP responses; none of them is fatal to the process. Store-level failures
// are returned as-is (wrapped) and treated as infrastructure errors.
var (
	// ErrAuthRequired is returned when a mutating operation is attempted
	// without a resolved viewer identity.
	ErrAuthRequired = errors.New("authentication required")
	// ErrOwnership is returned when a non-owner, non-admin attempts a
	// privileged mutation.
	ErrOwnership = errors.New("ownership violation")
	// ErrDuplicateVote is returned when a non-admin re-casts an identical vote.
	ErrDuplicateVote = errors.New("duplicate vote")
	// ErrDuplicateReaction is returned when a non-admin re-sets an identical reaction.
	ErrDuplicateReaction = errors.New("duplicate reaction")
	// ErrSelfRelation rejects follow/block edges targeting oneself.
	ErrSelfRelation = errors.New("self relation rejected")
	// ErrDuplicateRelation rejects an already existing follow/block edge.
	ErrDuplicateRelation = errors.New("duplicate relation")
	// ErrNotFound is returned when a referenced post or user is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidEmotion rejects a reaction outside the known emotion set.
	ErrInvalidEmotion = errors.New("invalid reaction emotion")
	// ErrInvalidRank rejects ranks outside the 1-10 range.
	ErrInvalidRank = errors.New("rank out of range")
)
