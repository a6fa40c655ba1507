package models

import "time"

// Follow is a directed edge: FollowerUsername follows FollowedUsername.
// Usernames are the natural key here, matching how profiles reference
// each other. No self-loops, no duplicates.
type Follow struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	FollowedUsername string    `gorm:"size:64;index;uniqueIndex:idx_follow_pair" json:"followed_username"`
	FollowerUsername string    `gorm:"size:64;index;uniqueIndex:idx_follow_pair" json:"follower_username"`
	CreatedAt        time.Time `json:"created_at"`
}

// Block is a directed edge: BlockerUsername blocks BlockedUsername.
// A viewer's block list hides the blocked authors' posts from that viewer.
type Block struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	BlockedUsername string    `gorm:"size:64;index;uniqueIndex:idx_block_pair" json:"blocked_username"`
	BlockerUsername string    `gorm:"size:64;index;uniqueIndex:idx_block_pair" json:"blocker_username"`
	CreatedAt       time.Time `json:"created_at"`
}
