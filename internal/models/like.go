package models

import "gorm.io/gorm"

// Like is the durable record of a like, one row per (post owner, liker) pair.
// The registry already deduplicates; the composite unique index makes the
// journal idempotent as well, so a replayed write-behind never double-counts.
type Like struct {
	gorm.Model
	OwnerAddress string `json:"owner_address" gorm:"index;uniqueIndex:idx_owner_liker"`
	LikerAddress string `json:"liker_address" gorm:"index;uniqueIndex:idx_owner_liker"`
}
