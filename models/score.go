// models/score.go - Per-member and per-game score accumulators
package models

import "time"

// GroupScore accumulates one member's points within one group. Rows are
// only ever incremented, never recomputed from capture history.
type GroupScore struct {
	GroupID       string    `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID        string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	Score         int       `gorm:"not null;default:0" json:"score"`
	CapturesCount int       `gorm:"not null;default:0" json:"captures_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (GroupScore) TableName() string {
	return "group_scores"
}

// PersonalScore accumulates one player's points within one game.
type PersonalScore struct {
	GameID        string    `gorm:"type:uuid;primaryKey" json:"game_id"`
	UserID        string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	Score         int       `gorm:"not null;default:0" json:"score"`
	CapturesCount int       `gorm:"not null;default:0" json:"captures_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PersonalScore) TableName() string {
	return "personal_scores"
}
