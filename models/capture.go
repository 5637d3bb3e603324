// models/capture.go
package models

import "time"

// Capture records one group member scanning one eyeball. The composite
// unique index on (game_id, eyeball_id) is the authoritative guard: an
// eyeball can be captured at most once per game, across all groups.
type Capture struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	GameID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_captures_game_eyeball" json:"game_id"`
	GroupID    string    `gorm:"type:uuid;not null;index" json:"group_id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	EyeballID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_captures_game_eyeball" json:"eyeball_id"`
	ImageURL   *string   `json:"image_url"`
	CapturedAt time.Time `gorm:"not null" json:"captured_at"`
}

func (Capture) TableName() string {
	return "captures"
}

// CaptureEvent is the audit row written for each bonus event fired by a
// capture.
type CaptureEvent struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CaptureID string    `gorm:"type:uuid;not null;index" json:"capture_id"`
	EventType string    `gorm:"not null" json:"event_type"`
	Payload   JSONMap   `gorm:"type:jsonb;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func (CaptureEvent) TableName() string {
	return "capture_events"
}
