// models/eyeball.go - Eyeball catalog and scannable instances
package models

import "time"

// EyeballType is the catalog row: name, scoring key, base point value and
// the bonus events fired on every capture of this type.
type EyeballType struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	EventKey    string  `gorm:"uniqueIndex;not null" json:"event_key"`
	BasePoints  int     `gorm:"not null;default:0" json:"base_points"`
	Description *string `json:"description"`

	Events []EyeballEvent `gorm:"foreignKey:TypeID" json:"events,omitempty"`
}

func (EyeballType) TableName() string {
	return "eyeball_types"
}

// Eyeball is one physical QR marker placed in a game. PointsOverride, when
// set, supersedes the type's base points for scoring.
type Eyeball struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	GameID         string    `gorm:"type:uuid;not null;index" json:"game_id"`
	TypeID         string    `gorm:"type:uuid;not null;index" json:"type_id"`
	QRCode         string    `gorm:"column:qr_code;uniqueIndex;not null" json:"qr_code"`
	Title          *string   `json:"title"`
	LocationName   *string   `json:"location_name"`
	Lat            *float64  `json:"lat"`
	Lng            *float64  `json:"lng"`
	Hint           *string   `json:"hint"`
	PointsOverride *int      `json:"points_override"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`

	Type *EyeballType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
}

func (Eyeball) TableName() string {
	return "eyeballs"
}

// EyeballEvent is a template-defined bonus event attached to a type. The
// payload is copied verbatim onto every capture of that type.
type EyeballEvent struct {
	TypeID    string  `gorm:"type:uuid;primaryKey" json:"type_id"`
	EventType string  `gorm:"not null" json:"event_type"`
	Payload   JSONMap `gorm:"type:jsonb;not null" json:"payload"`
}

func (EyeballEvent) TableName() string {
	return "eyeball_events"
}
