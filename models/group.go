// models/group.go
package models

import "time"

const DefaultGroupMaxMembers = 6

// Group is a team sharing a join code within one game.
type Group struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	GameID     string    `gorm:"type:uuid;not null;index" json:"game_id"`
	Code       string    `gorm:"uniqueIndex;not null;size:10" json:"code"`
	Name       *string   `json:"name"`
	OwnerID    *string   `gorm:"type:uuid" json:"owner_id"`
	MaxMembers int       `gorm:"not null;default:6" json:"max_members"`
	CreatedAt  time.Time `json:"created_at"`

	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

func (Group) TableName() string {
	return "groups"
}
