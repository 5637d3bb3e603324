// models/group_member.go
package models

import "time"

type GroupRole string

const (
	GroupRoleOwner  GroupRole = "owner"
	GroupRoleMember GroupRole = "member"
)

type GroupMember struct {
	GroupID  string    `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID   string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role     GroupRole `gorm:"not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joined_at"`

	User *UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
