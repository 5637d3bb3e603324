// services/group_service.go - Group lifecycle and read models
package services

import (
	"errors"
	"time"

	"eyehunt/models"
	"eyehunt/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCodeAttempts = 5

type GroupService struct {
	db *gorm.DB

	// codeFn generates candidate join codes; replaced in tests to force
	// collisions.
	codeFn func() string
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db, codeFn: utils.GenerateGroupCode}
}

// CreateGroup creates a group owned by ownerID inside gameID (or the
// current active game when gameID is empty), together with the owner
// membership and a zeroed score row, in one transaction. Join codes retry
// up to five times on collision before failing.
func (s *GroupService) CreateGroup(gameID string, name, code *string, maxMembers int, ownerID string) (*models.Group, error) {
	if gameID == "" {
		resolved, err := activeGameID(s.db)
		if err != nil {
			return nil, err
		}
		if resolved == "" {
			return nil, ErrNoActiveGame
		}
		gameID = resolved
	}

	if maxMembers <= 0 {
		maxMembers = models.DefaultGroupMaxMembers
	}

	candidate := ""
	if code != nil && *code != "" {
		candidate = *code
	} else {
		candidate = s.codeFn()
	}

	now := time.Now().UTC()
	group := &models.Group{
		ID:         uuid.NewString(),
		GameID:     gameID,
		Name:       name,
		OwnerID:    &ownerID,
		MaxMembers: maxMembers,
		CreatedAt:  now,
	}

	// The unique constraint on groups.code is the real collision guard;
	// the loop just regenerates and retries within its budget.
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		group.Code = candidate

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(group).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.GroupMember{
				GroupID:  group.ID,
				UserID:   ownerID,
				Role:     models.GroupRoleOwner,
				JoinedAt: now,
			}).Error; err != nil {
				return err
			}
			return tx.Create(&models.GroupScore{
				GroupID:   group.ID,
				UserID:    ownerID,
				UpdatedAt: now,
			}).Error
		})
		if err == nil {
			return group, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		candidate = s.codeFn()
	}

	return nil, ErrCodeAllocationFailed
}

// JoinGroup adds userID to the group behind code. Joining a group you are
// already in is a no-op; joining a full group fails.
func (s *GroupService) JoinGroup(code, userID string) (*models.Group, bool, error) {
	var group models.Group
	if err := s.db.Where("code = ?", code).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var existing models.GroupMember
	err := s.db.Where("group_id = ? AND user_id = ?", group.ID, userID).First(&existing).Error
	if err == nil {
		return &group, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	count, err := s.MemberCount(group.ID)
	if err != nil {
		return nil, false, err
	}
	if count >= int64(group.MaxMembers) {
		return nil, false, ErrGroupFull
	}

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.GroupMember{
			GroupID:  group.ID,
			UserID:   userID,
			Role:     models.GroupRoleMember,
			JoinedAt: now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupScore{
			GroupID:   group.ID,
			UserID:    userID,
			UpdatedAt: now,
		}).Error
	})
	if err != nil {
		// A concurrent join of the same user hits the composite PK
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &group, true, nil
		}
		return nil, false, err
	}

	return &group, false, nil
}

// MemberCount returns the group's current membership size.
func (s *GroupService) MemberCount(groupID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// GetMyGroup returns the user's most recently created group membership.
func (s *GroupService) GetMyGroup(userID string) (*models.Group, error) {
	var group models.Group
	err := s.db.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// ActiveGroupEntry is one group row in the active-game group listing.
type ActiveGroupEntry struct {
	ID            string  `json:"id"`
	GameID        string  `json:"game_id"`
	Code          string  `json:"code"`
	Name          *string `json:"name"`
	MaxMembers    int     `json:"max_members"`
	TotalScore    int     `json:"total_score"`
	CapturesCount int     `json:"captures_count"`
	MemberCount   int     `json:"member_count"`
}

// ListActiveGroups lists every group in the current active game with
// member counts and score totals. Returns ("", empty) when no game is
// active.
func (s *GroupService) ListActiveGroups() (string, []ActiveGroupEntry, error) {
	gameID, err := activeGameID(s.db)
	if err != nil {
		return "", nil, err
	}
	if gameID == "" {
		return "", []ActiveGroupEntry{}, nil
	}

	var groups []ActiveGroupEntry
	err = s.db.Raw(`
		SELECT g.id,
		       g.game_id,
		       g.code,
		       g.name,
		       g.max_members,
		       COALESCE(SUM(gs.score), 0) AS total_score,
		       COALESCE(SUM(gs.captures_count), 0) AS captures_count,
		       COALESCE(COUNT(DISTINCT gm.user_id), 0) AS member_count
		FROM groups g
		LEFT JOIN group_scores gs ON gs.group_id = g.id
		LEFT JOIN group_members gm ON gm.group_id = g.id
		WHERE g.game_id = ?
		GROUP BY g.id, g.game_id, g.code, g.name, g.max_members, g.created_at
		ORDER BY g.created_at ASC
	`, gameID).Scan(&groups).Error
	if err != nil {
		return "", nil, err
	}
	if groups == nil {
		groups = []ActiveGroupEntry{}
	}
	return gameID, groups, nil
}

// GroupSnapshotMember is one member row inside a group snapshot.
type GroupSnapshotMember struct {
	UserID    string           `json:"user_id"`
	Role      models.GroupRole `json:"role"`
	JoinedAt  time.Time        `json:"joined_at"`
	Nickname  string           `json:"nickname"`
	AvatarURL *string          `json:"avatar_url"`
}

// GroupSnapshot bundles a group with its members and aggregate score.
type GroupSnapshot struct {
	Group         *models.Group         `json:"group"`
	Members       []GroupSnapshotMember `json:"members"`
	TotalScore    int                   `json:"total_score"`
	CapturesCount int                   `json:"captures_count"`
}

func (s *GroupService) Snapshot(groupID string) (*GroupSnapshot, error) {
	var group models.Group
	if err := s.db.Where("id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var members []GroupSnapshotMember
	err := s.db.Table("group_members").
		Select(`group_members.user_id, group_members.role, group_members.joined_at,
			users.nickname, users.avatar_url`).
		Joins("JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", groupID).
		Order("group_members.joined_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []GroupSnapshotMember{}
	}

	var totals struct {
		TotalScore    int
		CapturesCount int
	}
	err = s.db.Model(&models.GroupScore{}).
		Select("COALESCE(SUM(score), 0) AS total_score, COALESCE(SUM(captures_count), 0) AS captures_count").
		Where("group_id = ?", groupID).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	return &GroupSnapshot{
		Group:         &group,
		Members:       members,
		TotalScore:    totals.TotalScore,
		CapturesCount: totals.CapturesCount,
	}, nil
}

// MemberStanding is one member row of a group's internal leaderboard.
type MemberStanding struct {
	UserID        string  `json:"user_id"`
	Score         int     `json:"score"`
	CapturesCount int     `json:"captures_count"`
	Nickname      string  `json:"nickname"`
	AvatarURL     *string `json:"avatar_url"`
}

// GroupLeaderboard ranks a group's members by score.
func (s *GroupService) GroupLeaderboard(groupID string) ([]MemberStanding, error) {
	var standings []MemberStanding
	err := s.db.Table("group_scores").
		Select(`group_scores.user_id, group_scores.score, group_scores.captures_count,
			users.nickname, users.avatar_url`).
		Joins("JOIN users ON users.id = group_scores.user_id").
		Where("group_scores.group_id = ?", groupID).
		Order("group_scores.score DESC").
		Scan(&standings).Error
	if err != nil {
		return nil, err
	}
	if standings == nil {
		standings = []MemberStanding{}
	}
	return standings, nil
}
