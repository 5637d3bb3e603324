// services/capture_service.go - Capture creation and scoring
package services

import (
	"errors"
	"time"

	"eyehunt/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CaptureService struct {
	db *gorm.DB
}

func NewCaptureService(db *gorm.DB) *CaptureService {
	return &CaptureService{db: db}
}

// CaptureResult is the outcome of a successful capture: the row itself,
// the points awarded, and the bonus events fired by the eyeball's type.
type CaptureResult struct {
	Capture *models.Capture `json:"capture"`
	Points  int             `json:"points"`
	Events  []FiredEvent    `json:"events"`
}

type FiredEvent struct {
	EventType string         `json:"event_type"`
	Payload   models.JSONMap `json:"payload"`
}

// CreateCapture records userID scanning eyeballID for groupID (resolved
// from the user's membership in the eyeball's game when empty) and awards
// points to both score accumulators. All reads and writes run in one
// transaction; any failure leaves no side effects.
//
// The duplicate pre-check is only a friendly fast path. The authoritative
// guard is the unique (game_id, eyeball_id) constraint: when two scans
// race, exactly one insert commits and the loser surfaces as
// ErrAlreadyCaptured.
func (s *CaptureService) CreateCapture(eyeballID, groupID, userID string) (*CaptureResult, error) {
	var result *CaptureResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var eyeball struct {
			ID             string
			GameID         string
			TypeID         string
			IsActive       bool
			PointsOverride *int
			BasePoints     int
		}
		err := tx.Table("eyeballs").
			Select(`eyeballs.id, eyeballs.game_id, eyeballs.type_id, eyeballs.is_active,
				eyeballs.points_override, eyeball_types.base_points`).
			Joins("JOIN eyeball_types ON eyeball_types.id = eyeballs.type_id").
			Where("eyeballs.id = ?", eyeballID).
			Take(&eyeball).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if !eyeball.IsActive {
			return ErrEyeballInactive
		}

		if groupID == "" {
			var member models.GroupMember
			err := tx.
				Joins("JOIN groups ON groups.id = group_members.group_id").
				Where("group_members.user_id = ?", userID).
				Where("groups.game_id = ?", eyeball.GameID).
				Take(&member).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupRequired
			}
			if err != nil {
				return err
			}
			groupID = member.GroupID
		} else {
			var member models.GroupMember
			err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).
				Take(&member).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotGroupMember
			}
			if err != nil {
				return err
			}

			var group models.Group
			err = tx.Where("id = ? AND game_id = ?", groupID, eyeball.GameID).
				Take(&group).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupGameMismatch
			}
			if err != nil {
				return err
			}
		}

		var existing int64
		err = tx.Model(&models.Capture{}).
			Where("game_id = ? AND eyeball_id = ?", eyeball.GameID, eyeballID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyCaptured
		}

		now := time.Now().UTC()
		capture := &models.Capture{
			ID:         uuid.NewString(),
			GameID:     eyeball.GameID,
			GroupID:    groupID,
			UserID:     userID,
			EyeballID:  eyeballID,
			CapturedAt: now,
		}
		if err := tx.Create(capture).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCaptured
			}
			return err
		}

		points := effectivePoints(eyeball.PointsOverride, eyeball.BasePoints)

		if err := upsertScore(tx, &models.GroupScore{
			GroupID:       groupID,
			UserID:        userID,
			Score:         points,
			CapturesCount: 1,
			UpdatedAt:     now,
		}, []string{"group_id", "user_id"}); err != nil {
			return err
		}
		if err := upsertScore(tx, &models.PersonalScore{
			GameID:        eyeball.GameID,
			UserID:        userID,
			Score:         points,
			CapturesCount: 1,
			UpdatedAt:     now,
		}, []string{"game_id", "user_id"}); err != nil {
			return err
		}

		var templates []models.EyeballEvent
		if err := tx.Where("type_id = ?", eyeball.TypeID).Find(&templates).Error; err != nil {
			return err
		}

		fired := make([]FiredEvent, 0, len(templates))
		for _, template := range templates {
			if err := tx.Create(&models.CaptureEvent{
				ID:        uuid.NewString(),
				CaptureID: capture.ID,
				EventType: template.EventType,
				Payload:   template.Payload,
				CreatedAt: now,
			}).Error; err != nil {
				return err
			}
			fired = append(fired, FiredEvent{EventType: template.EventType, Payload: template.Payload})
		}

		result = &CaptureResult{Capture: capture, Points: points, Events: fired}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// upsertScore inserts a score row or adds the increment to the existing
// accumulator. Scores only ever grow; they are never recomputed from
// capture history.
func upsertScore(tx *gorm.DB, row interface{}, conflictColumns []string) error {
	columns := make([]clause.Column, len(conflictColumns))
	for i, name := range conflictColumns {
		columns[i] = clause.Column{Name: name}
	}

	return tx.Clauses(clause.OnConflict{
		Columns: columns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":          gorm.Expr("score + excluded.score"),
			"captures_count": gorm.Expr("captures_count + excluded.captures_count"),
			"updated_at":     time.Now().UTC(),
		}),
	}).Create(row).Error
}

// UserCaptureEntry is one row of a user's capture history.
type UserCaptureEntry struct {
	ID           string    `json:"id"`
	CapturedAt   time.Time `json:"captured_at"`
	GameID       string    `json:"game_id"`
	GameTitle    *string   `json:"game_title"`
	GroupID      string    `json:"group_id"`
	EyeballID    string    `json:"eyeball_id"`
	EyeballTitle *string   `json:"eyeball_title"`
	LocationName *string   `json:"location_name"`
	QRCode       string    `json:"qr_code"`
	TypeName     string    `json:"type_name"`
	EventKey     string    `json:"event_key"`
	Points       int       `json:"points"`
}

// ListUserCaptures returns the user's capture history, newest first.
func (s *CaptureService) ListUserCaptures(userID string) ([]UserCaptureEntry, error) {
	var rows []struct {
		ID             string
		CapturedAt     time.Time
		GameID         string
		GameTitle      *string
		GroupID        string
		EyeballID      string
		EyeballTitle   *string
		LocationName   *string
		QRCode         string
		TypeName       string
		EventKey       string
		BasePoints     int
		PointsOverride *int
	}
	err := s.db.Table("captures").
		Select(`captures.id, captures.captured_at, captures.game_id, captures.group_id,
			captures.eyeball_id, eyeballs.title AS eyeball_title, eyeballs.location_name,
			eyeballs.qr_code, eyeballs.points_override,
			eyeball_types.name AS type_name, eyeball_types.event_key, eyeball_types.base_points,
			games.title AS game_title`).
		Joins("JOIN eyeballs ON eyeballs.id = captures.eyeball_id").
		Joins("JOIN eyeball_types ON eyeball_types.id = eyeballs.type_id").
		Joins("JOIN games ON games.id = captures.game_id").
		Where("captures.user_id = ?", userID).
		Order("captures.captured_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	captures := make([]UserCaptureEntry, 0, len(rows))
	for _, row := range rows {
		captures = append(captures, UserCaptureEntry{
			ID:           row.ID,
			CapturedAt:   row.CapturedAt,
			GameID:       row.GameID,
			GameTitle:    row.GameTitle,
			GroupID:      row.GroupID,
			EyeballID:    row.EyeballID,
			EyeballTitle: row.EyeballTitle,
			LocationName: row.LocationName,
			QRCode:       row.QRCode,
			TypeName:     row.TypeName,
			EventKey:     row.EventKey,
			Points:       effectivePoints(row.PointsOverride, row.BasePoints),
		})
	}
	return captures, nil
}
