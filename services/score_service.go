// services/score_service.go - Personal and team score read models
package services

import (
	"errors"
	"time"

	"eyehunt/models"

	"gorm.io/gorm"
)

type ScoreService struct {
	db *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{db: db}
}

// MyScore is the caller's personal accumulator in the active game.
type MyScore struct {
	GameID        *string    `json:"game_id"`
	Score         int        `json:"score"`
	CapturesCount int        `json:"captures_count"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// GetMyScore returns the caller's personal score in the active game, or
// zeroes when no game is active or no captures were made yet.
func (s *ScoreService) GetMyScore(userID string) (*MyScore, error) {
	gameID, err := activeGameID(s.db)
	if err != nil {
		return nil, err
	}
	if gameID == "" {
		return &MyScore{}, nil
	}

	var score models.PersonalScore
	err = s.db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &MyScore{GameID: &gameID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &MyScore{
		GameID:        &gameID,
		Score:         score.Score,
		CapturesCount: score.CapturesCount,
		UpdatedAt:     &score.UpdatedAt,
	}, nil
}

// ScoreSummary combines the caller's personal score with their group's
// aggregate for the active game.
type ScoreSummary struct {
	GameID           *string `json:"game_id"`
	GroupID          *string `json:"group_id"`
	PersonalScore    int     `json:"personal_score"`
	PersonalCaptures int     `json:"personal_captures"`
	TeamScore        int     `json:"team_score"`
	TeamCaptures     int     `json:"team_captures"`
}

func (s *ScoreService) GetSummary(userID string) (*ScoreSummary, error) {
	summary := &ScoreSummary{}

	gameID, err := activeGameID(s.db)
	if err != nil {
		return nil, err
	}
	if gameID == "" {
		return summary, nil
	}
	summary.GameID = &gameID

	var personal models.PersonalScore
	err = s.db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&personal).Error
	if err == nil {
		summary.PersonalScore = personal.Score
		summary.PersonalCaptures = personal.CapturesCount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var member models.GroupMember
	err = s.db.
		Joins("JOIN groups ON groups.id = group_members.group_id").
		Where("group_members.user_id = ?", userID).
		Where("groups.game_id = ?", gameID).
		Order("groups.created_at DESC").
		Take(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return summary, nil
	}
	if err != nil {
		return nil, err
	}
	summary.GroupID = &member.GroupID

	var team struct {
		TeamScore    int
		TeamCaptures int
	}
	err = s.db.Model(&models.GroupScore{}).
		Select("COALESCE(SUM(score), 0) AS team_score, COALESCE(SUM(captures_count), 0) AS team_captures").
		Where("group_id = ?", member.GroupID).
		Scan(&team).Error
	if err != nil {
		return nil, err
	}
	summary.TeamScore = team.TeamScore
	summary.TeamCaptures = team.TeamCaptures

	return summary, nil
}
