// services/game_service.go - Game read models
package services

import (
	"errors"
	"time"

	"eyehunt/models"

	"gorm.io/gorm"
)

type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

// activeGameID resolves the current active game: status lobby or playing
// with expires_at in the future, newest first. Returns "" when none exists.
func activeGameID(db *gorm.DB) (string, error) {
	var game models.Game
	err := db.Select("id").
		Where("status IN ?", []models.GameStatus{models.GameStatusLobby, models.GameStatusPlaying}).
		Where("expires_at > ?", time.Now().UTC()).
		Order("created_at DESC").
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return game.ID, nil
}

// GetActiveGame returns the current active game, or nil when none exists.
func (s *GameService) GetActiveGame() (*models.Game, error) {
	var game models.Game
	err := s.db.
		Where("status IN ?", []models.GameStatus{models.GameStatusLobby, models.GameStatusPlaying}).
		Where("expires_at > ?", time.Now().UTC()).
		Order("created_at DESC").
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GameEyeball is one row of a game's eyeball list.
type GameEyeball struct {
	ID       string `json:"id"`
	QRCode   string `json:"qr_code"`
	IsActive bool   `json:"is_active"`
	TypeName string `json:"type_name"`
	TypeID   string `json:"type_id"`
	Points   int    `json:"points"`
}

// ListGameEyeballs returns every eyeball placed in a game with its
// effective point value.
func (s *GameService) ListGameEyeballs(gameID string) ([]GameEyeball, error) {
	var rows []struct {
		ID             string
		QRCode         string
		IsActive       bool
		TypeName       string
		TypeID         string
		BasePoints     int
		PointsOverride *int
	}
	err := s.db.Table("eyeballs").
		Select(`eyeballs.id, eyeballs.qr_code, eyeballs.is_active, eyeballs.type_id,
			eyeball_types.name AS type_name, eyeball_types.base_points, eyeballs.points_override`).
		Joins("JOIN eyeball_types ON eyeball_types.id = eyeballs.type_id").
		Where("eyeballs.game_id = ?", gameID).
		Order("eyeballs.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	eyeballs := make([]GameEyeball, 0, len(rows))
	for _, row := range rows {
		eyeballs = append(eyeballs, GameEyeball{
			ID:       row.ID,
			QRCode:   row.QRCode,
			IsActive: row.IsActive,
			TypeName: row.TypeName,
			TypeID:   row.TypeID,
			Points:   effectivePoints(row.PointsOverride, row.BasePoints),
		})
	}
	return eyeballs, nil
}

// GroupStanding is one group's row on a game leaderboard.
type GroupStanding struct {
	GroupID       string     `json:"group_id"`
	Name          *string    `json:"name"`
	Code          string     `json:"code"`
	Score         int        `json:"score"`
	CapturesCount int        `json:"captures_count"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// GameLeaderboard ranks a game's groups by summed member scores. Ties break
// on the earliest last update; groups with no score rows sort last.
func (s *GameService) GameLeaderboard(gameID string) ([]GroupStanding, error) {
	var standings []GroupStanding
	err := s.db.Raw(`
		SELECT g.id AS group_id,
		       g.name,
		       g.code,
		       COALESCE(SUM(gs.score), 0) AS score,
		       COALESCE(SUM(gs.captures_count), 0) AS captures_count,
		       MAX(gs.updated_at) AS updated_at
		FROM groups g
		LEFT JOIN group_scores gs ON gs.group_id = g.id
		WHERE g.game_id = ?
		GROUP BY g.id, g.name, g.code
		ORDER BY score DESC, MAX(gs.updated_at) ASC NULLS LAST
	`, gameID).Scan(&standings).Error
	if err != nil {
		return nil, err
	}
	if standings == nil {
		standings = []GroupStanding{}
	}
	return standings, nil
}

// PersonalStanding is one player's row on a game's personal leaderboard.
type PersonalStanding struct {
	UserID        string     `json:"user_id"`
	Score         int        `json:"score"`
	CapturesCount int        `json:"captures_count"`
	Nickname      string     `json:"nickname"`
	AvatarURL     *string    `json:"avatar_url"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// GameResult bundles both leaderboards for a game's result screen.
type GameResult struct {
	GroupLeaderboard    []GroupStanding    `json:"group_leaderboard"`
	PersonalLeaderboard []PersonalStanding `json:"personal_leaderboard"`
}

func (s *GameService) GameResult(gameID string) (*GameResult, error) {
	groups, err := s.GameLeaderboard(gameID)
	if err != nil {
		return nil, err
	}

	var personal []PersonalStanding
	err = s.db.Raw(`
		SELECT gm.user_id,
		       COALESCE(ps.score, 0) AS score,
		       COALESCE(ps.captures_count, 0) AS captures_count,
		       u.nickname,
		       u.avatar_url,
		       ps.updated_at
		FROM group_members gm
		JOIN groups g ON g.id = gm.group_id
		JOIN users u ON u.id = gm.user_id
		LEFT JOIN personal_scores ps
		       ON ps.game_id = ? AND ps.user_id = gm.user_id
		WHERE g.game_id = ?
		ORDER BY score DESC, ps.updated_at ASC NULLS LAST
	`, gameID, gameID).Scan(&personal).Error
	if err != nil {
		return nil, err
	}
	if personal == nil {
		personal = []PersonalStanding{}
	}

	return &GameResult{GroupLeaderboard: groups, PersonalLeaderboard: personal}, nil
}

// CaptureFeedEntry is one row of a game's capture feed.
type CaptureFeedEntry struct {
	ID         string    `json:"id"`
	CapturedAt time.Time `json:"captured_at"`
	GroupID    string    `json:"group_id"`
	UserID     string    `json:"user_id"`
	Nickname   string    `json:"nickname"`
	ImageURL   *string   `json:"image_url"`
	QRCode     string    `json:"qr_code"`
	TypeName   string    `json:"type_name"`
	TypeID     string    `json:"type_id"`
	Points     int       `json:"points"`
}

// GameCaptures lists a game's captures, newest first.
func (s *GameService) GameCaptures(gameID string) ([]CaptureFeedEntry, error) {
	var rows []struct {
		ID             string
		CapturedAt     time.Time
		GroupID        string
		UserID         string
		Nickname       string
		ImageURL       *string
		QRCode         string
		TypeName       string
		TypeID         string
		BasePoints     int
		PointsOverride *int
	}
	err := s.db.Table("captures").
		Select(`captures.id, captures.captured_at, captures.group_id, captures.user_id,
			captures.image_url, users.nickname, eyeballs.qr_code, eyeballs.type_id,
			eyeball_types.name AS type_name, eyeball_types.base_points, eyeballs.points_override`).
		Joins("JOIN eyeballs ON eyeballs.id = captures.eyeball_id").
		Joins("JOIN eyeball_types ON eyeball_types.id = eyeballs.type_id").
		Joins("JOIN users ON users.id = captures.user_id").
		Where("captures.game_id = ?", gameID).
		Order("captures.captured_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	captures := make([]CaptureFeedEntry, 0, len(rows))
	for _, row := range rows {
		captures = append(captures, CaptureFeedEntry{
			ID:         row.ID,
			CapturedAt: row.CapturedAt,
			GroupID:    row.GroupID,
			UserID:     row.UserID,
			Nickname:   row.Nickname,
			ImageURL:   row.ImageURL,
			QRCode:     row.QRCode,
			TypeName:   row.TypeName,
			TypeID:     row.TypeID,
			Points:     effectivePoints(row.PointsOverride, row.BasePoints),
		})
	}
	return captures, nil
}

func effectivePoints(override *int, base int) int {
	if override != nil {
		return *override
	}
	return base
}
