// services/eyeball_service.go - Eyeball lookup and QR helpers
package services

import (
	"errors"

	"eyehunt/models"

	"gorm.io/gorm"
)

type EyeballService struct {
	db *gorm.DB
}

func NewEyeballService(db *gorm.DB) *EyeballService {
	return &EyeballService{db: db}
}

// EyeballInfo is the public shape of an eyeball with its effective points.
type EyeballInfo struct {
	ID       string `json:"id"`
	GameID   string `json:"game_id"`
	QRCode   string `json:"qr_code"`
	IsActive bool   `json:"is_active"`
	TypeName string `json:"type_name"`
	TypeID   string `json:"type_id"`
	Points   int    `json:"points"`
}

// GetEyeball returns one eyeball by id.
func (s *EyeballService) GetEyeball(eyeballID string) (*EyeballInfo, error) {
	return s.findOne("eyeballs.id = ?", eyeballID)
}

// ResolveQR resolves a scanned value against eyeball ids and QR codes.
func (s *EyeballService) ResolveQR(value string) (*EyeballInfo, error) {
	return s.findOne("eyeballs.id = ? OR eyeballs.qr_code = ?", value, value)
}

func (s *EyeballService) findOne(cond string, args ...interface{}) (*EyeballInfo, error) {
	var row struct {
		ID             string
		GameID         string
		QRCode         string
		IsActive       bool
		TypeName       string
		TypeID         string
		BasePoints     int
		PointsOverride *int
	}
	err := s.db.Table("eyeballs").
		Select(`eyeballs.id, eyeballs.game_id, eyeballs.qr_code, eyeballs.is_active,
			eyeballs.type_id, eyeball_types.name AS type_name, eyeball_types.base_points,
			eyeballs.points_override`).
		Joins("JOIN eyeball_types ON eyeball_types.id = eyeballs.type_id").
		Where(cond, args...).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &EyeballInfo{
		ID:       row.ID,
		GameID:   row.GameID,
		QRCode:   row.QRCode,
		IsActive: row.IsActive,
		TypeName: row.TypeName,
		TypeID:   row.TypeID,
		Points:   effectivePoints(row.PointsOverride, row.BasePoints),
	}, nil
}

// EnsureQRCode backfills an empty qr_code with the eyeball's own id and
// returns the printable value.
func (s *EyeballService) EnsureQRCode(eyeballID string) (string, error) {
	var eyeball models.Eyeball
	if err := s.db.Where("id = ?", eyeballID).First(&eyeball).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	if eyeball.QRCode == "" {
		eyeball.QRCode = eyeball.ID
		if err := s.db.Model(&eyeball).Update("qr_code", eyeball.QRCode).Error; err != nil {
			return "", err
		}
	}
	return eyeball.QRCode, nil
}

// ActiveCounts returns the number of active eyeballs per type name,
// optionally scoped to one game. Types with no active instances report 0.
func (s *EyeballService) ActiveCounts(gameID string) (map[string]int, error) {
	join := "LEFT JOIN eyeballs ON eyeballs.type_id = eyeball_types.id AND eyeballs.is_active = ?"
	args := []interface{}{true}
	if gameID != "" {
		join += " AND eyeballs.game_id = ?"
		args = append(args, gameID)
	}

	var rows []struct {
		TypeName string
		Count    int
	}
	err := s.db.Table("eyeball_types").
		Select("eyeball_types.name AS type_name, COUNT(eyeballs.id) AS count").
		Joins(join, args...).
		Group("eyeball_types.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.TypeName] = row.Count
	}
	return counts, nil
}
