// services/profile_service.go - Lazy user profile creation
package services

import (
	"errors"
	"strings"
	"time"

	"eyehunt/models"

	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// EnsureProfile creates the profile row for an identity-provider user on
// first sight. Existing rows are returned untouched; a concurrent insert
// losing the race falls back to reading the winner's row.
func (s *ProfileService) EnsureProfile(userID string, nickname, avatarURL *string, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := ""
	if nickname != nil {
		name = *nickname
	}
	if name == "" && email != "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if name == "" {
		name = "player"
	}

	profile = models.UserProfile{
		ID:        userID,
		Nickname:  name,
		AvatarURL: avatarURL,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = s.db.Where("id = ?", userID).First(&profile).Error
			if err == nil {
				return &profile, nil
			}
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfile returns the profile row for userID.
func (s *ProfileService) GetProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the supplied profile fields and returns the
// refreshed row.
func (s *ProfileService) UpdateProfile(userID string, nickname, avatarURL *string) (*models.UserProfile, error) {
	updates := map[string]interface{}{}
	if nickname != nil {
		updates["nickname"] = *nickname
	}
	if avatarURL != nil {
		updates["avatar_url"] = *avatarURL
	}
	if len(updates) == 0 {
		return nil, errors.New("no changes")
	}
	updates["updated_at"] = time.Now().UTC()

	result := s.db.Model(&models.UserProfile{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.GetProfile(userID)
}
