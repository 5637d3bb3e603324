package services

import (
	"testing"
	"time"

	"eyehunt/database"
	"eyehunt/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema. The pool is
// pinned to one connection so every session sees the same memory database
// and concurrent transactions serialize instead of hitting SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, nickname string) *models.UserProfile {
	t.Helper()
	user := &models.UserProfile{
		ID:       uuid.NewString(),
		Nickname: nickname,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedGame(t *testing.T, db *gorm.DB, status models.GameStatus, expiresIn time.Duration) *models.Game {
	t.Helper()
	title := "Test Hunt"
	game := &models.Game{
		ID:        uuid.NewString(),
		Title:     &title,
		Status:    status,
		ExpiresAt: time.Now().UTC().Add(expiresIn),
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return game
}

func seedEyeballType(t *testing.T, db *gorm.DB, eventKey string, basePoints int) *models.EyeballType {
	t.Helper()
	eyeballType := &models.EyeballType{
		ID:         uuid.NewString(),
		Name:       eventKey,
		EventKey:   eventKey,
		BasePoints: basePoints,
	}
	if err := db.Create(eyeballType).Error; err != nil {
		t.Fatalf("seed eyeball type: %v", err)
	}
	return eyeballType
}

func seedEyeball(t *testing.T, db *gorm.DB, gameID, typeID string, override *int) *models.Eyeball {
	t.Helper()
	eyeball := &models.Eyeball{
		ID:             uuid.NewString(),
		GameID:         gameID,
		TypeID:         typeID,
		QRCode:         uuid.NewString(),
		PointsOverride: override,
		IsActive:       true,
	}
	if err := db.Create(eyeball).Error; err != nil {
		t.Fatalf("seed eyeball: %v", err)
	}
	return eyeball
}

// seedGroupWithMember creates a group and one member with a zeroed score
// row, bypassing the service so tests control every field.
func seedGroupWithMember(t *testing.T, db *gorm.DB, gameID, userID, code string) *models.Group {
	t.Helper()
	group := &models.Group{
		ID:         uuid.NewString(),
		GameID:     gameID,
		Code:       code,
		OwnerID:    &userID,
		MaxMembers: models.DefaultGroupMaxMembers,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}
	if err := db.Create(&models.GroupMember{
		GroupID:  group.ID,
		UserID:   userID,
		Role:     models.GroupRoleOwner,
		JoinedAt: time.Now().UTC(),
	}).Error; err != nil {
		t.Fatalf("seed group member: %v", err)
	}
	if err := db.Create(&models.GroupScore{GroupID: group.ID, UserID: userID, UpdatedAt: time.Now().UTC()}).Error; err != nil {
		t.Fatalf("seed group score: %v", err)
	}
	return group
}
