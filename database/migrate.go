// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"eyehunt/models"

	"gorm.io/gorm"
)

// RunMigrations runs all database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.Game{},
		&models.Group{},
		&models.GroupMember{},
		&models.EyeballType{},
		&models.Eyeball{},
		&models.EyeballEvent{},
		&models.Capture{},
		&models.GroupScore{},
		&models.PersonalScore{},
		&models.CaptureEvent{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes(db)

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates query indexes not expressed by model tags
func createIndexes(db *gorm.DB) {
	// Game indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_status_expires ON games(status, expires_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at DESC)")

	// Membership and score lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_group_members_user ON group_members(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_group_scores_user ON group_scores(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_personal_scores_user ON personal_scores(user_id)")

	// Capture feeds
	db.Exec("CREATE INDEX IF NOT EXISTS idx_captures_captured_at ON captures(captured_at DESC)")
}
