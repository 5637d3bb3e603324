// services/cleanup.go - Background sweeps
package services

import (
	"log"
	"time"

	"eyehunt/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// CleanupService runs the periodic maintenance jobs: finishing games whose
// expiry has passed and purging dead OAuth handshake state.
type CleanupService struct {
	db        *gorm.DB
	oauth     *OAuthService
	scheduler gocron.Scheduler
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService(db *gorm.DB, oauth *OAuthService) {
	cleanupService = &CleanupService{db: db, oauth: oauth}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start schedules the sweep jobs.
func (s *CleanupService) Start() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("Failed to create cleanup scheduler: %v", err)
		return
	}
	s.scheduler = sched

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(s.sweep),
	)

	sched.Start()
	log.Println("🧹 Cleanup scheduler started")
}

// Stop shuts the scheduler down.
func (s *CleanupService) Stop() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}

func (s *CleanupService) sweep() {
	s.FinishExpiredGames()
	if s.oauth != nil {
		if purged := s.oauth.PurgeExpiredStates(); purged > 0 {
			log.Printf("Purged %d expired OAuth states", purged)
		}
	}
}

// FinishExpiredGames marks still-open games whose expiry has passed as
// finished.
func (s *CleanupService) FinishExpiredGames() {
	result := s.db.Model(&models.Game{}).
		Where("status IN ?", []models.GameStatus{models.GameStatusLobby, models.GameStatusPlaying}).
		Where("expires_at <= ?", time.Now().UTC()).
		Update("status", models.GameStatusFinished)
	if result.Error != nil {
		log.Printf("[Cleanup] Failed to finish expired games: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("✅ Finished %d expired game(s)", result.RowsAffected)
	}
}
