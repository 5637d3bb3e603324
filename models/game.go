// models/game.go
package models

import "time"

type GameStatus string

const (
	GameStatusLobby    GameStatus = "lobby"
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
)

// Game is a time-boxed hunt. A game counts as active while its status is
// lobby or playing and expires_at is still in the future.
type Game struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title     *string    `json:"title"`
	Status    GameStatus `gorm:"not null;index" json:"status"`
	OwnerID   *string    `gorm:"type:uuid" json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
}

func (Game) TableName() string {
	return "games"
}
