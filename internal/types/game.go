package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type GameType string

const (
  GameChess      GameType = "chess"
  GameBackgammon GameType = "backgammon"
  GameBattleship GameType = "battleship"
)

// Game is a stored record of a couple mini-game. Only creation and state
// storage live server-side; the rules run on the client.
type Game struct {
  ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
  CoupleID      uuid.UUID         `gorm:"type:uuid;index;not null;column:couple_id" json:"couple_id"`
  GameType      GameType          `gorm:"not null;column:game_type" json:"game_type"`
  Player1ID     uuid.UUID         `gorm:"type:uuid;not null;column:player1_id" json:"player1_id"`
  Player2ID     uuid.UUID         `gorm:"type:uuid;not null;column:player2_id" json:"player2_id"`
  GameState     datatypes.JSONMap `gorm:"column:game_state" json:"game_state"`
  WinnerID      *uuid.UUID        `gorm:"type:uuid;column:winner_id" json:"winner_id"`
  PointsAwarded int               `gorm:"not null;default:0;column:points_awarded" json:"points_awarded"`
  CreatedAt     time.Time         `gorm:"not null" json:"created_at"`
  CompletedAt   *time.Time        `gorm:"column:completed_at" json:"completed_at"`
}

func (Game) TableName() string {
  return "game"
}
