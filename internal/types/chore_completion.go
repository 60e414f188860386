package types

import (
  "time"

  "github.com/google/uuid"
)

type ChoreCompletion struct {
  ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  CoupleID      uuid.UUID `gorm:"type:uuid;index;not null;column:couple_id" json:"couple_id"`
  ChoreID       uuid.UUID `gorm:"type:uuid;not null;column:chore_id" json:"chore_id"`
  UserID        uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
  Date          string    `gorm:"not null;index;column:date" json:"date"`
  PointsAwarded int       `gorm:"not null;column:points_awarded" json:"points_awarded"`
  CompletedAt   time.Time `gorm:"not null" json:"completed_at"`
}

func (ChoreCompletion) TableName() string {
  return "chore_completion"
}
