package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// DailyAssignment is the concrete chore -> user mapping sampled from the
// odds table for one (couple, date) pair. Same at-most-one contract as
// DailyOdds.
type DailyAssignment struct {
  ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
  CoupleID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_daily_assignment_couple_date;column:couple_id" json:"couple_id"`
  Date        string            `gorm:"not null;uniqueIndex:idx_daily_assignment_couple_date;column:date" json:"date"`
  Assignments datatypes.JSONMap `gorm:"not null;column:assignments" json:"assignments"`
  CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
}

func (DailyAssignment) TableName() string {
  return "daily_assignment"
}
