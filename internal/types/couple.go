package types

import (
  "time"

  "github.com/google/uuid"
)

type Couple struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  InviteCode string    `gorm:"uniqueIndex;not null;column:invite_code" json:"invite_code"`
  CreatedAt  time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Couple) TableName() string {
  return "couple"
}

type CoupleSettings struct {
  ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  CoupleID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:couple_id" json:"couple_id"`
  EndOfDayTime string    `gorm:"not null;default:'23:59';column:end_of_day_time" json:"end_of_day_time"`
  Timezone     string    `gorm:"not null;default:'UTC';column:timezone" json:"timezone"`
  CreatedAt    time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (CoupleSettings) TableName() string {
  return "couple_settings"
}
