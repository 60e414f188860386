package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// DailyOdds stores the computed per-chore probability table for one
// (couple, date) pair. Date is the literal YYYY-MM-DD string; it doubles as
// seed material for the jitter pass, so it is never re-parsed or
// re-serialized. At most one row per (couple, date), enforced by the
// composite unique index.
type DailyOdds struct {
  ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  CoupleID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_daily_odds_couple_date;column:couple_id" json:"couple_id"`
  Date          string         `gorm:"not null;uniqueIndex:idx_daily_odds_couple_date;column:date" json:"date"`
  PartnerAID    uuid.UUID      `gorm:"type:uuid;not null;column:partner_a_id" json:"partner_a_id"`
  PartnerBID    uuid.UUID      `gorm:"type:uuid;not null;column:partner_b_id" json:"partner_b_id"`
  Probabilities datatypes.JSON `gorm:"not null;column:probabilities" json:"probabilities"`
  CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
}

func (DailyOdds) TableName() string {
  return "daily_odds"
}
