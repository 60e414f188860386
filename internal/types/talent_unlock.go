package types

import (
  "time"

  "github.com/google/uuid"
)

// TalentUnlock is one node of a user's unlocked talent set. The set only
// grows; build submissions never remove rows.
type TalentUnlock struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  UserID     uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_talent_unlock_user_node;column:user_id" json:"user_id"`
  NodeID     string    `gorm:"not null;uniqueIndex:idx_talent_unlock_user_node;column:node_id" json:"node_id"`
  UnlockedAt time.Time `gorm:"not null" json:"unlocked_at"`
}

func (TalentUnlock) TableName() string {
  return "talent_unlock"
}
