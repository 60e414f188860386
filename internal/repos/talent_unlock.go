package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type TalentUnlockRepo interface {
  GetNodeIDsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error)
  AddUnlocks(ctx context.Context, tx *gorm.DB, unlocks []*types.TalentUnlock) error
}

type talentUnlockRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTalentUnlockRepo(db *gorm.DB, baseLog *logger.Logger) TalentUnlockRepo {
  repoLog := baseLog.With("repo", "TalentUnlockRepo")
  return &talentUnlockRepo{db: db, log: repoLog}
}

func (tr *talentUnlockRepo) GetNodeIDsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var nodeIDs []string
  if err := transaction.WithContext(ctx).
    Model(&types.TalentUnlock{}).
    Where("user_id = ?", userID).
    Order("node_id asc").
    Pluck("node_id", &nodeIDs).Error; err != nil {
    return nil, err
  }
  return nodeIDs, nil
}

// AddUnlocks grows the unlocked set; rows that already exist are left
// untouched, so the set is monotonic.
func (tr *talentUnlockRepo) AddUnlocks(ctx context.Context, tx *gorm.DB, unlocks []*types.TalentUnlock) error {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(unlocks) == 0 {
    return nil
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "node_id"}},
      DoNothing: true,
    }).
    Create(&unlocks).Error
}
