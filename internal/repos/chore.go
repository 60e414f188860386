package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type ChoreRepo interface {
  Create(ctx context.Context, tx *gorm.DB, chores []*types.Chore) ([]*types.Chore, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, choreIDs []uuid.UUID) ([]*types.Chore, error)
  GetByCoupleID(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID) ([]*types.Chore, error)
}

type choreRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChoreRepo(db *gorm.DB, baseLog *logger.Logger) ChoreRepo {
  repoLog := baseLog.With("repo", "ChoreRepo")
  return &choreRepo{db: db, log: repoLog}
}

func (cr *choreRepo) Create(ctx context.Context, tx *gorm.DB, chores []*types.Chore) ([]*types.Chore, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if len(chores) == 0 {
    return []*types.Chore{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&chores).Error; err != nil {
    return nil, err
  }
  return chores, nil
}

func (cr *choreRepo) GetByIDs(ctx context.Context, tx *gorm.DB, choreIDs []uuid.UUID) ([]*types.Chore, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Chore
  if len(choreIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", choreIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *choreRepo) GetByCoupleID(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID) ([]*types.Chore, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.Chore
  if err := transaction.WithContext(ctx).
    Where("couple_id = ?", coupleID).
    Order("room asc, title asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
