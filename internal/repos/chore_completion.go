package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type ChoreCompletionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, completion *types.ChoreCompletion) error
  CountForUserOnDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (int64, error)
  ListByCoupleDate(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID, date string) ([]*types.ChoreCompletion, error)
}

type choreCompletionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChoreCompletionRepo(db *gorm.DB, baseLog *logger.Logger) ChoreCompletionRepo {
  repoLog := baseLog.With("repo", "ChoreCompletionRepo")
  return &choreCompletionRepo{db: db, log: repoLog}
}

func (cr *choreCompletionRepo) Create(ctx context.Context, tx *gorm.DB, completion *types.ChoreCompletion) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).Create(completion).Error
}

func (cr *choreCompletionRepo) CountForUserOnDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ChoreCompletion{}).
    Where("user_id = ? AND date = ?", userID, date).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (cr *choreCompletionRepo) ListByCoupleDate(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID, date string) ([]*types.ChoreCompletion, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.ChoreCompletion
  if err := transaction.WithContext(ctx).
    Where("couple_id = ? AND date = ?", coupleID, date).
    Order("completed_at asc").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
