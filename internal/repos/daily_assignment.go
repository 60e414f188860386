package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type DailyAssignmentRepo interface {
  GetByCoupleDate(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID, date string) (*types.DailyAssignment, error)
  Insert(ctx context.Context, tx *gorm.DB, record *types.DailyAssignment) error
}

type dailyAssignmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) DailyAssignmentRepo {
  repoLog := baseLog.With("repo", "DailyAssignmentRepo")
  return &dailyAssignmentRepo{db: db, log: repoLog}
}

func (dr *dailyAssignmentRepo) GetByCoupleDate(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID, date string) (*types.DailyAssignment, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  var result types.DailyAssignment
  err := transaction.WithContext(ctx).
    Where("couple_id = ? AND date = ?", coupleID, date).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (dr *dailyAssignmentRepo) Insert(ctx context.Context, tx *gorm.DB, record *types.DailyAssignment) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
    if isUniqueViolation(err) {
      return ErrDuplicate
    }
    return err
  }
  return nil
}
