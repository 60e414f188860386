package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type DailyOddsRepo interface {
  GetByCoupleDate(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID, date string) (*types.DailyOdds, error)
  Insert(ctx context.Context, tx *gorm.DB, record *types.DailyOdds) error
}

type dailyOddsRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyOddsRepo(db *gorm.DB, baseLog *logger.Logger) DailyOddsRepo {
  repoLog := baseLog.With("repo", "DailyOddsRepo")
  return &dailyOddsRepo{db: db, log: repoLog}
}

func (dr *dailyOddsRepo) GetByCoupleDate(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID, date string) (*types.DailyOdds, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  var result types.DailyOdds
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

// Insert relies on the (couple_id, date) unique index rather than a
// read-then-write check; a lost race surfaces as ErrDuplicate and the
// caller re-reads the winning row.
func (dr *dailyOddsRepo) Insert(ctx context.Context, tx *gorm.DB, record *types.DailyOdds) error {
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
