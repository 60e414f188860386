package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type CoupleRepo interface {
  Create(ctx context.Context, tx *gorm.DB, couple *types.Couple) (*types.Couple, error)
  GetByID(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID) (*types.Couple, error)
  GetByInviteCode(ctx context.Context, tx *gorm.DB, code string) (*types.Couple, error)
  GetSettings(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID) (*types.CoupleSettings, error)
  UpsertSettings(ctx context.Context, tx *gorm.DB, settings *types.CoupleSettings) error
}

type coupleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCoupleRepo(db *gorm.DB, baseLog *logger.Logger) CoupleRepo {
  repoLog := baseLog.With("repo", "CoupleRepo")
  return &coupleRepo{db: db, log: repoLog}
}

func (cr *coupleRepo) Create(ctx context.Context, tx *gorm.DB, couple *types.Couple) (*types.Couple, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  if err := transaction.WithContext(ctx).Create(couple).Error; err != nil {
    if isUniqueViolation(err) {
      return nil, ErrDuplicate
    }
    return nil, err
  }
  return couple, nil
}

func (cr *coupleRepo) GetByID(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID) (*types.Couple, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var result types.Couple
  err := transaction.WithContext(ctx).
    Where("id = ?", coupleID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *coupleRepo) GetByInviteCode(ctx context.Context, tx *gorm.DB, code string) (*types.Couple, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var result types.Couple
  err := transaction.WithContext(ctx).
    Where("invite_code = ?", code).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *coupleRepo) GetSettings(ctx context.Context, tx *gorm.DB, coupleID uuid.UUID) (*types.CoupleSettings, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var result types.CoupleSettings
  err := transaction.WithContext(ctx).
    Where("couple_id = ?", coupleID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *coupleRepo) UpsertSettings(ctx context.Context, tx *gorm.DB, settings *types.CoupleSettings) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "couple_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"end_of_day_time", "timezone", "updated_at"}),
    }).
    Create(settings).Error
}
