package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type GameRepo interface {
  Create(ctx context.Context, tx *gorm.DB, game *types.Game) (*types.Game, error)
  GetByID(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) (*types.Game, error)
  Save(ctx context.Context, tx *gorm.DB, game *types.Game) error
}

type gameRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGameRepo(db *gorm.DB, baseLog *logger.Logger) GameRepo {
  repoLog := baseLog.With("repo", "GameRepo")
  return &gameRepo{db: db, log: repoLog}
}

func (gr *gameRepo) Create(ctx context.Context, tx *gorm.DB, game *types.Game) (*types.Game, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  if err := transaction.WithContext(ctx).Create(game).Error; err != nil {
    return nil, err
  }
  return game, nil
}

func (gr *gameRepo) GetByID(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) (*types.Game, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  var result types.Game
  err := transaction.WithContext(ctx).
    Where("id = ?", gameID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (gr *gameRepo) Save(ctx context.Context, tx *gorm.DB, game *types.Game) error {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }
  return transaction.WithContext(ctx).Save(game).Error
}
