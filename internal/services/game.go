package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/requestdata"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

// GameService stores couple mini-game records. Rules and turn-taking run on
// the client; the server keeps state blobs and hands out the winner's
// points once on completion.
type GameService interface {
  CreateGame(ctx context.Context, gameType types.GameType) (*types.Game, error)
  GetGame(ctx context.Context, gameID uuid.UUID) (*types.Game, error)
  SaveGameState(ctx context.Context, gameID uuid.UUID, state datatypes.JSONMap) (*types.Game, error)
  CompleteGame(ctx context.Context, gameID uuid.UUID, winnerID uuid.UUID, points int) (*types.Game, error)
}

type gameService struct {
  db              *gorm.DB
  log             *logger.Logger
  userRepo        repos.UserRepo
  gameRepo        repos.GameRepo
  notifierService NotifierService
}

func NewGameService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  gameRepo repos.GameRepo,
  notifierService NotifierService,
) GameService {
  serviceLog := log.With("service", "GameService")
  return &gameService{
    db:              db,
    log:             serviceLog,
    userRepo:        userRepo,
    gameRepo:        gameRepo,
    notifierService: notifierService,
  }
}

var validGameTypes = map[types.GameType]bool{
  types.GameChess:      true,
  types.GameBackgammon: true,
  types.GameBattleship: true,
}

func (gs *gameService) requirePairedUser(ctx context.Context, tx *gorm.DB) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("no request data found in context")
  }
  users, err := gs.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("user not found")
  }
  user := users[0]
  if user.CoupleID == nil || user.PartnerID == nil {
    return nil, fmt.Errorf("games need both partners in a couple")
  }
  return user, nil
}

func (gs *gameService) CreateGame(ctx context.Context, gameType types.GameType) (*types.Game, error) {
  if !validGameTypes[gameType] {
    return nil, fmt.Errorf("unknown game type %q", gameType)
  }

  user, err := gs.requirePairedUser(ctx, nil)
  if err != nil {
    return nil, err
  }

  game := &types.Game{
    ID:        uuid.New(),
    CoupleID:  *user.CoupleID,
    GameType:  gameType,
    Player1ID: user.ID,
    Player2ID: *user.PartnerID,
    GameState: datatypes.JSONMap{},
  }
  created, err := gs.gameRepo.Create(ctx, nil, game)
  if err != nil {
    return nil, fmt.Errorf("failed to create game: %w", err)
  }

  if gs.notifierService != nil {
    gs.notifierService.GameCreated(ctx, *user.CoupleID, map[string]any{
      "game": created,
    })
  }
  return created, nil
}

func (gs *gameService) loadCoupleGame(ctx context.Context, tx *gorm.DB, user *types.User, gameID uuid.UUID) (*types.Game, error) {
  game, err := gs.gameRepo.GetByID(ctx, tx, gameID)
  if err != nil {
    return nil, fmt.Errorf("failed to load game: %w", err)
  }
  if game == nil {
    return nil, fmt.Errorf("game not found")
  }
  if game.CoupleID != *user.CoupleID {
    return nil, fmt.Errorf("game does not belong to this couple")
  }
  return game, nil
}

func (gs *gameService) GetGame(ctx context.Context, gameID uuid.UUID) (*types.Game, error) {
  user, err := gs.requirePairedUser(ctx, nil)
  if err != nil {
    return nil, err
  }
  return gs.loadCoupleGame(ctx, nil, user, gameID)
}

func (gs *gameService) SaveGameState(ctx context.Context, gameID uuid.UUID, state datatypes.JSONMap) (*types.Game, error) {
  user, err := gs.requirePairedUser(ctx, nil)
  if err != nil {
    return nil, err
  }

  var saved *types.Game
  err = gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    game, gErr := gs.loadCoupleGame(ctx, tx, user, gameID)
    if gErr != nil {
      return gErr
    }
    if game.CompletedAt != nil {
      return fmt.Errorf("game is already completed")
    }
    game.GameState = state
    if sErr := gs.gameRepo.Save(ctx, tx, game); sErr != nil {
      return fmt.Errorf("failed to save game state: %w", sErr)
    }
    saved = game
    return nil
  })
  if err != nil {
    return nil, err
  }
  return saved, nil
}

func (gs *gameService) CompleteGame(ctx context.Context, gameID uuid.UUID, winnerID uuid.UUID, points int) (*types.Game, error) {
  if points < 0 {
    return nil, fmt.Errorf("points cannot be negative")
  }

  user, err := gs.requirePairedUser(ctx, nil)
  if err != nil {
    return nil, err
  }

  var completed *types.Game
  err = gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    game, gErr := gs.loadCoupleGame(ctx, tx, user, gameID)
    if gErr != nil {
      return gErr
    }
    if game.CompletedAt != nil {
      return fmt.Errorf("game is already completed")
    }
    if winnerID != game.Player1ID && winnerID != game.Player2ID {
      return fmt.Errorf("winner must be one of the players")
    }

    now := time.Now().UTC()
    game.WinnerID = &winnerID
    game.PointsAwarded = points
    game.CompletedAt = &now
    if sErr := gs.gameRepo.Save(ctx, tx, game); sErr != nil {
      return fmt.Errorf("failed to complete game: %w", sErr)
    }
    if points > 0 {
      if ipErr := gs.userRepo.IncrementPoints(ctx, tx, winnerID, points); ipErr != nil {
        return fmt.Errorf("failed to award game points: %w", ipErr)
      }
    }
    completed = game
    return nil
  })
  if err != nil {
    return nil, err
  }
  return completed, nil
}
