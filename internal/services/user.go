package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/requestdata"
  "github.com/hearthly/hearthpoints-backend/internal/scoring"
  "github.com/hearthly/hearthpoints-backend/internal/talents"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

// UserProfile is the authenticated user plus the derived progression
// numbers the client renders on the home screen.
type UserProfile struct {
  User          *types.User `json:"user"`
  Level         int         `json:"level"`
  TalentBudget  int         `json:"talent_budget"`
  SpentPoints   int         `json:"spent_points"`
  UnlockedNodes []string    `json:"unlocked_nodes"`
}

type UserService interface {
  GetMe(ctx context.Context) (*UserProfile, error)
  UploadAvatar(ctx context.Context, raw []byte) (*types.User, error)
}

type userService struct {
  db               *gorm.DB
  log              *logger.Logger
  userRepo         repos.UserRepo
  talentUnlockRepo repos.TalentUnlockRepo
  avatarService    AvatarService
}

func NewUserService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  talentUnlockRepo repos.TalentUnlockRepo,
  avatarService AvatarService,
) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{
    db:               db,
    log:              serviceLog,
    userRepo:         userRepo,
    talentUnlockRepo: talentUnlockRepo,
    avatarService:    avatarService,
  }
}

func (us *userService) GetMe(ctx context.Context) (*UserProfile, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("no request data found in context")
  }

  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("user not found")
  }
  user := users[0]

  nodeIDs, err := us.talentUnlockRepo.GetNodeIDsByUserID(ctx, nil, user.ID)
  if err != nil {
    return nil, fmt.Errorf("failed to load talent unlocks: %w", err)
  }

  spent := 0
  known := make([]string, 0, len(nodeIDs))
  for _, id := range nodeIDs {
    node, ok := talents.NodeByID(id)
    if !ok {
      // Node retired from the tree; the row stays but spends nothing.
      continue
    }
    spent += node.Cost
    known = append(known, id)
  }

  level := scoring.LevelForPoints(user.Points)
  return &UserProfile{
    User:          user,
    Level:         level,
    TalentBudget:  scoring.TalentPointBudget(level),
    SpentPoints:   spent,
    UnlockedNodes: known,
  }, nil
}

func (us *userService) UploadAvatar(ctx context.Context, raw []byte) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("no request data found in context")
  }
  if us.avatarService == nil {
    return nil, fmt.Errorf("avatar storage is not configured")
  }
  if len(raw) == 0 {
    return nil, fmt.Errorf("empty image upload")
  }

  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("user not found")
  }
  user := users[0]

  if err := us.avatarService.SetUserAvatarFromImage(ctx, nil, user, raw); err != nil {
    return nil, err
  }
  return user, nil
}
