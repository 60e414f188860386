package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/normalization"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/requestdata"
  "github.com/hearthly/hearthpoints-backend/internal/scoring"
  "github.com/hearthly/hearthpoints-backend/internal/talents"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

// CompletionResult is what the client shows after ticking off a chore.
type CompletionResult struct {
  Completion  *types.ChoreCompletion `json:"completion"`
  PointsAfter int                    `json:"points_after"`
  FirstOfDay  bool                   `json:"first_of_day"`
}

type CreateChoreInput struct {
  Room         types.Room
  Title        string
  Description  string
  Difficulty   types.Difficulty
  Category     types.ChoreCategory
  TimerMinutes int
}

type ChoreService interface {
  ListChores(ctx context.Context) (map[types.Room][]*types.Chore, error)
  CreateChore(ctx context.Context, input CreateChoreInput) (*types.Chore, error)
  CompleteChore(ctx context.Context, choreID uuid.UUID, date string) (*CompletionResult, error)
  ListCompletions(ctx context.Context, date string) ([]*types.ChoreCompletion, error)
}

type choreService struct {
  db                  *gorm.DB
  log                 *logger.Logger
  userRepo            repos.UserRepo
  choreRepo           repos.ChoreRepo
  choreCompletionRepo repos.ChoreCompletionRepo
  talentUnlockRepo    repos.TalentUnlockRepo
  notifierService     NotifierService
}

func NewChoreService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  choreRepo repos.ChoreRepo,
  choreCompletionRepo repos.ChoreCompletionRepo,
  talentUnlockRepo repos.TalentUnlockRepo,
  notifierService NotifierService,
) ChoreService {
  serviceLog := log.With("service", "ChoreService")
  return &choreService{
    db:                  db,
    log:                 serviceLog,
    userRepo:            userRepo,
    choreRepo:           choreRepo,
    choreCompletionRepo: choreCompletionRepo,
    talentUnlockRepo:    talentUnlockRepo,
    notifierService:     notifierService,
  }
}

var validRooms = map[types.Room]bool{
  types.RoomKitchen:    true,
  types.RoomBathroom:   true,
  types.RoomLivingRoom: true,
  types.RoomBedroom:    true,
  types.RoomUs:         true,
}

var validCategories = map[types.ChoreCategory]bool{
  types.CategoryHousehold: true,
  types.CategoryPet:       true,
  types.CategoryVehicle:   true,
  types.CategoryPersonal:  true,
  types.CategoryCouple:    true,
  types.CategorySpecial:   true,
}

func (cs *choreService) requireCoupleUser(ctx context.Context, tx *gorm.DB) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("no request data found in context")
  }
  users, err := cs.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("user not found")
  }
  user := users[0]
  if user.CoupleID == nil {
    return nil, fmt.Errorf("user does not belong to a couple")
  }
  return user, nil
}

func (cs *choreService) ListChores(ctx context.Context) (map[types.Room][]*types.Chore, error) {
  user, err := cs.requireCoupleUser(ctx, nil)
  if err != nil {
    return nil, err
  }
  chores, err := cs.choreRepo.GetByCoupleID(ctx, nil, *user.CoupleID)
  if err != nil {
    return nil, fmt.Errorf("failed to load chores: %w", err)
  }
  grouped := make(map[types.Room][]*types.Chore)
  for _, chore := range chores {
    grouped[chore.Room] = append(grouped[chore.Room], chore)
  }
  return grouped, nil
}

func (cs *choreService) CreateChore(ctx context.Context, input CreateChoreInput) (*types.Chore, error) {
  input.Title = normalization.ParseFreeText(input.Title)
  input.Description = normalization.ParseFreeText(input.Description)
  if input.Title == "" {
    return nil, fmt.Errorf("chore title is required")
  }
  if !validRooms[input.Room] {
    return nil, fmt.Errorf("unknown room %q", input.Room)
  }
  if _, ok := scoring.DifficultyPoints[input.Difficulty]; !ok {
    return nil, fmt.Errorf("unknown difficulty %q", input.Difficulty)
  }
  if input.Category == "" {
    input.Category = types.CategoryHousehold
  }
  if !validCategories[input.Category] {
    return nil, fmt.Errorf("unknown category %q", input.Category)
  }
  if input.TimerMinutes < 0 {
    return nil, fmt.Errorf("timer_minutes cannot be negative")
  }

  user, err := cs.requireCoupleUser(ctx, nil)
  if err != nil {
    return nil, err
  }

  chore := &types.Chore{
    ID:           uuid.New(),
    CoupleID:     *user.CoupleID,
    Room:         input.Room,
    Title:        input.Title,
    Description:  input.Description,
    Difficulty:   input.Difficulty,
    Category:     input.Category,
    Points:       scoring.DifficultyPoints[input.Difficulty],
    TimerMinutes: input.TimerMinutes,
    IsDefault:    false,
  }
  created, err := cs.choreRepo.Create(ctx, nil, []*types.Chore{chore})
  if err != nil {
    return nil, fmt.Errorf("failed to create chore: %w", err)
  }
  return created[0], nil
}

// CompleteChore records a completion and awards points. The first-of-day
// check reads the completion count before the new row is written, so the
// row being recorded never counts against its own bonus.
func (cs *choreService) CompleteChore(ctx context.Context, choreID uuid.UUID, date string) (*CompletionResult, error) {
  if _, err := time.Parse("2006-01-02", date); err != nil {
    return nil, fmt.Errorf("date must be YYYY-MM-DD")
  }

  var result *CompletionResult
  var coupleID uuid.UUID
  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := cs.requireCoupleUser(ctx, tx)
    if uErr != nil {
      return uErr
    }
    coupleID = *user.CoupleID

    chores, cErr := cs.choreRepo.GetByIDs(ctx, tx, []uuid.UUID{choreID})
    if cErr != nil {
      return fmt.Errorf("failed to load chore: %w", cErr)
    }
    if len(chores) == 0 {
      return fmt.Errorf("chore not found")
    }
    chore := chores[0]
    if chore.CoupleID != coupleID {
      return fmt.Errorf("chore does not belong to this couple")
    }

    countBefore, cntErr := cs.choreCompletionRepo.CountForUserOnDate(ctx, tx, user.ID, date)
    if cntErr != nil {
      return fmt.Errorf("failed to count completions: %w", cntErr)
    }
    firstOfDay := countBefore == 0

    nodeIDs, tErr := cs.talentUnlockRepo.GetNodeIDsByUserID(ctx, tx, user.ID)
    if tErr != nil {
      return fmt.Errorf("failed to load talents: %w", tErr)
    }
    effects := talents.EffectsFor(nodeIDs)

    award := scoring.CompletionAward(*chore, effects, firstOfDay)

    completion := &types.ChoreCompletion{
      ID:            uuid.New(),
      CoupleID:      coupleID,
      ChoreID:       chore.ID,
      UserID:        user.ID,
      Date:          date,
      PointsAwarded: award,
      CompletedAt:   time.Now().UTC(),
    }
    if crErr := cs.choreCompletionRepo.Create(ctx, tx, completion); crErr != nil {
      return fmt.Errorf("failed to record completion: %w", crErr)
    }
    if ipErr := cs.userRepo.IncrementPoints(ctx, tx, user.ID, award); ipErr != nil {
      return fmt.Errorf("failed to award points: %w", ipErr)
    }

    result = &CompletionResult{
      Completion:  completion,
      PointsAfter: user.Points + award,
      FirstOfDay:  firstOfDay,
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  if cs.notifierService != nil {
    cs.notifierService.ChoreCompleted(ctx, coupleID, map[string]any{
      "completion": result.Completion,
    })
  }
  return result, nil
}

func (cs *choreService) ListCompletions(ctx context.Context, date string) ([]*types.ChoreCompletion, error) {
  if _, err := time.Parse("2006-01-02", date); err != nil {
    return nil, fmt.Errorf("date must be YYYY-MM-DD")
  }
  user, err := cs.requireCoupleUser(ctx, nil)
  if err != nil {
    return nil, err
  }
  completions, err := cs.choreCompletionRepo.ListByCoupleDate(ctx, nil, *user.CoupleID, date)
  if err != nil {
    return nil, fmt.Errorf("failed to list completions: %w", err)
  }
  return completions, nil
}
