package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/requestdata"
  "github.com/hearthly/hearthpoints-backend/internal/scoring"
  "github.com/hearthly/hearthpoints-backend/internal/talents"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

// TalentNodeView is one tree node as the client sees it.
type TalentNodeView struct {
  ID       string         `json:"id"`
  Branch   talents.Branch `json:"branch"`
  Tier     int            `json:"tier"`
  Cost     int            `json:"cost"`
  Title    string         `json:"title"`
  Prereqs  []string       `json:"prereqs,omitempty"`
  Unlocked bool           `json:"unlocked"`
}

type TalentTree struct {
  Nodes        []TalentNodeView `json:"nodes"`
  TalentBudget int              `json:"talent_budget"`
  SpentPoints  int              `json:"spent_points"`
}

type TalentService interface {
  GetTree(ctx context.Context) (*TalentTree, error)
  SubmitBuild(ctx context.Context, nodeIDs []string) (*TalentTree, error)
}

type talentService struct {
  db               *gorm.DB
  log              *logger.Logger
  userRepo         repos.UserRepo
  talentUnlockRepo repos.TalentUnlockRepo
  notifierService  NotifierService
}

func NewTalentService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  talentUnlockRepo repos.TalentUnlockRepo,
  notifierService NotifierService,
) TalentService {
  serviceLog := log.With("service", "TalentService")
  return &talentService{
    db:               db,
    log:              serviceLog,
    userRepo:         userRepo,
    talentUnlockRepo: talentUnlockRepo,
    notifierService:  notifierService,
  }
}

func (ts *talentService) requireUser(ctx context.Context, tx *gorm.DB) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("no request data found in context")
  }
  users, err := ts.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("user not found")
  }
  return users[0], nil
}

func buildTree(user *types.User, unlockedIDs []string) *TalentTree {
  unlocked := make(map[string]bool, len(unlockedIDs))
  for _, id := range unlockedIDs {
    unlocked[id] = true
  }

  spent := 0
  nodes := talents.AllNodes()
  views := make([]TalentNodeView, 0, len(nodes))
  for _, node := range nodes {
    isUnlocked := unlocked[node.ID]
    if isUnlocked {
      spent += node.Cost
    }
    views = append(views, TalentNodeView{
      ID:       node.ID,
      Branch:   node.Branch,
      Tier:     node.Tier,
      Cost:     node.Cost,
      Title:    node.Title,
      Prereqs:  node.Prereqs,
      Unlocked: isUnlocked,
    })
  }

  level := scoring.LevelForPoints(user.Points)
  return &TalentTree{
    Nodes:        views,
    TalentBudget: scoring.TalentPointBudget(level),
    SpentPoints:  spent,
  }
}

func (ts *talentService) GetTree(ctx context.Context) (*TalentTree, error) {
  user, err := ts.requireUser(ctx, nil)
  if err != nil {
    return nil, err
  }
  unlockedIDs, err := ts.talentUnlockRepo.GetNodeIDsByUserID(ctx, nil, user.ID)
  if err != nil {
    return nil, fmt.Errorf("failed to load talent unlocks: %w", err)
  }
  return buildTree(user, unlockedIDs), nil
}

// SubmitBuild replaces the user's intended build with nodeIDs. The new set
// must include everything already unlocked; unlocks are never revoked.
// Validation covers the whole submitted set, so prereqs and the budget are
// checked against the final state rather than the delta.
func (ts *talentService) SubmitBuild(ctx context.Context, nodeIDs []string) (*TalentTree, error) {
  var tree *TalentTree
  err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := ts.requireUser(ctx, tx)
    if uErr != nil {
      return uErr
    }

    existingIDs, eErr := ts.talentUnlockRepo.GetNodeIDsByUserID(ctx, tx, user.ID)
    if eErr != nil {
      return fmt.Errorf("failed to load talent unlocks: %w", eErr)
    }

    submitted := make(map[string]bool, len(nodeIDs))
    for _, id := range nodeIDs {
      submitted[id] = true
    }
    for _, id := range existingIDs {
      if _, known := talents.NodeByID(id); !known {
        continue
      }
      if !submitted[id] {
        return fmt.Errorf("build cannot remove unlocked talent %q", id)
      }
    }

    level := scoring.LevelForPoints(user.Points)
    budget := scoring.TalentPointBudget(level)
    if vErr := talents.ValidateBuild(nodeIDs, budget); vErr != nil {
      return vErr
    }

    existing := make(map[string]bool, len(existingIDs))
    for _, id := range existingIDs {
      existing[id] = true
    }
    now := time.Now().UTC()
    newUnlocks := make([]*types.TalentUnlock, 0, len(nodeIDs))
    for _, id := range nodeIDs {
      if existing[id] {
        continue
      }
      newUnlocks = append(newUnlocks, &types.TalentUnlock{
        ID:         uuid.New(),
        UserID:     user.ID,
        NodeID:     id,
        UnlockedAt: now,
      })
    }
    if len(newUnlocks) > 0 {
      if aErr := ts.talentUnlockRepo.AddUnlocks(ctx, tx, newUnlocks); aErr != nil {
        return fmt.Errorf("failed to store talent unlocks: %w", aErr)
      }
    }

    tree = buildTree(user, nodeIDs)
    return nil
  })
  if err != nil {
    return nil, err
  }

  user, uErr := ts.requireUser(ctx, nil)
  if uErr == nil && user.CoupleID != nil && ts.notifierService != nil {
    ts.notifierService.TalentsUpdated(ctx, *user.CoupleID, map[string]any{
      "user_id": user.ID,
    })
  }
  return tree, nil
}
