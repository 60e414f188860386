package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "go.opentelemetry.io/otel"
  "go.opentelemetry.io/otel/attribute"
  "golang.org/x/sync/errgroup"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/odds"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/requestdata"
  "github.com/hearthly/hearthpoints-backend/internal/talents"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

// DailyBoard is the full daily view: the odds table and the concrete
// assignment for each chore, keyed by chore ID. Assignments carry resolved
// user IDs, not partner slots.
type DailyBoard struct {
  Date        string               `json:"date"`
  PartnerAID  uuid.UUID            `json:"partner_a_id"`
  PartnerBID  uuid.UUID            `json:"partner_b_id"`
  Odds        odds.Table           `json:"odds"`
  Assignments map[string]uuid.UUID `json:"assignments"`
  Chores      []*types.Chore       `json:"chores"`
}

type AssignmentService interface {
  GetDailyBoard(ctx context.Context, date string) (*DailyBoard, error)
}

type assignmentService struct {
  db                  *gorm.DB
  log                 *logger.Logger
  userRepo            repos.UserRepo
  choreRepo           repos.ChoreRepo
  talentUnlockRepo    repos.TalentUnlockRepo
  dailyOddsRepo       repos.DailyOddsRepo
  dailyAssignmentRepo repos.DailyAssignmentRepo
  notifierService     NotifierService
}

func NewAssignmentService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  choreRepo repos.ChoreRepo,
  talentUnlockRepo repos.TalentUnlockRepo,
  dailyOddsRepo repos.DailyOddsRepo,
  dailyAssignmentRepo repos.DailyAssignmentRepo,
  notifierService NotifierService,
) AssignmentService {
  serviceLog := log.With("service", "AssignmentService")
  return &assignmentService{
    db:                  db,
    log:                 serviceLog,
    userRepo:            userRepo,
    choreRepo:           choreRepo,
    talentUnlockRepo:    talentUnlockRepo,
    dailyOddsRepo:       dailyOddsRepo,
    dailyAssignmentRepo: dailyAssignmentRepo,
    notifierService:     notifierService,
  }
}

var assignmentTracer = otel.Tracer("hearthpoints/assignment")

// GetDailyBoard returns the board for (couple, date), computing and storing
// it on first request. The stored row is authoritative: concurrent first
// requests race on the unique index and the loser re-reads, so every caller
// sees the same table for the day.
func (as *assignmentService) GetDailyBoard(ctx context.Context, date string) (*DailyBoard, error) {
  if _, err := time.Parse("2006-01-02", date); err != nil {
    return nil, fmt.Errorf("date must be YYYY-MM-DD")
  }

  ctx, span := assignmentTracer.Start(ctx, "GetDailyBoard")
  defer span.End()
  span.SetAttributes(attribute.String("board.date", date))

  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, fmt.Errorf("no request data found in context")
  }
  users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
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
  coupleID := *user.CoupleID
  span.SetAttributes(attribute.String("board.couple_id", coupleID.String()))

  oddsRecord, err := as.dailyOddsRepo.GetByCoupleDate(ctx, nil, coupleID, date)
  if err != nil {
    return nil, fmt.Errorf("failed to read daily odds: %w", err)
  }
  assignmentRecord, err := as.dailyAssignmentRepo.GetByCoupleDate(ctx, nil, coupleID, date)
  if err != nil {
    return nil, fmt.Errorf("failed to read daily assignment: %w", err)
  }

  chores, err := as.choreRepo.GetByCoupleID(ctx, nil, coupleID)
  if err != nil {
    return nil, fmt.Errorf("failed to load chores: %w", err)
  }

  if oddsRecord == nil || assignmentRecord == nil {
    oddsRecord, assignmentRecord, err = as.computeAndStore(ctx, coupleID, date, chores, oddsRecord)
    if err != nil {
      return nil, err
    }
  }

  return buildBoard(date, oddsRecord, assignmentRecord, chores)
}

func (as *assignmentService) computeAndStore(
  ctx context.Context,
  coupleID uuid.UUID,
  date string,
  chores []*types.Chore,
  existingOdds *types.DailyOdds,
) (*types.DailyOdds, *types.DailyAssignment, error) {
  members, err := as.userRepo.GetByCoupleID(ctx, nil, coupleID)
  if err != nil {
    return nil, nil, fmt.Errorf("failed to load couple members: %w", err)
  }
  if len(members) != 2 {
    return nil, nil, fmt.Errorf("daily board needs both partners; couple has %d member(s)", len(members))
  }
  // Partner A is the earlier-created member. GetByCoupleID orders by
  // created_at asc, so the slot mapping is stable across requests.
  partnerA, partnerB := members[0], members[1]

  var effectsA, effectsB []talents.Effect
  eg, egCtx := errgroup.WithContext(ctx)
  eg.Go(func() error {
    nodeIDs, gErr := as.talentUnlockRepo.GetNodeIDsByUserID(egCtx, nil, partnerA.ID)
    if gErr != nil {
      return fmt.Errorf("failed to load talents for partner a: %w", gErr)
    }
    effectsA = talents.EffectsFor(nodeIDs)
    return nil
  })
  eg.Go(func() error {
    nodeIDs, gErr := as.talentUnlockRepo.GetNodeIDsByUserID(egCtx, nil, partnerB.ID)
    if gErr != nil {
      return fmt.Errorf("failed to load talents for partner b: %w", gErr)
    }
    effectsB = talents.EffectsFor(nodeIDs)
    return nil
  })
  if err := eg.Wait(); err != nil {
    return nil, nil, err
  }

  catalog := make([]types.Chore, 0, len(chores))
  for _, chore := range chores {
    catalog = append(catalog, *chore)
  }

  oddsRecord := existingOdds
  if oddsRecord == nil {
    table := odds.ComputeDailyOdds(date, catalog, effectsA, effectsB)
    raw, mErr := json.Marshal(table)
    if mErr != nil {
      return nil, nil, fmt.Errorf("failed to encode odds table: %w", mErr)
    }
    candidate := &types.DailyOdds{
      ID:            uuid.New(),
      CoupleID:      coupleID,
      Date:          date,
      PartnerAID:    partnerA.ID,
      PartnerBID:    partnerB.ID,
      Probabilities: datatypes.JSON(raw),
    }
    if iErr := as.dailyOddsRepo.Insert(ctx, nil, candidate); iErr != nil {
      if !errors.Is(iErr, repos.ErrDuplicate) {
        return nil, nil, fmt.Errorf("failed to store daily odds: %w", iErr)
      }
      // Lost the race; the winner's row is the record of truth.
      stored, rErr := as.dailyOddsRepo.GetByCoupleDate(ctx, nil, coupleID, date)
      if rErr != nil || stored == nil {
        return nil, nil, fmt.Errorf("failed to re-read daily odds after conflict: %w", rErr)
      }
      candidate = stored
    }
    oddsRecord = candidate
  }

  var table odds.Table
  if uErr := json.Unmarshal(oddsRecord.Probabilities, &table); uErr != nil {
    return nil, nil, fmt.Errorf("failed to decode stored odds table: %w", uErr)
  }

  sampled := odds.GenerateAssignments(coupleID.String(), date, table)
  asJSON := make(datatypes.JSONMap, len(sampled))
  for choreID, slot := range sampled {
    asJSON[choreID] = string(slot)
  }
  assignmentRecord := &types.DailyAssignment{
    ID:          uuid.New(),
    CoupleID:    coupleID,
    Date:        date,
    Assignments: asJSON,
  }
  if iErr := as.dailyAssignmentRepo.Insert(ctx, nil, assignmentRecord); iErr != nil {
    if !errors.Is(iErr, repos.ErrDuplicate) {
      return nil, nil, fmt.Errorf("failed to store daily assignment: %w", iErr)
    }
    stored, rErr := as.dailyAssignmentRepo.GetByCoupleDate(ctx, nil, coupleID, date)
    if rErr != nil || stored == nil {
      return nil, nil, fmt.Errorf("failed to re-read daily assignment after conflict: %w", rErr)
    }
    assignmentRecord = stored
  } else if as.notifierService != nil {
    as.notifierService.AssignmentsReady(ctx, coupleID, map[string]any{
      "couple_id": coupleID,
      "date":      date,
    })
  }

  return oddsRecord, assignmentRecord, nil
}

func buildBoard(
  date string,
  oddsRecord *types.DailyOdds,
  assignmentRecord *types.DailyAssignment,
  chores []*types.Chore,
) (*DailyBoard, error) {
  var table odds.Table
  if err := json.Unmarshal(oddsRecord.Probabilities, &table); err != nil {
    return nil, fmt.Errorf("failed to decode stored odds table: %w", err)
  }

  resolved := make(map[string]uuid.UUID, len(assignmentRecord.Assignments))
  for choreID, rawSlot := range assignmentRecord.Assignments {
    slot, _ := rawSlot.(string)
    switch odds.PartnerSlot(slot) {
    case odds.SlotA:
      resolved[choreID] = oddsRecord.PartnerAID
    case odds.SlotB:
      resolved[choreID] = oddsRecord.PartnerBID
    default:
      return nil, fmt.Errorf("stored assignment for chore %s has invalid slot %q", choreID, slot)
    }
  }

  return &DailyBoard{
    Date:        date,
    PartnerAID:  oddsRecord.PartnerAID,
    PartnerBID:  oddsRecord.PartnerBID,
    Odds:        table,
    Assignments: resolved,
    Chores:      chores,
  }, nil
}
