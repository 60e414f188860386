package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"

  "crypto/rand"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/catalog"
  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/normalization"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/requestdata"
  "github.com/hearthly/hearthpoints-backend/internal/scoring"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type CoupleService interface {
  CreateCouple(ctx context.Context) (*types.Couple, error)
  JoinCouple(ctx context.Context, inviteCode string) (*types.Couple, error)
  GetCouple(ctx context.Context) (*types.Couple, []*types.User, error)
  GetSettings(ctx context.Context) (*types.CoupleSettings, error)
  UpdateSettings(ctx context.Context, endOfDayTime, timezone string) (*types.CoupleSettings, error)
}

type coupleService struct {
  db              *gorm.DB
  log             *logger.Logger
  userRepo        repos.UserRepo
  coupleRepo      repos.CoupleRepo
  choreRepo       repos.ChoreRepo
  notifierService NotifierService
}

func NewCoupleService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  coupleRepo repos.CoupleRepo,
  choreRepo repos.ChoreRepo,
  notifierService NotifierService,
) CoupleService {
  serviceLog := log.With("service", "CoupleService")
  return &coupleService{
    db:              db,
    log:             serviceLog,
    userRepo:        userRepo,
    coupleRepo:      coupleRepo,
    choreRepo:       choreRepo,
    notifierService: notifierService,
  }
}

// Invite codes skip ambiguous characters (0/O, 1/I/L).
const inviteCodeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const inviteCodeLength = 6

func newInviteCode() (string, error) {
  raw := make([]byte, inviteCodeLength)
  if _, err := rand.Read(raw); err != nil {
    return "", fmt.Errorf("failed to generate invite code: %w", err)
  }
  var sb strings.Builder
  for _, b := range raw {
    sb.WriteByte(inviteCodeCharset[int(b)%len(inviteCodeCharset)])
  }
  return sb.String(), nil
}

func (cs *coupleService) requireUser(ctx context.Context, tx *gorm.DB) (*types.User, error) {
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
  return users[0], nil
}

func (cs *coupleService) CreateCouple(ctx context.Context) (*types.Couple, error) {
  defaults, err := catalog.Load()
  if err != nil {
    return nil, fmt.Errorf("failed to load default catalog: %w", err)
  }

  var created *types.Couple
  // Regenerate the code on the rare collision with an existing couple.
  for attempt := 0; attempt < 5; attempt++ {
    code, codeErr := newInviteCode()
    if codeErr != nil {
      return nil, codeErr
    }
    txErr := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
      user, uErr := cs.requireUser(ctx, tx)
      if uErr != nil {
        return uErr
      }
      if user.CoupleID != nil {
        return fmt.Errorf("user already belongs to a couple")
      }

      couple := &types.Couple{ID: uuid.New(), InviteCode: code}
      couple, cErr := cs.coupleRepo.Create(ctx, tx, couple)
      if cErr != nil {
        return cErr
      }
      if sErr := cs.userRepo.SetCouple(ctx, tx, user.ID, couple.ID); sErr != nil {
        return fmt.Errorf("failed to attach user to couple: %w", sErr)
      }

      chores := make([]*types.Chore, 0, 32)
      for room, roomChores := range defaults {
        for _, dc := range roomChores {
          difficulty := types.Difficulty(dc.Difficulty)
          chores = append(chores, &types.Chore{
            ID:           uuid.New(),
            CoupleID:     couple.ID,
            Room:         room,
            Title:        dc.Title,
            Difficulty:   difficulty,
            Category:     types.CategoryHousehold,
            Points:       scoring.DifficultyPoints[difficulty],
            TimerMinutes: dc.TimerMinutes,
            IsDefault:    true,
          })
        }
      }
      if _, chErr := cs.choreRepo.Create(ctx, tx, chores); chErr != nil {
        return fmt.Errorf("failed to seed default chores: %w", chErr)
      }

      settings := &types.CoupleSettings{
        ID:           uuid.New(),
        CoupleID:     couple.ID,
        EndOfDayTime: "23:59",
        Timezone:     "UTC",
      }
      if stErr := cs.coupleRepo.UpsertSettings(ctx, tx, settings); stErr != nil {
        return fmt.Errorf("failed to create couple settings: %w", stErr)
      }

      created = couple
      return nil
    })
    if txErr == nil {
      return created, nil
    }
    if errors.Is(txErr, repos.ErrDuplicate) {
      continue
    }
    return nil, txErr
  }
  return nil, fmt.Errorf("could not allocate a unique invite code")
}

func (cs *coupleService) JoinCouple(ctx context.Context, inviteCode string) (*types.Couple, error) {
  inviteCode = strings.ToUpper(normalization.ParseInputString(inviteCode))
  if inviteCode == "" {
    return nil, fmt.Errorf("invite code is required")
  }

  var joined *types.Couple
  var partner *types.User
  var joiner *types.User
  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := cs.requireUser(ctx, tx)
    if uErr != nil {
      return uErr
    }
    if user.CoupleID != nil {
      return fmt.Errorf("user already belongs to a couple")
    }

    couple, cErr := cs.coupleRepo.GetByInviteCode(ctx, tx, inviteCode)
    if cErr != nil {
      return fmt.Errorf("failed to look up invite code: %w", cErr)
    }
    if couple == nil {
      return fmt.Errorf("invalid invite code")
    }

    members, mErr := cs.userRepo.GetByCoupleID(ctx, tx, couple.ID)
    if mErr != nil {
      return fmt.Errorf("failed to load couple members: %w", mErr)
    }
    if len(members) >= 2 {
      return fmt.Errorf("this couple is already full")
    }
    if len(members) == 0 {
      return fmt.Errorf("couple has no remaining members")
    }
    existing := members[0]

    if sErr := cs.userRepo.SetCouple(ctx, tx, user.ID, couple.ID); sErr != nil {
      return fmt.Errorf("failed to attach user to couple: %w", sErr)
    }
    if pErr := cs.userRepo.SetPartner(ctx, tx, user.ID, existing.ID); pErr != nil {
      return fmt.Errorf("failed to link partner: %w", pErr)
    }
    if pErr := cs.userRepo.SetPartner(ctx, tx, existing.ID, user.ID); pErr != nil {
      return fmt.Errorf("failed to link partner: %w", pErr)
    }

    joined = couple
    partner = existing
    joiner = user
    return nil
  })
  if err != nil {
    return nil, err
  }

  if cs.notifierService != nil && partner != nil {
    cs.notifierService.PartnerJoined(ctx, joined.ID, map[string]any{
      "couple_id":    joined.ID,
      "user_id":      joiner.ID,
      "display_name": joiner.DisplayName,
      "joined_at":    time.Now().UTC(),
    })
  }
  return joined, nil
}

func (cs *coupleService) GetCouple(ctx context.Context) (*types.Couple, []*types.User, error) {
  user, err := cs.requireUser(ctx, nil)
  if err != nil {
    return nil, nil, err
  }
  if user.CoupleID == nil {
    return nil, nil, fmt.Errorf("user does not belong to a couple")
  }
  couple, err := cs.coupleRepo.GetByID(ctx, nil, *user.CoupleID)
  if err != nil {
    return nil, nil, fmt.Errorf("failed to load couple: %w", err)
  }
  if couple == nil {
    return nil, nil, fmt.Errorf("couple not found")
  }
  members, err := cs.userRepo.GetByCoupleID(ctx, nil, couple.ID)
  if err != nil {
    return nil, nil, fmt.Errorf("failed to load couple members: %w", err)
  }
  return couple, members, nil
}

func (cs *coupleService) GetSettings(ctx context.Context) (*types.CoupleSettings, error) {
  user, err := cs.requireUser(ctx, nil)
  if err != nil {
    return nil, err
  }
  if user.CoupleID == nil {
    return nil, fmt.Errorf("user does not belong to a couple")
  }
  settings, err := cs.coupleRepo.GetSettings(ctx, nil, *user.CoupleID)
  if err != nil {
    return nil, fmt.Errorf("failed to load couple settings: %w", err)
  }
  if settings == nil {
    return nil, fmt.Errorf("couple settings not found")
  }
  return settings, nil
}

func (cs *coupleService) UpdateSettings(ctx context.Context, endOfDayTime, timezone string) (*types.CoupleSettings, error) {
  endOfDayTime = normalization.ParseInputString(endOfDayTime)
  timezone = normalization.ParseInputString(timezone)
  if endOfDayTime != "" {
    if _, err := time.Parse("15:04", endOfDayTime); err != nil {
      return nil, fmt.Errorf("end_of_day_time must be HH:MM")
    }
  }
  if timezone != "" {
    if _, err := time.LoadLocation(timezone); err != nil {
      return nil, fmt.Errorf("unknown timezone %q", timezone)
    }
  }

  user, err := cs.requireUser(ctx, nil)
  if err != nil {
    return nil, err
  }
  if user.CoupleID == nil {
    return nil, fmt.Errorf("user does not belong to a couple")
  }

  var updated *types.CoupleSettings
  err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    settings, sErr := cs.coupleRepo.GetSettings(ctx, tx, *user.CoupleID)
    if sErr != nil {
      return fmt.Errorf("failed to load couple settings: %w", sErr)
    }
    if settings == nil {
      settings = &types.CoupleSettings{ID: uuid.New(), CoupleID: *user.CoupleID}
    }
    if endOfDayTime != "" {
      settings.EndOfDayTime = endOfDayTime
    }
    if timezone != "" {
      settings.Timezone = timezone
    }
    if uErr := cs.coupleRepo.UpsertSettings(ctx, tx, settings); uErr != nil {
      return fmt.Errorf("failed to save couple settings: %w", uErr)
    }
    updated = settings
    return nil
  })
  if err != nil {
    return nil, err
  }
  return updated, nil
}
