package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/types"
  "github.com/hearthly/hearthpoints-backend/internal/utils"
)

type Service struct {
  db  *gorm.DB
  log *logger.Logger
}

// New connects to Postgres by default; DB_DRIVER=sqlite switches to a local
// file database for development.
func New(log *logger.Logger) (*Service, error) {
  serviceLog := log.With("service", "DatabaseService")

  driver := utils.GetEnv("DB_DRIVER", "postgres", log)

  var dialector gorm.Dialector
  switch driver {
  case "sqlite":
    path := utils.GetEnv("SQLITE_PATH", "hearthpoints.db", log)
    dialector = sqlite.Open(path)
  default:
    host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    port := utils.GetEnv("POSTGRES_PORT", "5432", log)
    user := utils.GetEnv("POSTGRES_USER", "postgres", log)
    password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    name := utils.GetEnv("POSTGRES_NAME", "hearthpoints", log)
    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
    dialector = postgres.Open(dsn)
  }

  serviceLog.Info("Connecting to database", "driver", driver)
  gormDB, err := gorm.Open(dialector, &gorm.Config{
    TranslateError: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to database", "error", err)
    return nil, fmt.Errorf("failed to connect to database: %w", err)
  }

  return &Service{db: gormDB, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Couple{},
    &types.CoupleSettings{},
    &types.Chore{},
    &types.TalentUnlock{},
    &types.DailyOdds{},
    &types.DailyAssignment{},
    &types.ChoreCompletion{},
    &types.Game{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *Service) DB() *gorm.DB {
  return s.db
}
