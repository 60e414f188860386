package main

import (
  "context"
  "fmt"
  "os"
  "time"

  "github.com/hearthly/hearthpoints-backend/internal/db"
  "github.com/hearthly/hearthpoints-backend/internal/handlers"
  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/middleware"
  "github.com/hearthly/hearthpoints-backend/internal/observability"
  "github.com/hearthly/hearthpoints-backend/internal/realtime/bus"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/server"
  "github.com/hearthly/hearthpoints-backend/internal/services"
  "github.com/hearthly/hearthpoints-backend/internal/sse"
  "github.com/hearthly/hearthpoints-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Tracing
  shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "hearthpoints-backend",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if shutdownOTel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownOTel(ctx)
    }()
  }

  // Database
  dbService, err := db.New(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = dbService.AutoMigrateAll(); err != nil {
    log.Warn("Auto migration failed", "error", err)
  }
  theDB := dbService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(theDB, log)
  userTokenRepo := repos.NewUserTokenRepo(theDB, log)
  coupleRepo := repos.NewCoupleRepo(theDB, log)
  choreRepo := repos.NewChoreRepo(theDB, log)
  choreCompletionRepo := repos.NewChoreCompletionRepo(theDB, log)
  talentUnlockRepo := repos.NewTalentUnlockRepo(theDB, log)
  dailyOddsRepo := repos.NewDailyOddsRepo(theDB, log)
  dailyAssignmentRepo := repos.NewDailyAssignmentRepo(theDB, log)
  gameRepo := repos.NewGameRepo(theDB, log)

  // SSE
  log.Info("Setting up SSE hub now...")
  sseHub := sse.NewSSEHub(log)

  var eventBus bus.Bus
  if os.Getenv("REDIS_ADDR") != "" {
    eventBus, err = bus.NewRedisBus(log)
    if err != nil {
      log.Warn("Could not init redis bus; running single-instance", "error", err)
      eventBus = nil
    } else {
      if err := eventBus.StartForwarder(context.Background(), sseHub.Broadcast); err != nil {
        log.Warn("Could not start redis bus forwarder", "error", err)
      }
      defer eventBus.Close()
    }
  }

  // Services
  log.Info("Setting up Services from main...")
  notifierService := services.NewNotifierService(log, sseHub, eventBus)

  var avatarService services.AvatarService
  avatarService, err = services.NewAvatarService(theDB, log, userRepo)
  if err != nil {
    log.Warn("Could not init AvatarService; continuing without avatars", "error", err)
    avatarService = nil
  }

  openaiClient, err := services.NewOpenAIClient(log)
  if err != nil {
    log.Warn("Could not init OpenAIClient; message softening disabled", "error", err)
    openaiClient = nil
  }
  softenerService := services.NewSoftenerService(log, openaiClient)

  authService := services.NewAuthService(theDB, log, userRepo, avatarService, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(theDB, log, userRepo, talentUnlockRepo, avatarService)
  coupleService := services.NewCoupleService(theDB, log, userRepo, coupleRepo, choreRepo, notifierService)
  choreService := services.NewChoreService(theDB, log, userRepo, choreRepo, choreCompletionRepo, talentUnlockRepo, notifierService)
  assignmentService := services.NewAssignmentService(theDB, log, userRepo, choreRepo, talentUnlockRepo, dailyOddsRepo, dailyAssignmentRepo, notifierService)
  talentService := services.NewTalentService(theDB, log, userRepo, talentUnlockRepo, notifierService)
  gameService := services.NewGameService(theDB, log, userRepo, gameRepo, notifierService)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  coupleHandler := handlers.NewCoupleHandler(coupleService)
  choreHandler := handlers.NewChoreHandler(choreService)
  assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
  talentHandler := handlers.NewTalentHandler(talentService)
  gameHandler := handlers.NewGameHandler(gameService)
  messageHandler := handlers.NewMessageHandler(softenerService)
  sseHandler := handlers.NewSSEHandler(log, sseHub, userRepo)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:       authHandler,
    AuthMiddleware:    authMiddleware,
    UserHandler:       userHandler,
    CoupleHandler:     coupleHandler,
    ChoreHandler:      choreHandler,
    AssignmentHandler: assignmentHandler,
    TalentHandler:     talentHandler,
    GameHandler:       gameHandler,
    MessageHandler:    messageHandler,
    SSEHandler:        sseHandler,
    AvatarDir:         os.Getenv("AVATAR_DIR"),
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
