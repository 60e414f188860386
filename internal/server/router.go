package server

import (
  "os"
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/hearthly/hearthpoints-backend/internal/handlers"
  "github.com/hearthly/hearthpoints-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  UserHandler       *handlers.UserHandler
  CoupleHandler     *handlers.CoupleHandler
  ChoreHandler      *handlers.ChoreHandler
  AssignmentHandler *handlers.AssignmentHandler
  TalentHandler     *handlers.TalentHandler
  GameHandler       *handlers.GameHandler
  MessageHandler    *handlers.MessageHandler
  SSEHandler        *handlers.SSEHandler
  AvatarDir         string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("hearthpoints"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  if dir := strings.TrimSpace(cfg.AvatarDir); dir != "" {
    if _, err := os.Stat(dir); err == nil {
      router.Static("/static/avatars", dir)
    }
  }

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // SSE
  protected.GET("/sse/stream", cfg.SSEHandler.Stream)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  protected.POST("/user/avatar", cfg.UserHandler.UploadAvatar)
  // Couple
  protected.POST("/couple", cfg.CoupleHandler.Create)
  protected.POST("/couple/join", cfg.CoupleHandler.Join)
  protected.GET("/couple", cfg.CoupleHandler.Get)
  protected.GET("/couple/settings", cfg.CoupleHandler.GetSettings)
  protected.PUT("/couple/settings", cfg.CoupleHandler.UpdateSettings)
  // Chores
  protected.GET("/chores", cfg.ChoreHandler.List)
  protected.POST("/chores", cfg.ChoreHandler.Create)
  protected.POST("/chores/:choreID/complete", cfg.ChoreHandler.Complete)
  protected.GET("/completions", cfg.ChoreHandler.ListCompletions)
  // Daily board
  protected.GET("/board/daily", cfg.AssignmentHandler.GetDailyBoard)
  // Talents
  protected.GET("/talents", cfg.TalentHandler.GetTree)
  protected.POST("/talents/build", cfg.TalentHandler.SubmitBuild)
  // Games
  protected.POST("/games", cfg.GameHandler.Create)
  protected.GET("/games/:gameID", cfg.GameHandler.Get)
  protected.PUT("/games/:gameID/state", cfg.GameHandler.SaveState)
  protected.POST("/games/:gameID/complete", cfg.GameHandler.Complete)
  // Messages
  protected.POST("/messages/soften", cfg.MessageHandler.Soften)

  return router
}
