package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/hearthly/hearthpoints-backend/internal/services"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type GameHandler struct {
  gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
  return &GameHandler{gameService: gameService}
}

func (gh *GameHandler) Create(c *gin.Context) {
  var req struct {
    GameType string `json:"game_type"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  game, err := gh.gameService.CreateGame(c.Request.Context(), types.GameType(req.GameType))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"game": game})
}

func (gh *GameHandler) Get(c *gin.Context) {
  gameID, err := uuid.Parse(c.Param("gameID"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
    return
  }
  game, err := gh.gameService.GetGame(c.Request.Context(), gameID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"game": game})
}

func (gh *GameHandler) SaveState(c *gin.Context) {
  gameID, err := uuid.Parse(c.Param("gameID"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
    return
  }
  var req struct {
    GameState map[string]any `json:"game_state"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  game, err := gh.gameService.SaveGameState(c.Request.Context(), gameID, datatypes.JSONMap(req.GameState))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"game": game})
}

func (gh *GameHandler) Complete(c *gin.Context) {
  gameID, err := uuid.Parse(c.Param("gameID"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
    return
  }
  var req struct {
    WinnerID string `json:"winner_id"`
    Points   int    `json:"points"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  winnerID, err := uuid.Parse(req.WinnerID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid winner id"})
    return
  }
  game, err := gh.gameService.CompleteGame(c.Request.Context(), gameID, winnerID, req.Points)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"game": game})
}
