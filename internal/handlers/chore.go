package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/hearthly/hearthpoints-backend/internal/services"
  "github.com/hearthly/hearthpoints-backend/internal/types"
)

type ChoreHandler struct {
  choreService services.ChoreService
}

func NewChoreHandler(choreService services.ChoreService) *ChoreHandler {
  return &ChoreHandler{choreService: choreService}
}

// dateOrToday defaults the date query param to today's UTC date.
func dateOrToday(c *gin.Context) string {
  if date := c.Query("date"); date != "" {
    return date
  }
  return time.Now().UTC().Format("2006-01-02")
}

func (ch *ChoreHandler) List(c *gin.Context) {
  chores, err := ch.choreService.ListChores(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"chores": chores})
}

func (ch *ChoreHandler) Create(c *gin.Context) {
  var req struct {
    Room         string `json:"room"`
    Title        string `json:"title"`
    Description  string `json:"description"`
    Difficulty   string `json:"difficulty"`
    Category     string `json:"category"`
    TimerMinutes int    `json:"timer_minutes"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  chore, err := ch.choreService.CreateChore(c.Request.Context(), services.CreateChoreInput{
    Room:         types.Room(req.Room),
    Title:        req.Title,
    Description:  req.Description,
    Difficulty:   types.Difficulty(req.Difficulty),
    Category:     types.ChoreCategory(req.Category),
    TimerMinutes: req.TimerMinutes,
  })
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"chore": chore})
}

func (ch *ChoreHandler) Complete(c *gin.Context) {
  choreID, err := uuid.Parse(c.Param("choreID"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chore id"})
    return
  }
  var req struct {
    Date string `json:"date"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if req.Date == "" {
    req.Date = time.Now().UTC().Format("2006-01-02")
  }
  result, err := ch.choreService.CompleteChore(c.Request.Context(), choreID, req.Date)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"result": result})
}

func (ch *ChoreHandler) ListCompletions(c *gin.Context) {
  completions, err := ch.choreService.ListCompletions(c.Request.Context(), dateOrToday(c))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"completions": completions})
}
