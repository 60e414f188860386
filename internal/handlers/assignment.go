package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/hearthly/hearthpoints-backend/internal/services"
)

type AssignmentHandler struct {
  assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService) *AssignmentHandler {
  return &AssignmentHandler{assignmentService: assignmentService}
}

func (ah *AssignmentHandler) GetDailyBoard(c *gin.Context) {
  board, err := ah.assignmentService.GetDailyBoard(c.Request.Context(), dateOrToday(c))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"board": board})
}
