package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/hearthly/hearthpoints-backend/internal/services"
)

type MessageHandler struct {
  softenerService services.SoftenerService
}

func NewMessageHandler(softenerService services.SoftenerService) *MessageHandler {
  return &MessageHandler{softenerService: softenerService}
}

func (mh *MessageHandler) Soften(c *gin.Context) {
  var req struct {
    Message string `json:"message"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  softened, err := mh.softenerService.Soften(c.Request.Context(), req.Message)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"softened": softened})
}
