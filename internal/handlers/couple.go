package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/hearthly/hearthpoints-backend/internal/services"
)

type CoupleHandler struct {
  coupleService services.CoupleService
}

func NewCoupleHandler(coupleService services.CoupleService) *CoupleHandler {
  return &CoupleHandler{coupleService: coupleService}
}

func (ch *CoupleHandler) Create(c *gin.Context) {
  couple, err := ch.coupleService.CreateCouple(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"couple": couple})
}

func (ch *CoupleHandler) Join(c *gin.Context) {
  var req struct {
    InviteCode string `json:"invite_code"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  couple, err := ch.coupleService.JoinCouple(c.Request.Context(), req.InviteCode)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"couple": couple})
}

func (ch *CoupleHandler) Get(c *gin.Context) {
  couple, members, err := ch.coupleService.GetCouple(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"couple": couple, "members": members})
}

func (ch *CoupleHandler) GetSettings(c *gin.Context) {
  settings, err := ch.coupleService.GetSettings(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (ch *CoupleHandler) UpdateSettings(c *gin.Context) {
  var req struct {
    EndOfDayTime string `json:"end_of_day_time"`
    Timezone     string `json:"timezone"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  settings, err := ch.coupleService.UpdateSettings(c.Request.Context(), req.EndOfDayTime, req.Timezone)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"settings": settings})
}
