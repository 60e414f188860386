package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/hearthly/hearthpoints-backend/internal/services"
)

type TalentHandler struct {
  talentService services.TalentService
}

func NewTalentHandler(talentService services.TalentService) *TalentHandler {
  return &TalentHandler{talentService: talentService}
}

func (th *TalentHandler) GetTree(c *gin.Context) {
  tree, err := th.talentService.GetTree(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"tree": tree})
}

func (th *TalentHandler) SubmitBuild(c *gin.Context) {
  var req struct {
    NodeIDs []string `json:"node_ids"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  tree, err := th.talentService.SubmitBuild(c.Request.Context(), req.NodeIDs)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"tree": tree})
}
