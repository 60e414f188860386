package handlers

import (
  "io"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/hearthly/hearthpoints-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  me, err := uh.userService.GetMe(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"me": me})
}

// 5 MiB cap on avatar uploads.
const maxAvatarUploadBytes = 5 << 20

func (uh *UserHandler) UploadAvatar(c *gin.Context) {
  fileHeader, err := c.FormFile("avatar")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
    return
  }
  if fileHeader.Size > maxAvatarUploadBytes {
    c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file too large"})
    return
  }
  file, err := fileHeader.Open()
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "could not read avatar file"})
    return
  }
  defer file.Close()
  raw, err := io.ReadAll(io.LimitReader(file, maxAvatarUploadBytes+1))
  if err != nil || len(raw) > maxAvatarUploadBytes {
    c.JSON(http.StatusBadRequest, gin.H{"error": "could not read avatar file"})
    return
  }

  user, err := uh.userService.UploadAvatar(c.Request.Context(), raw)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"user": user})
}
