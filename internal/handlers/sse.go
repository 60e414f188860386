package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/repos"
  "github.com/hearthly/hearthpoints-backend/internal/requestdata"
  "github.com/hearthly/hearthpoints-backend/internal/sse"
)

type SSEHandler struct {
  log      *logger.Logger
  hub      *sse.SSEHub
  userRepo repos.UserRepo
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub, userRepo repos.UserRepo) *SSEHandler {
  handlerLog := log.With("handler", "SSEHandler")
  return &SSEHandler{log: handlerLog, hub: hub, userRepo: userRepo}
}

// Stream opens the event stream and subscribes the connection to the
// caller's couple channel. The connection holds until the client goes away.
func (sh *SSEHandler) Stream(c *gin.Context) {
  ctx := c.Request.Context()
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing request data"})
    return
  }

  users, err := sh.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil || len(users) == 0 {
    c.JSON(http.StatusBadRequest, gin.H{"error": "failed to load user"})
    return
  }
  user := users[0]
  if user.CoupleID == nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "user does not belong to a couple"})
    return
  }

  client := sh.hub.NewSSEClient(user.ID)
  sh.hub.AddChannel(client, user.CoupleID.String())
  defer sh.hub.CloseClient(client)

  sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
