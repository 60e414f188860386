package services

import (
  "context"

  "github.com/google/uuid"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/realtime/bus"
  "github.com/hearthly/hearthpoints-backend/internal/sse"
)

// NotifierService pushes couple-scoped events to live connections. Local
// clients get them through the hub; the optional redis bus carries them to
// other instances. Everything here is fire-and-forget.
type NotifierService interface {
  ChoreCompleted(ctx context.Context, coupleID uuid.UUID, payload any)
  AssignmentsReady(ctx context.Context, coupleID uuid.UUID, payload any)
  PartnerJoined(ctx context.Context, coupleID uuid.UUID, payload any)
  TalentsUpdated(ctx context.Context, coupleID uuid.UUID, payload any)
  GameCreated(ctx context.Context, coupleID uuid.UUID, payload any)
}

type notifierService struct {
  log *logger.Logger
  hub *sse.SSEHub
  bus bus.Bus
}

func NewNotifierService(log *logger.Logger, hub *sse.SSEHub, eventBus bus.Bus) NotifierService {
  serviceLog := log.With("service", "NotifierService")
  return &notifierService{log: serviceLog, hub: hub, bus: eventBus}
}

func (ns *notifierService) emit(ctx context.Context, coupleID uuid.UUID, event sse.SSEEvent, payload any) {
  msg := sse.SSEMessage{
    Channel: coupleID.String(),
    Event:   event,
    Data:    payload,
  }
  ns.hub.Broadcast(msg)
  if ns.bus != nil {
    if err := ns.bus.Publish(ctx, msg); err != nil {
      ns.log.Warn("Failed to publish event to bus", "event", event, "error", err)
    }
  }
}

func (ns *notifierService) ChoreCompleted(ctx context.Context, coupleID uuid.UUID, payload any) {
  ns.emit(ctx, coupleID, sse.SSEEventChoreCompleted, payload)
}

func (ns *notifierService) AssignmentsReady(ctx context.Context, coupleID uuid.UUID, payload any) {
  ns.emit(ctx, coupleID, sse.SSEEventAssignmentsReady, payload)
}

func (ns *notifierService) PartnerJoined(ctx context.Context, coupleID uuid.UUID, payload any) {
  ns.emit(ctx, coupleID, sse.SSEEventPartnerJoined, payload)
}

func (ns *notifierService) TalentsUpdated(ctx context.Context, coupleID uuid.UUID, payload any) {
  ns.emit(ctx, coupleID, sse.SSEEventTalentsUpdated, payload)
}

func (ns *notifierService) GameCreated(ctx context.Context, coupleID uuid.UUID, payload any) {
  ns.emit(ctx, coupleID, sse.SSEEventGameCreated, payload)
}
