package services

import (
  "context"
  "fmt"

  "github.com/hearthly/hearthpoints-backend/internal/logger"
  "github.com/hearthly/hearthpoints-backend/internal/normalization"
)

// SoftenerService rewrites a blunt message into a kinder one before it
// reaches the partner. Best-effort: when the model is unavailable the
// caller falls back to sending the original text.
type SoftenerService interface {
  Soften(ctx context.Context, message string) (string, error)
}

type softenerService struct {
  log    *logger.Logger
  client OpenAIClient
}

func NewSoftenerService(log *logger.Logger, client OpenAIClient) SoftenerService {
  serviceLog := log.With("service", "SoftenerService")
  return &softenerService{log: serviceLog, client: client}
}

const softenerSystemPrompt = "You help couples communicate about household chores. " +
  "Rewrite the user's message so it keeps its meaning but sounds warm, kind and " +
  "non-accusatory. Keep it short. Reply in the same language as the input."

var softenerSchema = map[string]any{
  "type": "object",
  "properties": map[string]any{
    "softened": map[string]any{"type": "string"},
  },
  "required":             []string{"softened"},
  "additionalProperties": false,
}

func (ss *softenerService) Soften(ctx context.Context, message string) (string, error) {
  message = normalization.ParseFreeText(message)
  if message == "" {
    return "", fmt.Errorf("message is empty")
  }
  if ss.client == nil {
    return "", fmt.Errorf("softener is not configured")
  }

  obj, err := ss.client.GenerateJSON(ctx, softenerSystemPrompt, message, "softened_message", softenerSchema)
  if err != nil {
    ss.log.Warn("Softening failed", "error", err)
    return "", fmt.Errorf("soften message: %w", err)
  }
  softened, _ := obj["softened"].(string)
  if softened == "" {
    return "", fmt.Errorf("model returned no softened text")
  }
  return softened, nil
}
