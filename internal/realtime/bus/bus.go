package bus

import (
	"context"

	"github.com/hearthly/hearthpoints-backend/internal/sse"
)

// Bus fans SSE messages out across server instances. The local hub only
// reaches clients connected to this process; the bus reaches the rest.
type Bus interface {
	Publish(ctx context.Context, msg sse.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m sse.SSEMessage)) error
	Close() error
}
