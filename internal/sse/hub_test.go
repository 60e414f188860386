package sse

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hearthly/hearthpoints-backend/internal/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestHubDeliversToCoupleChannelInOrder(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	coupleChannel := uuid.New().String()

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, coupleChannel)

	first := SSEMessage{Channel: coupleChannel, Event: SSEEventChoreCompleted, Data: map[string]any{"seq": 1}}
	second := SSEMessage{Channel: coupleChannel, Event: SSEEventAssignmentsReady, Data: map[string]any{"seq": 2}}
	hub.Broadcast(first)
	hub.Broadcast(second)

	gotFirst := recvMessage(t, client.Outbound, time.Second)
	gotSecond := recvMessage(t, client.Outbound, time.Second)
	if gotFirst.Event != SSEEventChoreCompleted {
		t.Fatalf("first event: want=%s got=%s", SSEEventChoreCompleted, gotFirst.Event)
	}
	if gotSecond.Event != SSEEventAssignmentsReady {
		t.Fatalf("second event: want=%s got=%s", SSEEventAssignmentsReady, gotSecond.Event)
	}
}

func TestHubIsolatesChannels(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	coupleOne := uuid.New().String()
	coupleTwo := uuid.New().String()

	clientOne := hub.NewSSEClient(uuid.New())
	hub.AddChannel(clientOne, coupleOne)
	clientTwo := hub.NewSSEClient(uuid.New())
	hub.AddChannel(clientTwo, coupleTwo)

	hub.Broadcast(SSEMessage{Channel: coupleOne, Event: SSEEventChoreCompleted})

	recvMessage(t, clientOne.Outbound, time.Second)
	select {
	case msg := <-clientTwo.Outbound:
		t.Fatalf("couple two received couple one's event: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubCloseClientStopsDelivery(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	coupleChannel := uuid.New().String()
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, coupleChannel)

	hub.CloseClient(client)
	select {
	case _, ok := <-client.Outbound:
		if ok {
			t.Fatalf("outbound should be closed after CloseClient")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for channel close")
	}

	// Broadcasting after close must not panic or deliver.
	hub.Broadcast(SSEMessage{Channel: coupleChannel, Event: SSEEventChoreCompleted})
}
