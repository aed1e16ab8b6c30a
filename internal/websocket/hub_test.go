package websocket

import (
	"encoding/json"
	"sync"
	"testing"

	"ai-sportscast-be/internal/model"
	"ai-sportscast-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient skips the network; hub delivery only touches the Send
// channel.
func newTestClient(hub *Hub, buffer int) *Client {
	c := NewClient(hub, nil)
	c.Send = make(chan []byte, buffer)
	return c
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	c := newTestClient(hub, 1)

	hub.Register(c)
	assert.Equal(t, 1, hub.Count())

	hub.Unregister(c)
	assert.Equal(t, 0, hub.Count())

	// second unregister is a no-op, not a double close
	hub.Unregister(c)
	assert.Equal(t, 0, hub.Count())
}

func TestBroadcastIsolatesFailedClient(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())

	healthy1 := newTestClient(hub, 4)
	stuck := newTestClient(hub, 1)
	healthy2 := newTestClient(hub, 4)
	hub.Register(healthy1)
	hub.Register(stuck)
	hub.Register(healthy2)

	// fill the stuck client's buffer so the next send fails
	stuck.Send <- []byte("backlog")

	delivered := hub.Broadcast(model.NewEvent(model.EventPushCommentary, map[string]interface{}{
		"content": "update",
	}))

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 2, hub.Count(), "failed client should be pruned")

	var event model.Event
	require.NoError(t, json.Unmarshal(<-healthy1.Send, &event))
	assert.Equal(t, model.EventPushCommentary, event.Type)
	assert.Equal(t, "update", event.Data["content"])

	select {
	case raw, ok := <-healthy2.Send:
		require.True(t, ok)
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, model.EventPushCommentary, event.Type)
	default:
		t.Fatal("second healthy client did not receive the broadcast")
	}
}

func TestBroadcastDeliversToEveryClient(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	clients := make([]*Client, 5)
	for i := range clients {
		clients[i] = newTestClient(hub, 2)
		hub.Register(clients[i])
	}

	delivered := hub.Broadcast(model.NewEvent(model.EventTranscriptUpdate, nil))
	assert.Equal(t, 5, delivered)
	for _, c := range clients {
		assert.Len(t, c.Send, 1)
	}
}

func TestSendToPrunesFullBuffer(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	c := newTestClient(hub, 1)
	hub.Register(c)

	c.Send <- []byte("backlog")

	err := hub.SendTo(c, model.NewEvent(model.EventPauseVideo, nil))
	assert.ErrorIs(t, err, ErrClientGone)
	assert.Equal(t, 0, hub.Count())
}

func TestSendToConcurrentWithPrune(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())

	// A stuck viewer can be pruned by a broadcast while a deferred
	// SendTo for the same connection is still in flight; neither path
	// may panic on the other's close.
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		c := newTestClient(hub, 1)
		hub.Register(c)
		c.Send <- []byte("backlog")

		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.SendTo(c, model.NewEvent(model.EventProcessingComplete, nil))
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast(model.NewEvent(model.EventPushCommentary, nil))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.Count(), "every stuck client ends up pruned exactly once")
}

func TestSendToUnregisteredClient(t *testing.T) {
	hub := NewHub(logger.NewNopLogger())
	c := newTestClient(hub, 1)

	err := hub.SendTo(c, model.NewEvent(model.EventPauseVideo, nil))
	assert.ErrorIs(t, err, ErrClientGone)
}
