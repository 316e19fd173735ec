package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"exposure/config"
	"exposure/internal/domain/constants"
	"exposure/internal/domain/entity"
	"exposure/internal/domain/service"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testBatch() *service.CycleEvents {
	subID := uuid.New()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	return &service.CycleEvents{
		RequestID: "req-1",
		CycleID:   "cycle-1",
		Timestamp: ts.Format(time.RFC3339Nano),
		Events: []*entity.Event{{
			ID:             entity.NewEventID(subID, "1", ts),
			SubscriptionID: subID,
			Kind:           entity.KindLocationReporting,
			UserID:         "1",
			Timestamp:      ts,
		}},
	}
}

func TestNewEventPublisher_DefaultsToDiscard(t *testing.T) {
	publisher, err := NewEventPublisher(PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: testLogger(),
	})
	require.NoError(t, err)
	assert.IsType(t, &discardPublisher{}, publisher)
	assert.NoError(t, publisher.PublishCycleEvents(context.Background(), testBatch()))
	assert.NoError(t, publisher.Close())
}

func TestNewEventPublisher_InvalidProviders(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.PubSubConfig
	}{
		{"local without endpoint", &config.PubSubConfig{Provider: constants.PubSubProviderLocal}},
		{"google without project", &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, TopicID: "t"}},
		{"google without topic", &config.PubSubConfig{Provider: constants.PubSubProviderGoogle, ProjectID: "p"}},
		{"unknown", &config.PubSubConfig{Provider: "kafka"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEventPublisher(PublisherParams{
				Lc:     fxtest.NewLifecycle(t),
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: testLogger(),
			})
			assert.Error(t, err)
		})
	}
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	batch := testBatch()

	var got PushMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	lc := fxtest.NewLifecycle(t)
	publisher, err := NewEventPublisher(PublisherParams{
		Lc:     lc,
		Ctx:    context.Background(),
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: server.URL}},
		Logger: testLogger(),
	})
	require.NoError(t, err)

	require.NoError(t, publisher.PublishCycleEvents(context.Background(), batch))
	assert.Equal(t, "cycle-1", got.Message.MessageID)
	assert.Equal(t, "1", got.Message.Attributes["event_count"])

	data, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)
	var decoded service.CycleEvents
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Events, 1)
	assert.Equal(t, batch.Events[0].ID, decoded.Events[0].ID)

	lc.RequireStart().RequireStop()
}

func fastBackOff() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), localPublishAttempts-1)
}

func TestLocalHTTPPublisher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := newLocalHTTPPublisher(server.URL, testLogger(), fastBackOff).PublishCycleEvents(context.Background(), testBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(localPublishAttempts), calls.Load())
}

func TestLocalHTTPPublisher_RecoversAfterServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newLocalHTTPPublisher(server.URL, testLogger(), fastBackOff).PublishCycleEvents(context.Background(), testBatch())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLocalHTTPPublisher_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := newLocalHTTPPublisher(server.URL, testLogger(), fastBackOff).PublishCycleEvents(context.Background(), testBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), calls.Load())
}
