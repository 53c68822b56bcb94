package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maresdigital/brandhub-backend/pkg/config"
	"github.com/maresdigital/brandhub-backend/pkg/db/models"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
)

type fakeRepo struct {
	events []models.OutboxEvent
}

func (f *fakeRepo) FetchUnpublished(limit, maxAttempts int) ([]models.OutboxEvent, error) {
	var out []models.OutboxEvent
	for _, e := range f.events {
		if e.PublishedAt != nil {
			continue
		}
		if maxAttempts > 0 && e.AttemptCount >= maxAttempts {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkPublished(id uuid.UUID) error {
	for i := range f.events {
		if f.events[i].ID == id {
			now := time.Now()
			f.events[i].PublishedAt = &now
			return nil
		}
	}
	return errors.New("event not found")
}

func (f *fakeRepo) MarkFailed(id uuid.UUID, err error) error {
	for i := range f.events {
		if f.events[i].ID == id {
			msg := err.Error()
			f.events[i].AttemptCount++
			f.events[i].LastError = &msg
			return nil
		}
	}
	return errors.New("event not found")
}

type fakePublisher struct {
	messages []*gcppubsub.Message
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	f.messages = append(f.messages, msg)
	return fakeResult{err: f.err}
}

type fakeResult struct {
	err error
}

func (f fakeResult) Get(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "server-id", nil
}

func newTestPublisherService(t *testing.T, repo *fakeRepo, pub *fakePublisher) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Config: &config.Config{Outbox: config.OutboxConfig{
			BatchSize:    10,
			PollInterval: time.Millisecond,
			MaxAttempts:  3,
		}},
		Logger:           logger.New(logger.Options{ServiceName: "test"}),
		Repository:       repo,
		PublisherFactory: func() publisher { return pub },
	})
	require.NoError(t, err)
	return svc
}

func pendingEvent(eventType enums.OutboxEventType) models.OutboxEvent {
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     eventType,
		AggregateType: enums.AggregateQRCode,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{"foo":"bar"}`),
		CreatedAt:     time.Now(),
	}
}

func TestDrainOncePublishesPendingEvents(t *testing.T) {
	repo := &fakeRepo{events: []models.OutboxEvent{
		pendingEvent(enums.EventScanRecorded),
		pendingEvent(enums.EventPagePublished),
	}}
	pub := &fakePublisher{}
	svc := newTestPublisherService(t, repo, pub)

	processed, err := svc.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Len(t, pub.messages, 2)

	for _, e := range repo.events {
		assert.NotNil(t, e.PublishedAt)
	}

	msg := pub.messages[0]
	assert.Equal(t, string(enums.EventScanRecorded), msg.Attributes["event_type"])
	assert.Equal(t, string(enums.AggregateQRCode), msg.Attributes["aggregate_type"])
	assert.JSONEq(t, `{"foo":"bar"}`, string(msg.Data))
}

func TestDrainOnceMarksFailures(t *testing.T) {
	repo := &fakeRepo{events: []models.OutboxEvent{pendingEvent(enums.EventScanRecorded)}}
	pub := &fakePublisher{err: errors.New("topic unavailable")}
	svc := newTestPublisherService(t, repo, pub)

	processed, err := svc.DrainOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, processed)

	event := repo.events[0]
	assert.Nil(t, event.PublishedAt)
	assert.Equal(t, 1, event.AttemptCount)
	require.NotNil(t, event.LastError)
	assert.Contains(t, *event.LastError, "topic unavailable")
}

func TestDrainOnceSkipsExhaustedEvents(t *testing.T) {
	exhausted := pendingEvent(enums.EventScanRecorded)
	exhausted.AttemptCount = 3
	repo := &fakeRepo{events: []models.OutboxEvent{exhausted, pendingEvent(enums.EventPagePublished)}}
	pub := &fakePublisher{}
	svc := newTestPublisherService(t, repo, pub)

	processed, err := svc.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Len(t, pub.messages, 1)
	assert.Nil(t, repo.events[0].PublishedAt)
}

func TestDrainOnceEmptyOutbox(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	svc := newTestPublisherService(t, repo, pub)

	processed, err := svc.DrainOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Empty(t, pub.messages)
}
