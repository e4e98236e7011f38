package consumer

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/exerciseresolver/internal/catalog"
	"example.com/exerciseresolver/internal/domain"
	"example.com/exerciseresolver/internal/events"
	"example.com/exerciseresolver/internal/pipeline"
	"example.com/exerciseresolver/internal/video"
)

// stubProvider returns the same short tutorial for every search.
type stubProvider struct{}

func (stubProvider) Search(ctx context.Context, query string, maxResults int) ([]video.SearchResult, error) {
	return []video.SearchResult{{ID: "vid-1", Title: query + " tutorial", ThumbnailURL: "https://img/vid-1"}}, nil
}

func (stubProvider) VideoDetails(ctx context.Context, ids []string) ([]video.Details, error) {
	out := make([]video.Details, len(ids))
	for i, id := range ids {
		out[i] = video.Details{ID: id, Duration: "PT2M", ViewCount: 50000, LikeCount: 2000}
	}
	return out, nil
}

func newHandlerFixture() (*PlanHandler, *catalog.MemoryStore) {
	store := catalog.NewMemoryStore()
	quiet := log.New(io.Discard, "", 0)
	resolver := domain.NewResolver(store, domain.WithResolverLogger(quiet))
	selector := video.NewSelector(stubProvider{}, video.WithCallDelay(0), video.WithLogger(quiet))
	pipe := pipeline.New(store, resolver, selector, pipeline.WithLogger(quiet), pipeline.WithBatchDelay(0))
	handler := NewPlanHandler(pipe)
	handler.logger = quiet
	return handler, store
}

func planMessage(t *testing.T, evt events.PlanGenerated) Message {
	t.Helper()
	payload, err := json.Marshal(evt)
	require.NoError(t, err)
	return Message{
		Topic:     "plan_events",
		Payload:   payload,
		Timestamp: time.Now().UTC(),
		Headers:   map[string]string{"event_type": "plan.generated"},
	}
}

func TestPlanHandlerResolvesAndPopulates(t *testing.T) {
	handler, store := newHandlerFixture()

	evt := events.PlanGenerated{
		PlanID:   "plan-42",
		TenantID: "tenant",
		UserID:   "user",
		Exercises: []events.PlannedExercise{
			{Name: "Goblet Squat", Slot: 0},
			{Name: "  ", Slot: 1},
			{Name: "Goblet Squat", Slot: 2},
		},
		GeneratedAt: time.Now().UTC(),
	}

	err := handler.Handle(context.Background(), planMessage(t, evt))
	require.NoError(t, err)

	listed, err := store.ListExercises(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Goblet Squat", listed[0].Name)
	require.Equal(t, "vid-1", listed[0].VideoID)
}

func TestPlanHandlerIgnoresOtherEventTypes(t *testing.T) {
	handler, store := newHandlerFixture()

	msg := Message{
		Topic:   "plan_events",
		Payload: json.RawMessage(`{"plan_id":"plan-1"}`),
		Headers: map[string]string{"event_type": "plan.deleted"},
	}
	err := handler.Handle(context.Background(), msg)
	require.NoError(t, err)

	listed, err := store.ListExercises(context.Background())
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestPlanHandlerStripsSchemaRegistryFraming(t *testing.T) {
	handler, store := newHandlerFixture()

	evt := events.PlanGenerated{
		PlanID:    "plan-7",
		Exercises: []events.PlannedExercise{{Name: "Jogging", Slot: 0}},
	}
	payload, err := json.Marshal(evt)
	require.NoError(t, err)
	framed := append([]byte{0x00, 0x00, 0x00, 0x00, 0x01}, payload...)

	msg := Message{
		Topic:   "plan_events",
		Payload: framed,
		Headers: map[string]string{"event_type": "plan.generated"},
	}
	require.NoError(t, handler.Handle(context.Background(), msg))

	listed, err := store.ListExercises(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "jogging", listed[0].Slug)
}

func TestPlanHandlerRejectsMalformedPayload(t *testing.T) {
	handler, _ := newHandlerFixture()

	msg := Message{
		Topic:   "plan_events",
		Payload: json.RawMessage(`{"plan_id":`),
		Headers: map[string]string{"event_type": "plan.generated"},
	}
	require.Error(t, handler.Handle(context.Background(), msg))
}
