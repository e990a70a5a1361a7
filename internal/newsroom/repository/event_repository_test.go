package repository

import (
	"context"
	"testing"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture(id, reporterID string, createdTime int64) *entity.Event {
	return &entity.Event{
		ID:          id,
		ReporterID:  reporterID,
		Title:       "Title " + id,
		CreatedTime: createdTime,
		UpdatedTime: createdTime,
		Facts:       []string{"fact one"},
	}
}

func TestEventRepositorySaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewEventRepository(store, NewReporterRepository(store))

	event := newEventFixture("event_1", "reporter_1", 1000)
	event.Where = "downtown"
	event.When = "this morning"
	require.NoError(t, repo.Save(ctx, "u1", event))

	got, err := repo.Get(ctx, "u1", "event_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, event.Title, got.Title)
	assert.Equal(t, event.Facts, got.Facts)
	assert.Equal(t, "downtown", got.Where)
	assert.Equal(t, "this morning", got.When)
	assert.Equal(t, int64(1000), got.CreatedTime)
	assert.Equal(t, int64(1000), got.UpdatedTime)
}

func TestEventRepositoryUpdateFacts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewEventRepository(store, NewReporterRepository(store))

	event := newEventFixture("event_2", "reporter_1", 1000)
	require.NoError(t, repo.Save(ctx, "u1", event))

	grown := append(append([]string{}, event.Facts...), "fact two", "fact three")
	require.NoError(t, repo.UpdateFacts(ctx, "u1", "event_2", grown, 2000))

	got, err := repo.Get(ctx, "u1", "event_2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"fact one", "fact two", "fact three"}, got.Facts)
	assert.Equal(t, int64(2000), got.UpdatedTime)
	assert.Equal(t, int64(1000), got.CreatedTime)
	assert.Greater(t, got.UpdatedTime, int64(1000))
}

func TestEventRepositoryGetByReporterNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewEventRepository(store, NewReporterRepository(store))

	for i, id := range []string{"event_a", "event_b", "event_c"} {
		require.NoError(t, repo.Save(ctx, "u1", newEventFixture(id, "reporter_1", int64(100+i))))
	}

	events, err := repo.GetByReporter(ctx, "u1", "reporter_1", 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "event_c", events[0].ID)
	assert.Equal(t, "event_b", events[1].ID)
}

func TestEventRepositoryGetLatestUpdated(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	reporterRepo := NewReporterRepository(store)
	repo := NewEventRepository(store, reporterRepo)

	// GetLatestUpdated walks the reporter set, so the reporter must exist.
	require.NoError(t, reporterRepo.Save(ctx, "u1", &entity.Reporter{ID: "reporter_1", Prompt: "p", Enabled: true}))

	older := newEventFixture("event_old", "reporter_1", 100)
	newer := newEventFixture("event_new", "reporter_1", 200)
	require.NoError(t, repo.Save(ctx, "u1", older))
	require.NoError(t, repo.Save(ctx, "u1", newer))

	// Appending facts to the older event makes it the most recently updated.
	require.NoError(t, repo.UpdateFacts(ctx, "u1", "event_old", []string{"fact one", "update"}, 900))

	events, err := repo.GetLatestUpdated(ctx, "u1", 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "event_old", events[0].ID)
}

func TestEventRepositoryUpdateFactsMissingEvent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewEventRepository(store, NewReporterRepository(store))

	err := repo.UpdateFacts(ctx, "u1", "event_ghost", []string{"fact"}, 100)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
