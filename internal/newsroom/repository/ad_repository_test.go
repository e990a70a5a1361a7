package repository

import (
	"context"
	"testing"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdRepositorySaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewAdRepository(storage.NewMemoryStore())

	ad := &entity.AdEntry{
		ID:            "ad_1700000000000_aa0001",
		UserID:        "u1",
		Name:          "Soda",
		BidPrice:      1.5,
		PromptContent: "Mention the refreshing taste of Soda.",
	}
	require.NoError(t, repo.Save(ctx, "u1", ad))

	got, err := repo.Get(ctx, "u1", ad.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Soda", got.Name)
	assert.Equal(t, 1.5, got.BidPrice)
	assert.Equal(t, ad.PromptContent, got.PromptContent)
}

func TestAdRepositoryGetMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewAdRepository(storage.NewMemoryStore())

	got, err := repo.Get(ctx, "u1", "ad_none")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdRepositoryGetMostRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewAdRepository(storage.NewMemoryStore())

	// Ids embed a millisecond timestamp, so the greatest id is the newest.
	older := &entity.AdEntry{ID: "ad_1700000000000_aa0001", UserID: "u1", Name: "Old", BidPrice: 1}
	newer := &entity.AdEntry{ID: "ad_1700000099000_aa0002", UserID: "u1", Name: "New", BidPrice: 2}
	require.NoError(t, repo.Save(ctx, "u1", older))
	require.NoError(t, repo.Save(ctx, "u1", newer))

	got, err := repo.GetMostRecent(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "New", got.Name)
}

func TestAdRepositoryGetMostRecentEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewAdRepository(storage.NewMemoryStore())

	got, err := repo.GetMostRecent(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewAdRepository(storage.NewMemoryStore())

	ad := &entity.AdEntry{ID: "ad_1700000000000_aa0001", UserID: "u1", Name: "Gone", BidPrice: 1}
	require.NoError(t, repo.Save(ctx, "u1", ad))
	require.NoError(t, repo.Delete(ctx, "u1", ad.ID))

	got, err := repo.Get(ctx, "u1", ad.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ads, err := repo.GetAll(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ads)
}
