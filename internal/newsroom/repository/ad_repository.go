package repository

import (
	"context"
	"fmt"
	"sort"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
)

// AdRepository persists tenant-scoped ad entries.
type AdRepository interface {
	Save(ctx context.Context, userID string, ad *entity.AdEntry) error
	Get(ctx context.Context, userID, adID string) (*entity.AdEntry, error)
	GetAll(ctx context.Context, userID string) ([]*entity.AdEntry, error)
	GetMostRecent(ctx context.Context, userID string) (*entity.AdEntry, error)
	Delete(ctx context.Context, userID, adID string) error
}

type adRepository struct {
	store storage.Store
}

// NewAdRepository creates a new ad repository.
func NewAdRepository(store storage.Store) AdRepository {
	return &adRepository{store: store}
}

func (r *adRepository) Save(ctx context.Context, userID string, ad *entity.AdEntry) error {
	pairs := []storage.KV{
		{Key: keyAdName(userID, ad.ID), Value: ad.Name},
		{Key: keyAdBidPrice(userID, ad.ID), Value: formatFloat(ad.BidPrice)},
		{Key: keyAdPromptContent(userID, ad.ID), Value: ad.PromptContent},
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to save ad %s: %w", ad.ID, err)
	}
	if err := r.store.SAdd(ctx, keyAds(userID), ad.ID); err != nil {
		return fmt.Errorf("failed to register ad %s: %w", ad.ID, err)
	}
	return nil
}

// Get returns nil when the ad does not exist (no name or no bid price).
func (r *adRepository) Get(ctx context.Context, userID, adID string) (*entity.AdEntry, error) {
	name, err := r.store.Get(ctx, keyAdName(userID, adID))
	if err != nil {
		return nil, fmt.Errorf("failed to get ad %s: %w", adID, err)
	}
	bidPrice, err := r.store.Get(ctx, keyAdBidPrice(userID, adID))
	if err != nil {
		return nil, fmt.Errorf("failed to get ad %s: %w", adID, err)
	}
	if name == "" || bidPrice == "" {
		return nil, nil
	}
	promptContent, _ := r.store.Get(ctx, keyAdPromptContent(userID, adID))

	return &entity.AdEntry{
		ID:            adID,
		UserID:        userID,
		Name:          name,
		BidPrice:      parseFloatOr(bidPrice, 0),
		PromptContent: promptContent,
	}, nil
}

func (r *adRepository) GetAll(ctx context.Context, userID string) ([]*entity.AdEntry, error) {
	ids, err := r.store.SMembers(ctx, keyAds(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	ads := make([]*entity.AdEntry, 0, len(ids))
	for _, id := range ids {
		ad, err := r.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if ad != nil {
			ads = append(ads, ad)
		}
	}
	return ads, nil
}

// GetMostRecent returns the ad with the greatest id, or nil when the tenant
// has no ads. Ids embed the creation timestamp so lexicographic order
// matches creation order.
func (r *adRepository) GetMostRecent(ctx context.Context, userID string) (*entity.AdEntry, error) {
	ids, err := r.store.SMembers(ctx, keyAds(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)
	return r.Get(ctx, userID, ids[len(ids)-1])
}

func (r *adRepository) Delete(ctx context.Context, userID, adID string) error {
	if err := r.store.SRem(ctx, keyAds(userID), adID); err != nil {
		return fmt.Errorf("failed to unregister ad %s: %w", adID, err)
	}
	err := r.store.Del(ctx,
		keyAdName(userID, adID),
		keyAdBidPrice(userID, adID),
		keyAdPromptContent(userID, adID),
	)
	if err != nil {
		return fmt.Errorf("failed to delete ad %s: %w", adID, err)
	}
	return nil
}
