package repository

import (
	"context"
	"fmt"
	"sort"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
)

// EventRepository persists tenant-scoped events. Events are indexed per
// reporter in a sorted set scored by creation time.
type EventRepository interface {
	Save(ctx context.Context, userID string, event *entity.Event) error
	Get(ctx context.Context, userID, eventID string) (*entity.Event, error)
	GetByReporter(ctx context.Context, userID, reporterID string, limit int) ([]*entity.Event, error)
	GetAll(ctx context.Context, userID string, limit int) ([]*entity.Event, error)
	GetLatestUpdated(ctx context.Context, userID string, limit int) ([]*entity.Event, error)
	UpdateFacts(ctx context.Context, userID, eventID string, facts []string, updatedTime int64) error
}

type eventRepository struct {
	store        storage.Store
	reporterRepo ReporterRepository
}

// NewEventRepository creates a new event repository.
func NewEventRepository(store storage.Store, reporterRepo ReporterRepository) EventRepository {
	return &eventRepository{store: store, reporterRepo: reporterRepo}
}

func (r *eventRepository) Save(ctx context.Context, userID string, event *entity.Event) error {
	pairs := []storage.KV{
		{Key: keyEventTitle(userID, event.ID), Value: event.Title},
		{Key: keyEventCreatedTime(userID, event.ID), Value: formatInt64(event.CreatedTime)},
		{Key: keyEventUpdatedTime(userID, event.ID), Value: formatInt64(event.UpdatedTime)},
		{Key: keyEventFacts(userID, event.ID), Value: marshalList(event.Facts)},
		{Key: keyEventReporterID(userID, event.ID), Value: event.ReporterID},
	}
	if event.Where != "" {
		pairs = append(pairs, storage.KV{Key: keyEventWhere(userID, event.ID), Value: event.Where})
	}
	if event.When != "" {
		pairs = append(pairs, storage.KV{Key: keyEventWhen(userID, event.ID), Value: event.When})
	}
	if event.MessageIDs != nil {
		pairs = append(pairs, storage.KV{Key: keyEventMessageIDs(userID, event.ID), Value: marshalList(event.MessageIDs)})
	}
	if event.MessageTexts != nil {
		pairs = append(pairs, storage.KV{Key: keyEventMessageTexts(userID, event.ID), Value: marshalList(event.MessageTexts)})
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to save event %s: %w", event.ID, err)
	}
	err := r.store.ZAdd(ctx, keyEventsByReporter(userID, event.ReporterID),
		float64(event.CreatedTime), event.ID)
	if err != nil {
		return fmt.Errorf("failed to index event %s: %w", event.ID, err)
	}
	return nil
}

// Get returns nil when any required field (title, times, facts, reporter
// id) is missing.
func (r *eventRepository) Get(ctx context.Context, userID, eventID string) (*entity.Event, error) {
	title, err := r.store.Get(ctx, keyEventTitle(userID, eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	createdTime, err := r.store.Get(ctx, keyEventCreatedTime(userID, eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	updatedTime, err := r.store.Get(ctx, keyEventUpdatedTime(userID, eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	facts, err := r.store.Get(ctx, keyEventFacts(userID, eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	reporterID, err := r.store.Get(ctx, keyEventReporterID(userID, eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	if title == "" || createdTime == "" || updatedTime == "" || facts == "" || reporterID == "" {
		return nil, nil
	}

	where, _ := r.store.Get(ctx, keyEventWhere(userID, eventID))
	when, _ := r.store.Get(ctx, keyEventWhen(userID, eventID))
	messageIDs, _ := r.store.Get(ctx, keyEventMessageIDs(userID, eventID))
	messageTexts, _ := r.store.Get(ctx, keyEventMessageTexts(userID, eventID))

	return &entity.Event{
		ID:           eventID,
		ReporterID:   reporterID,
		Title:        title,
		CreatedTime:  parseInt64Or(createdTime, 0),
		UpdatedTime:  parseInt64Or(updatedTime, 0),
		Facts:        unmarshalStrings(facts),
		Where:        where,
		When:         when,
		MessageIDs:   unmarshalInts(messageIDs),
		MessageTexts: unmarshalStrings(messageTexts),
	}, nil
}

// GetByReporter returns the reporter's events newest first by creation
// time, up to limit. A limit <= 0 returns all.
func (r *eventRepository) GetByReporter(ctx context.Context, userID, reporterID string, limit int) ([]*entity.Event, error) {
	key := keyEventsByReporter(userID, reporterID)
	var ids []string
	var err error
	if limit <= 0 {
		ids, err = r.store.ZRangeByScore(ctx, key, 0, float64(1<<62))
		if err == nil {
			for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	} else {
		ids, err = r.store.ZRevRangeN(ctx, key, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read event index: %w", err)
	}

	events := make([]*entity.Event, 0, len(ids))
	for _, id := range ids {
		event, err := r.Get(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if event != nil {
			events = append(events, event)
		}
	}
	return events, nil
}

func (r *eventRepository) GetAll(ctx context.Context, userID string, limit int) ([]*entity.Event, error) {
	reporters, err := r.reporterRepo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	var all []*entity.Event
	for _, reporter := range reporters {
		events, err := r.GetByReporter(ctx, userID, reporter.ID, limit)
		if err != nil {
			return nil, err
		}
		all = append(all, events...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedTime > all[j].CreatedTime
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// GetLatestUpdated returns events across all reporters ordered by update
// time, most recently updated first.
func (r *eventRepository) GetLatestUpdated(ctx context.Context, userID string, limit int) ([]*entity.Event, error) {
	all, err := r.GetAll(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedTime > all[j].UpdatedTime
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// UpdateFacts replaces the event's fact list and bumps its update time in
// one atomic write. Fails with ErrNotFound when the event does not exist.
func (r *eventRepository) UpdateFacts(ctx context.Context, userID, eventID string, facts []string, updatedTime int64) error {
	existing, err := r.Get(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("event %s: %w", eventID, entity.ErrNotFound)
	}

	pairs := []storage.KV{
		{Key: keyEventFacts(userID, eventID), Value: marshalList(facts)},
		{Key: keyEventUpdatedTime(userID, eventID), Value: formatInt64(updatedTime)},
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to update event %s facts: %w", eventID, err)
	}
	return nil
}
