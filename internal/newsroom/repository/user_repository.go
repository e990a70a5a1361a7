package repository

import (
	"context"
	"fmt"
	"time"

	"golang-ai-newsroom/internal/entity"
	"golang-ai-newsroom/internal/newsroom/storage"
	"golang-ai-newsroom/pkg/utils"
)

// UserRepository persists the global user directory and per-tenant AI
// endpoint configuration.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, userID string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]*entity.User, error)
	UpdateLastLogin(ctx context.Context, userID string, timestamp int64) error
	Delete(ctx context.Context, userID string) error

	GetAIConfig(ctx context.Context, userID string) (*entity.AIConfig, error)
	UpdateAIConfig(ctx context.Context, userID string, cfg *entity.AIConfig) error
}

type userRepository struct {
	store storage.Store
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store storage.Store) UserRepository {
	return &userRepository{store: store}
}

// Create registers a new user. The email must be unique across all users;
// a second registration with the same email fails with ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	existing, err := r.store.Get(ctx, keyUserByEmail(user.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to check email %s: %w", user.Email, err)
	}
	if existing != "" {
		return nil, entity.ErrDuplicateEmail
	}

	created := *user
	created.ID = utils.GenerateID("user")
	created.CreatedAt = time.Now().UnixMilli()
	created.LastLoginAt = 0

	pairs := []storage.KV{
		{Key: keyUserEmail(created.ID), Value: created.Email},
		{Key: keyUserPasswordHash(created.ID), Value: created.PasswordHash},
		{Key: keyUserRole(created.ID), Value: string(created.Role)},
		{Key: keyUserCreatedAt(created.ID), Value: formatInt64(created.CreatedAt)},
		{Key: keyUserHasReader(created.ID), Value: formatBool(created.HasReader)},
		{Key: keyUserHasReporter(created.ID), Value: formatBool(created.HasReporter)},
		{Key: keyUserHasEditor(created.ID), Value: formatBool(created.HasEditor)},
		{Key: keyUserByEmail(created.Email), Value: created.ID},
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := r.store.SAdd(ctx, keyUsers, created.ID); err != nil {
		return nil, fmt.Errorf("failed to register user %s: %w", created.ID, err)
	}
	return &created, nil
}

// GetByID returns nil when the user does not exist.
func (r *userRepository) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	email, err := r.store.Get(ctx, keyUserEmail(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	passwordHash, err := r.store.Get(ctx, keyUserPasswordHash(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	role, err := r.store.Get(ctx, keyUserRole(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	createdAt, err := r.store.Get(ctx, keyUserCreatedAt(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if email == "" || passwordHash == "" || role == "" || createdAt == "" {
		return nil, nil
	}

	lastLoginAt, _ := r.store.Get(ctx, keyUserLastLoginAt(userID))
	hasReader, _ := r.store.Get(ctx, keyUserHasReader(userID))
	hasReporter, _ := r.store.Get(ctx, keyUserHasReporter(userID))
	hasEditor, _ := r.store.Get(ctx, keyUserHasEditor(userID))

	return &entity.User{
		ID:           userID,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         entity.Role(role),
		CreatedAt:    parseInt64Or(createdAt, 0),
		LastLoginAt:  parseInt64Or(lastLoginAt, 0),
		HasReader:    hasReader == "true",
		HasReporter:  hasReporter == "true",
		HasEditor:    hasEditor == "true",
	}, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	userID, err := r.store.Get(ctx, keyUserByEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up email %s: %w", email, err)
	}
	if userID == "" {
		return nil, nil
	}
	return r.GetByID(ctx, userID)
}

func (r *userRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	ids, err := r.store.SMembers(ctx, keyUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user != nil {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string, timestamp int64) error {
	if err := r.store.Set(ctx, keyUserLastLoginAt(userID), formatInt64(timestamp)); err != nil {
		return fmt.Errorf("failed to update last login for user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if err := r.store.SRem(ctx, keyUsers, userID); err != nil {
		return fmt.Errorf("failed to unregister user %s: %w", userID, err)
	}
	err = r.store.Del(ctx,
		keyUserEmail(userID),
		keyUserPasswordHash(userID),
		keyUserRole(userID),
		keyUserCreatedAt(userID),
		keyUserLastLoginAt(userID),
		keyUserHasReader(userID),
		keyUserHasReporter(userID),
		keyUserHasEditor(userID),
		keyUserByEmail(user.Email),
	)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	return nil
}

// GetAIConfig returns the tenant's model endpoint overrides with editor
// defaults substituted for missing numeric fields. APIKey and BaseURL stay
// empty when unset so the caller falls back to process configuration.
func (r *userRepository) GetAIConfig(ctx context.Context, userID string) (*entity.AIConfig, error) {
	apiKey, err := r.store.Get(ctx, keyUserOpenAIAPIKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get ai config for user %s: %w", userID, err)
	}
	baseURL, _ := r.store.Get(ctx, keyUserOpenAIBaseURL(userID))
	modelName, _ := r.store.Get(ctx, keyUserModelName(userID))
	if modelName == "" {
		modelName = entity.DefaultModelName
	}
	inputCost, _ := r.store.Get(ctx, keyUserInputTokenCost(userID))
	outputCost, _ := r.store.Get(ctx, keyUserOutputTokenCost(userID))
	sliceCount, _ := r.store.Get(ctx, keyUserMessageSliceCount(userID))
	articlePeriod, _ := r.store.Get(ctx, keyUserArticlePeriodMinutes(userID))
	eventPeriod, _ := r.store.Get(ctx, keyUserEventPeriodMinutes(userID))
	editionPeriod, _ := r.store.Get(ctx, keyUserEditionPeriodMinutes(userID))

	return &entity.AIConfig{
		APIKey:                         apiKey,
		BaseURL:                        baseURL,
		ModelName:                      modelName,
		InputTokenCost:                 parseFloatOr(inputCost, entity.DefaultInputTokenCost),
		OutputTokenCost:                parseFloatOr(outputCost, entity.DefaultOutputTokenCost),
		MessageSliceCount:              parseIntOr(sliceCount, entity.DefaultMessageSliceCount),
		ArticleGenerationPeriodMinutes: parseIntOr(articlePeriod, entity.DefaultArticleGenerationPeriodMinutes),
		EventGenerationPeriodMinutes:   parseIntOr(eventPeriod, entity.DefaultEventGenerationPeriodMinutes),
		EditionGenerationPeriodMinutes: parseIntOr(editionPeriod, entity.DefaultEditionGenerationPeriodMinutes),
	}, nil
}

func (r *userRepository) UpdateAIConfig(ctx context.Context, userID string, cfg *entity.AIConfig) error {
	pairs := []storage.KV{
		{Key: keyUserOpenAIAPIKey(userID), Value: cfg.APIKey},
		{Key: keyUserOpenAIBaseURL(userID), Value: cfg.BaseURL},
		{Key: keyUserModelName(userID), Value: cfg.ModelName},
		{Key: keyUserInputTokenCost(userID), Value: formatFloat(cfg.InputTokenCost)},
		{Key: keyUserOutputTokenCost(userID), Value: formatFloat(cfg.OutputTokenCost)},
		{Key: keyUserMessageSliceCount(userID), Value: formatInt(cfg.MessageSliceCount)},
		{Key: keyUserArticlePeriodMinutes(userID), Value: formatInt(cfg.ArticleGenerationPeriodMinutes)},
		{Key: keyUserEventPeriodMinutes(userID), Value: formatInt(cfg.EventGenerationPeriodMinutes)},
		{Key: keyUserEditionPeriodMinutes(userID), Value: formatInt(cfg.EditionGenerationPeriodMinutes)},
	}
	if err := r.store.MultiSet(ctx, pairs); err != nil {
		return fmt.Errorf("failed to update ai config for user %s: %w", userID, err)
	}
	return nil
}
