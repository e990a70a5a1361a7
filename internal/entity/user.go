package entity

// Role is a user's access role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleReporter Role = "reporter"
	RoleUser     Role = "user"
)

// User is a globally registered account; every other entity is scoped to a
// user id acting as the tenant id.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	CreatedAt    int64  `json:"createdAt"`
	LastLoginAt  int64  `json:"lastLoginAt,omitempty"`
	HasReader    bool   `json:"hasReader"`
	HasReporter  bool   `json:"hasReporter"`
	HasEditor    bool   `json:"hasEditor"`
}

// AIConfig is a tenant's model endpoint configuration; APIKey, BaseURL and
// ModelName override the process-level defaults per call.
type AIConfig struct {
	APIKey                         string  `json:"apiKey"`
	BaseURL                        string  `json:"baseUrl,omitempty"`
	ModelName                      string  `json:"modelName"`
	InputTokenCost                 float64 `json:"inputTokenCost"`
	OutputTokenCost                float64 `json:"outputTokenCost"`
	MessageSliceCount              int     `json:"messageSliceCount"`
	ArticleGenerationPeriodMinutes int     `json:"articleGenerationPeriodMinutes"`
	EventGenerationPeriodMinutes   int     `json:"eventGenerationPeriodMinutes"`
	EditionGenerationPeriodMinutes int     `json:"editionGenerationPeriodMinutes"`
}
