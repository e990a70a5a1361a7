package dto

// TenantJobResult is the outcome of one job run for one tenant.
type TenantJobResult struct {
	UserID    string `json:"userId"`
	Skipped   bool   `json:"skipped"`
	Reason    string `json:"reason,omitempty"`
	Count     int    `json:"count"`
	EditionID string `json:"editionId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// JobReport aggregates per-tenant results of one scheduled job run.
type JobReport struct {
	Job     string            `json:"job"`
	Results []TenantJobResult `json:"results"`
}
