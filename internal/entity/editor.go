package entity

// Defaults substituted by the repository when an editor field is missing
// from storage.
const (
	DefaultModelName                      = "gpt-5-nano"
	DefaultMessageSliceCount              = 200
	DefaultInputTokenCost                 = 0.00015
	DefaultOutputTokenCost                = 0.0006
	DefaultArticleGenerationPeriodMinutes = 60
	DefaultEventGenerationPeriodMinutes   = 30
	DefaultEditionGenerationPeriodMinutes = 1440
)

// Editor is the per-tenant editorial configuration: the persona prompt fed
// to story selection and synthesis, model settings, token cost rates and
// the generation time gates.
type Editor struct {
	Bio               string  `json:"bio"`
	Prompt            string  `json:"prompt"`
	ModelName         string  `json:"modelName"`
	MessageSliceCount int     `json:"messageSliceCount"`
	InputTokenCost    float64 `json:"inputTokenCost"`
	OutputTokenCost   float64 `json:"outputTokenCost"`

	ArticleGenerationPeriodMinutes int   `json:"articleGenerationPeriodMinutes"`
	LastArticleGenerationTime      int64 `json:"lastArticleGenerationTime,omitempty"`
	EventGenerationPeriodMinutes   int   `json:"eventGenerationPeriodMinutes"`
	LastEventGenerationTime        int64 `json:"lastEventGenerationTime,omitempty"`
	EditionGenerationPeriodMinutes int   `json:"editionGenerationPeriodMinutes"`
	LastEditionGenerationTime      int64 `json:"lastEditionGenerationTime,omitempty"`
}

// Validate checks configured ranges: each period within [1,1440] minutes and
// non-negative token costs.
func (e *Editor) Validate() error {
	for _, period := range []int{
		e.ArticleGenerationPeriodMinutes,
		e.EventGenerationPeriodMinutes,
		e.EditionGenerationPeriodMinutes,
	} {
		if period < 1 || period > 1440 {
			return ErrInvalidPeriod
		}
	}
	if e.InputTokenCost < 0 || e.OutputTokenCost < 0 {
		return ErrInvalidTokenCost
	}
	return nil
}
