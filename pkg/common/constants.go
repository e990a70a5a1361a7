package common

const (
	// Job names, one per schedulable generation path.
	JobReporterArticles    = "reporter"
	JobReporterEvents      = "events"
	JobArticlesFromEvents  = "articles_from_events"
	JobNewspaperEdition    = "newspaper"
	JobDailyEdition        = "daily"

	// Audit purpose tags.
	AuditPurposeArticle           = "article"
	AuditPurposeArticleFromEvents = "article_from_events"
	AuditPurposeEvents            = "events"
	AuditPurposeStorySelection    = "story_selection"
	AuditPurposeDailyEdition      = "daily_edition"
)
