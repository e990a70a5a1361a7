package repository

import "fmt"

// Key builders for the tenant-scoped keyspace. Every tenant-owned entity
// lives under a user:{id}: prefix; only the user directory itself is global.

const (
	keyUsers = "users"
)

func keyUserByEmail(email string) string { return fmt.Sprintf("user_by_email:%s", email) }

func keyUserEmail(userID string) string        { return fmt.Sprintf("user:%s:email", userID) }
func keyUserPasswordHash(userID string) string { return fmt.Sprintf("user:%s:password_hash", userID) }
func keyUserRole(userID string) string         { return fmt.Sprintf("user:%s:role", userID) }
func keyUserCreatedAt(userID string) string    { return fmt.Sprintf("user:%s:created_at", userID) }
func keyUserLastLoginAt(userID string) string  { return fmt.Sprintf("user:%s:last_login_at", userID) }
func keyUserHasReader(userID string) string    { return fmt.Sprintf("user:%s:has_reader", userID) }
func keyUserHasReporter(userID string) string  { return fmt.Sprintf("user:%s:has_reporter", userID) }
func keyUserHasEditor(userID string) string    { return fmt.Sprintf("user:%s:has_editor", userID) }

func keyUserOpenAIAPIKey(userID string) string  { return fmt.Sprintf("user:%s:openai_api_key", userID) }
func keyUserOpenAIBaseURL(userID string) string { return fmt.Sprintf("user:%s:openai_base_url", userID) }
func keyUserModelName(userID string) string     { return fmt.Sprintf("user:%s:model_name", userID) }
func keyUserInputTokenCost(userID string) string {
	return fmt.Sprintf("user:%s:input_token_cost", userID)
}
func keyUserOutputTokenCost(userID string) string {
	return fmt.Sprintf("user:%s:output_token_cost", userID)
}
func keyUserMessageSliceCount(userID string) string {
	return fmt.Sprintf("user:%s:message_slice_count", userID)
}
func keyUserArticlePeriodMinutes(userID string) string {
	return fmt.Sprintf("user:%s:article_generation_period_minutes", userID)
}
func keyUserEventPeriodMinutes(userID string) string {
	return fmt.Sprintf("user:%s:event_generation_period_minutes", userID)
}
func keyUserEditionPeriodMinutes(userID string) string {
	return fmt.Sprintf("user:%s:edition_generation_period_minutes", userID)
}

func keyEditorBio(userID string) string    { return fmt.Sprintf("user:%s:editor:bio", userID) }
func keyEditorPrompt(userID string) string { return fmt.Sprintf("user:%s:editor:prompt", userID) }
func keyEditorModelName(userID string) string {
	return fmt.Sprintf("user:%s:editor:model_name", userID)
}
func keyEditorMessageSliceCount(userID string) string {
	return fmt.Sprintf("user:%s:editor:message_slice_count", userID)
}
func keyEditorInputTokenCost(userID string) string {
	return fmt.Sprintf("user:%s:editor:input_token_cost", userID)
}
func keyEditorOutputTokenCost(userID string) string {
	return fmt.Sprintf("user:%s:editor:output_token_cost", userID)
}
func keyLastArticleGenerationTime(userID string) string {
	return fmt.Sprintf("user:%s:article_generation:last_time", userID)
}
func keyLastEventGenerationTime(userID string) string {
	return fmt.Sprintf("user:%s:event_generation:last_time", userID)
}
func keyLastEditionGenerationTime(userID string) string {
	return fmt.Sprintf("user:%s:edition_generation:last_time", userID)
}

func keyReporters(userID string) string { return fmt.Sprintf("user:%s:reporters", userID) }
func keyReporterBeats(userID, reporterID string) string {
	return fmt.Sprintf("user:%s:reporter:%s:beats", userID, reporterID)
}
func keyReporterPrompt(userID, reporterID string) string {
	return fmt.Sprintf("user:%s:reporter:%s:prompt", userID, reporterID)
}
func keyReporterEnabled(userID, reporterID string) string {
	return fmt.Sprintf("user:%s:reporter:%s:enabled", userID, reporterID)
}

func keyArticlesByReporter(userID, reporterID string) string {
	return fmt.Sprintf("user:%s:articles:%s", userID, reporterID)
}
func keyArticleHeadline(userID, articleID string) string {
	return fmt.Sprintf("user:%s:article:%s:headline", userID, articleID)
}
func keyArticleBody(userID, articleID string) string {
	return fmt.Sprintf("user:%s:article:%s:body", userID, articleID)
}
func keyArticleTime(userID, articleID string) string {
	return fmt.Sprintf("user:%s:article:%s:time", userID, articleID)
}
func keyArticlePrompt(userID, articleID string) string {
	return fmt.Sprintf("user:%s:article:%s:prompt", userID, articleID)
}
func keyArticleMessageIDs(userID, articleID string) string {
	return fmt.Sprintf("user:%s:article:%s:message_ids", userID, articleID)
}
func keyArticleMessageTexts(userID, articleID string) string {
	return fmt.Sprintf("user:%s:article:%s:message_texts", userID, articleID)
}
func keyArticleReporterID(userID, articleID string) string {
	return fmt.Sprintf("user:%s:article:%s:reporter_id", userID, articleID)
}

func keyEventsByReporter(userID, reporterID string) string {
	return fmt.Sprintf("user:%s:events:%s", userID, reporterID)
}
func keyEventTitle(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:title", userID, eventID)
}
func keyEventCreatedTime(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:created_time", userID, eventID)
}
func keyEventUpdatedTime(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:updated_time", userID, eventID)
}
func keyEventFacts(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:facts", userID, eventID)
}
func keyEventWhere(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:where", userID, eventID)
}
func keyEventWhen(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:when", userID, eventID)
}
func keyEventMessageIDs(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:message_ids", userID, eventID)
}
func keyEventMessageTexts(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:message_texts", userID, eventID)
}
func keyEventReporterID(userID, eventID string) string {
	return fmt.Sprintf("user:%s:event:%s:reporter_id", userID, eventID)
}

func keyEditions(userID string) string { return fmt.Sprintf("user:%s:editions", userID) }
func keyEditionStories(userID, editionID string) string {
	return fmt.Sprintf("user:%s:edition:%s:stories", userID, editionID)
}
func keyEditionTime(userID, editionID string) string {
	return fmt.Sprintf("user:%s:edition:%s:time", userID, editionID)
}
func keyEditionPrompt(userID, editionID string) string {
	return fmt.Sprintf("user:%s:edition:%s:prompt", userID, editionID)
}

func keyDailyEditions(userID string) string { return fmt.Sprintf("user:%s:daily_editions", userID) }
func keyDailyEditionEditions(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:editions", userID, dailyID)
}
func keyDailyEditionTime(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:time", userID, dailyID)
}
func keyDailyEditionFrontPageHeadline(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:front_page_headline", userID, dailyID)
}
func keyDailyEditionFrontPageArticle(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:front_page_article", userID, dailyID)
}
func keyDailyEditionTopics(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:topics", userID, dailyID)
}
func keyDailyEditionFeedbackPositive(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:model_feedback_positive", userID, dailyID)
}
func keyDailyEditionFeedbackNegative(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:model_feedback_negative", userID, dailyID)
}
func keyDailyEditionNewspaperName(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:newspaper_name", userID, dailyID)
}
func keyDailyEditionPrompt(userID, dailyID string) string {
	return fmt.Sprintf("user:%s:daily_edition:%s:prompt", userID, dailyID)
}

func keyAds(userID string) string { return fmt.Sprintf("user:%s:ads", userID) }
func keyAdName(userID, adID string) string {
	return fmt.Sprintf("user:%s:ad:%s:name", userID, adID)
}
func keyAdBidPrice(userID, adID string) string {
	return fmt.Sprintf("user:%s:ad:%s:bid_price", userID, adID)
}
func keyAdPromptContent(userID, adID string) string {
	return fmt.Sprintf("user:%s:ad:%s:prompt_content", userID, adID)
}

func keyUsageAPICalls(userID, day string) string {
	return fmt.Sprintf("user:%s:usage:%s:api_calls", userID, day)
}
func keyUsageInputTokens(userID, day string) string {
	return fmt.Sprintf("user:%s:usage:%s:input_tokens", userID, day)
}
func keyUsageOutputTokens(userID, day string) string {
	return fmt.Sprintf("user:%s:usage:%s:output_tokens", userID, day)
}
func keyUsageCost(userID, day string) string {
	return fmt.Sprintf("user:%s:usage:%s:cost", userID, day)
}
func keyUsageTotalAPICalls(userID string) string {
	return fmt.Sprintf("user:%s:usage:total:api_calls", userID)
}
func keyUsageTotalInputTokens(userID string) string {
	return fmt.Sprintf("user:%s:usage:total:input_tokens", userID)
}
func keyUsageTotalOutputTokens(userID string) string {
	return fmt.Sprintf("user:%s:usage:total:output_tokens", userID)
}
func keyUsageTotalCost(userID string) string {
	return fmt.Sprintf("user:%s:usage:total:cost", userID)
}

func keyKpiValue(userID, name string) string {
	return fmt.Sprintf("user:%s:kpi:%s:value", userID, name)
}
func keyKpiLastUpdated(userID, name string) string {
	return fmt.Sprintf("user:%s:kpi:%s:last_updated", userID, name)
}

func keyJobRunning(userID, jobName string) string {
	return fmt.Sprintf("user:%s:job:%s:running", userID, jobName)
}
func keyJobLastRun(userID, jobName string) string {
	return fmt.Sprintf("user:%s:job:%s:last_run", userID, jobName)
}
func keyJobLastSuccess(userID, jobName string) string {
	return fmt.Sprintf("user:%s:job:%s:last_success", userID, jobName)
}
