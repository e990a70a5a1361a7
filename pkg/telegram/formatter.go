package telegram

import (
	"fmt"
	"strings"
)

// FormatDailyEditionMessage renders the publication notice for a daily
// edition: paper name, front page headline and the topic one-liners.
func FormatDailyEditionMessage(newspaperName, frontPageHeadline string, topicSummaries []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("*%s*\n\n", escapeMarkdown(newspaperName)))
	b.WriteString(fmt.Sprintf("📰 *%s*\n", escapeMarkdown(frontPageHeadline)))
	for _, summary := range topicSummaries {
		b.WriteString(fmt.Sprintf("• %s\n", escapeMarkdown(summary)))
	}
	return b.String()
}

// FormatJobFailureMessage renders a job failure alert.
func FormatJobFailureMessage(jobName, userID, reason string) string {
	return fmt.Sprintf("⚠️ Job *%s* failed for user `%s`: %s",
		escapeMarkdown(jobName), userID, escapeMarkdown(reason))
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return replacer.Replace(s)
}
