package repository

import (
	"fmt"
	"strings"
	"time"

	"golang-ai-newsroom/internal/entity"
)

// Prompt builders for every generation path. The numbered message indices in
// the context blocks are 1-based and are what the model echoes back in the
// messageIds fields.

// BuildArticlePrompts returns the system and user prompts for feed-driven
// article generation.
func BuildArticlePrompts(reporter *entity.Reporter, socialMediaContext string) (string, string) {
	beatsList := strings.Join(reporter.Beats, ", ")

	systemPrompt := fmt.Sprintf("You are a professional journalist creating structured news articles. Generate comprehensive, well-researched articles with proper journalistic structure including lead paragraphs, key quotes, sources, and reporter notes. %s", reporter.Prompt)

	userPrompt := fmt.Sprintf(`Create a focused news article about one particular recent development. You have access to these beats: %s. Choose one beat from this list and focus your article on a recent development within that chosen beat.

First, scan the provided social media messages for information relevant to any of your available beats. Identify the single most significant or noteworthy recent development from these messages that aligns with one of your assigned beats. If there are zero relevant social media messages, stop processing and return empty strings for the rest of the fields.

Focus the entire article on this one specific development, providing in-depth coverage rather than broad overview. Include:

1. A compelling headline focused on this specific development
2. A strong lead paragraph (2-3 sentences) that hooks readers with this particular story
3. A detailed body (300-500 words) with deep context and analysis of this one development
4. 2-4 key quotes specifically related to this development
5. 3-5 credible sources focused on this particular development
6. A brief social media summary (under 280 characters) about this specific story
7. Reporter notes on research quality, source diversity, and factual accuracy for this development
8. beat: Specify which beat from your assigned list you chose for this article
9. messageIds: List the indices (1, 2, 3, etc.) of only the relevant messages you identified and actually used to inform or write this article about this specific development. If you didn't find any relevant messages or didn't use any specific messages, use an empty array.

Make the article engaging, factual, and professionally written. Ensure all quotes are realistic and sources are credible. Focus exclusively on this one development to create a more targeted and impactful piece.%s

When generating the article, first scan the social media context for messages relevant to your available beats, choose the most appropriate beat for the best story available, identify the most significant single development within that beat, then focus the entire article on that specific development to create a more targeted and impactful story. After writing the article, re-scan the social media messages for any that may be potentially related to your story; include their numeric indices in the "potentialMessageIds" field.`, beatsList, socialMediaContext)

	return systemPrompt, userPrompt
}

// BuildEventsPrompts returns the system and user prompts for event
// identification and tracking.
func BuildEventsPrompts(reporter *entity.Reporter, eventsContext, socialMediaContext string) (string, string) {
	beatsList := strings.Join(reporter.Beats, ", ")

	systemPrompt := fmt.Sprintf("You are an AI journalist tasked with identifying and tracking important events and developments. Your goal is to create structured event records that capture key facts about ongoing stories and developments. You specialize in these beats: %s. %s", beatsList, reporter.Prompt)

	userPrompt := fmt.Sprintf(`Based on the recent social media messages and the reporter's previous events, identify up to 5 significant events or developments that should be tracked. Focus on events and developments that align with your assigned beats: %s. For each event:

1. If this matches an existing event from the previous events list, use the existing event's numerical index and add any new facts to it
2. If this is a new event, create a new title and initial facts
3. Each event should have 1-5 key facts that capture the essential information
4. messageIds: List the indices (1, 2, 3, etc.) of only the relevant messages you identified and actually used to create or update this event. If you didn't find any relevant messages or didn't use any specific messages, use an empty array.
5. potentialMessageIds: After creating/updating the event, re-scan the social media messages for any that may be potentially related to this event; include their numeric indices in this field.

Previous Events:
%s

Recent Social Media Messages:
%s

Instructions:
- Review the social media messages for significant developments that align with your assigned beats: %s
- Prioritize events and developments within your beats over general news
- Match new information to existing events where appropriate, or create new events for new developments
- For each event, provide a clear title and 1-5 key facts
- Focus on factual, verifiable information
- Prioritize events that represent ongoing stories or important developments within your beats
- Return up to 5 events maximum
- IMPORTANT: Always include messageIds and potentialMessageIds arrays for each event, even if empty
`, beatsList, eventsContext, socialMediaContext, beatsList)

	return systemPrompt, userPrompt
}

// BuildArticleFromEventsPrompts returns the system and user prompts for
// writing an article grounded in one of the reporter's tracked events.
func BuildArticleFromEventsPrompts(reporter *entity.Reporter, eventsContext, articlesContext, socialMediaContext string) (string, string) {
	beatsList := strings.Join(reporter.Beats, ", ")

	systemPrompt := fmt.Sprintf("You are a professional journalist creating structured news articles. Generate comprehensive, well-researched articles with proper journalistic structure including lead paragraphs, key quotes, sources, and reporter notes. %s", reporter.Prompt)

	userPrompt := fmt.Sprintf(`Create a focused news article about one of your recent events. Your assigned beats are as follows: %s.

Here are your 5 latest events:
%s

Here are the headlines of your 5 latest articles:
%s

Choose ONE of the 5 events above and write a comprehensive news article about it. Follow these guidelines:

*First, scan the provided social media messages for information relevant to any of your available beats. If there are zero relevant social media messages, stop processing and return empty strings for the rest of the fields. Include the numerical indexes of the messages relevant to the article you write in the "messageIds" field.
* Write a compelling headline focused on this specific event
* Create a strong lead paragraph (2-3 sentences) that hooks readers with this particular story
* Write a detailed body (300-500 words) with deep context and analysis of this event
* Include 2-4 key quotes specifically related to this event
* List 3-5 credible sources focused on this particular event
* Create a brief social media summary (under 280 characters) about this specific story
* Provide reporter notes on research quality, source diversity, and factual accuracy for this event
* Specify which beat from your assigned list you chose for this article
* IMPORTANT: Do not write about topics you've covered in your recent articles unless there is newly developed information about that topic. If all recent events have been covered, choose the one with the most significant new developments.

Make the article engaging, factual, and professionally written. Ensure all quotes are realistic and sources are credible. Focus exclusively on the chosen event to create a more targeted and impactful piece.%s

When generating the article, first review your recent articles to avoid repetition, then choose the most appropriate event from your list, and focus the entire article on that specific event to create a more targeted and impactful story. After writing the article, re-scan the social media messages for any that may be related to your chosen event; include their numeric indices in the "potentialMessageIds" field.`, beatsList, eventsContext, articlesContext, socialMediaContext)

	return systemPrompt, userPrompt
}

// BuildStorySelectionPrompts returns the system and user prompts for
// selecting the most newsworthy stories for an edition.
func BuildStorySelectionPrompts(articlesText, editorPrompt string) (string, string) {
	systemPrompt := "You are an experienced news editor evaluating story newsworthiness. Select the most important and engaging stories based on journalistic criteria."

	userPrompt := fmt.Sprintf(`Given the following articles and editorial guidelines: "%s", select the 3-5 most newsworthy stories from the list below. Consider factors like timeliness, impact, audience interest, and editorial fit.

Articles:
%s

Return only the article numbers (1, 2, 3, etc.) of the selected stories, separated by commas. Select between 3-5 articles based on their quality and newsworthiness.`, editorPrompt, articlesText)

	return systemPrompt, userPrompt
}

// BuildDailyEditionPrompts returns the system and user prompts for
// synthesizing a daily newspaper out of recent editions.
func BuildDailyEditionPrompts(editionsText, editorPrompt string) (string, string) {
	systemPrompt := "You are a newspaper editor creating a comprehensive daily edition. Based on the available newspaper editions and their articles, create a structured daily newspaper with front page content, multiple topics, and editorial feedback. Create engaging, professional content that synthesizes the available editions into a cohesive daily newspaper."

	userPrompt := fmt.Sprintf(`Using the editorial guidelines: "%s", create a comprehensive daily newspaper edition based on these available newspaper editions and their articles:

%s

Generate a complete daily edition with:
1. A compelling front page headline that captures the day's most important story
2. A detailed front page article (300-500 words)
3. 3-5 major topics, each with complete news coverage including headlines, two-paragraph stories, social media content, and contrasting viewpoints
4. Feedback about the editorial prompt (both positive and negative aspects)

Make the content engaging, balanced, and professionally written. Focus on creating a cohesive narrative that connects the various editions into a unified daily newspaper experience.`, editorPrompt, editionsText)

	return systemPrompt, userPrompt
}

// FullPrompt joins the system and user prompts into the single audit string
// persisted alongside generated entities.
func FullPrompt(systemPrompt, userPrompt string) string {
	return fmt.Sprintf("System: %s\n\nUser: %s", systemPrompt, userPrompt)
}

// FormatSocialMediaContext numbers the feed messages 1-based for the prompt.
// When includeAds is set and an ad is available, the ad's prompt content is
// interleaved after every 20th message. Returns "" for an empty feed.
func FormatSocialMediaContext(messages []entity.FeedMessage, includeAds bool, mostRecentAd *entity.AdEntry) string {
	if len(messages) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(messages))
	for i, msg := range messages {
		formatted = append(formatted, fmt.Sprintf("%d. \"%s\"", i+1, msg.Text))
		if includeAds && (i+1)%20 == 0 && mostRecentAd != nil {
			formatted = append(formatted, fmt.Sprintf("\n\n%s\n\n", mostRecentAd.PromptContent))
		}
	}

	return fmt.Sprintf("\n\nRecent social media discussions:\n%s", strings.Join(formatted, "\n"))
}

// FormatMessagesPlain numbers the feed messages without the context header
// or ad interleaving, as used by event generation.
func FormatMessagesPlain(messages []entity.FeedMessage) string {
	if len(messages) == 0 {
		return "No social media messages available."
	}
	formatted := make([]string, 0, len(messages))
	for i, msg := range messages {
		formatted = append(formatted, fmt.Sprintf("%d. \"%s\"", i+1, msg.Text))
	}
	return strings.Join(formatted, "\n")
}

// FormatEventsContext renders the reporter's previous events for a prompt,
// 1-based, so the model can reference them by index.
func FormatEventsContext(events []*entity.Event) string {
	if len(events) == 0 {
		return "No previous events available."
	}
	parts := make([]string, 0, len(events))
	for i, event := range events {
		created := time.UnixMilli(event.CreatedTime).UTC().Format(time.RFC3339)
		parts = append(parts, fmt.Sprintf("Event %d:\nTitle: %s\nFacts: %s\nCreated: %s",
			i+1, event.Title, strings.Join(event.Facts, ", "), created))
	}
	return strings.Join(parts, "\n\n")
}

// FormatArticlesContext renders recent article headlines for a prompt.
func FormatArticlesContext(articles []*entity.Article) string {
	if len(articles) == 0 {
		return "No previous articles available for this reporter."
	}
	parts := make([]string, 0, len(articles))
	for i, article := range articles {
		parts = append(parts, fmt.Sprintf("Article %d: \"%s\"", i+1, article.Headline))
	}
	return strings.Join(parts, "\n")
}

// FormatArticlesText renders numbered articles with a 300-character body
// excerpt for the story selection prompt.
func FormatArticlesText(articles []*entity.Article) string {
	parts := make([]string, 0, len(articles))
	for i, article := range articles {
		excerpt := article.Body
		if len(excerpt) > 300 {
			excerpt = excerpt[:300]
		}
		parts = append(parts, fmt.Sprintf("Article %d:\nHeadline: %s\nContent: %s...", i+1, article.Headline, excerpt))
	}
	return strings.Join(parts, "\n\n")
}

// EditionArticles is one edition with its resolved articles, as fed to the
// daily edition prompt.
type EditionArticles struct {
	ID       string
	Articles []*entity.Article
}

// FormatEditionsText renders numbered editions and, for each article, its
// headline plus the first paragraph (or a 200-character excerpt when the
// body has no line break).
func FormatEditionsText(editions []EditionArticles) string {
	parts := make([]string, 0, len(editions))
	for i, edition := range editions {
		articleParts := make([]string, 0, len(edition.Articles))
		for j, article := range edition.Articles {
			firstParagraph := article.Body
			if idx := strings.Index(firstParagraph, "\n"); idx >= 0 {
				firstParagraph = firstParagraph[:idx]
			}
			if firstParagraph == "" {
				if len(article.Body) > 200 {
					firstParagraph = article.Body[:200]
				} else {
					firstParagraph = article.Body
				}
			}
			articleParts = append(articleParts, fmt.Sprintf("Article %d:\nHeadline: %s\nFirst Paragraph: %s", j+1, article.Headline, firstParagraph))
		}
		parts = append(parts, fmt.Sprintf("Edition %d (ID: %s):\n%s", i+1, edition.ID, strings.Join(articleParts, "\n\n")))
	}
	return strings.Join(parts, "\n\n")
}
