package entity

// FeedMessage is one social feed message as returned by the feed fetcher.
type FeedMessage struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Time   int64  `json:"time"`
}
