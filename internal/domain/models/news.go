// internal/domain/models/news.go
package models

import "time"

// NewsItem is one ingested feed entry. The document key is a base64
// encoding of the canonical link, so re-ingesting the same link updates the
// existing document in place instead of duplicating it.
type NewsItem struct {
	ID          string    `bson:"_id"` // base64(link), padding stripped
	Title       string    `bson:"title"`
	Source      string    `bson:"source"` // feed display name
	Link        string    `bson:"link"`
	PublishedAt time.Time `bson:"published_at"`
	FetchedAt   time.Time `bson:"fetched_at"`
}
