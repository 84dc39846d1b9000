// internal/app/store/news/newsstore.go
package newsstore

import (
	"context"
	"time"

	"github.com/dalemusser/cyberhub/internal/app/system/txn"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Marker document id in the meta collection for the ingestion cooldown.
const refreshMarkerID = "newsRefresh"

type Store struct {
	client *mongo.Client
	items  *mongo.Collection
	meta   *mongo.Collection
	log    *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		client: db.Client(),
		items:  db.Collection("cyber_news"),
		meta:   db.Collection("meta"),
		log:    logger,
	}
}

// UpsertBatch merge-upserts all items in a single transaction: readers never
// observe a partially refreshed feed set. fetched_at is refreshed on every
// run; the identifying fields are replaced in place, keyed by the item's
// canonical-link id.
func (s *Store) UpsertBatch(ctx context.Context, items []models.NewsItem) error {
	if len(items) == 0 {
		return nil
	}

	return txn.WithTxn(ctx, s.client, s.log, func(ctx context.Context) error {
		for _, it := range items {
			update := bson.M{"$set": bson.M{
				"title":        it.Title,
				"source":       it.Source,
				"link":         it.Link,
				"published_at": it.PublishedAt,
				"fetched_at":   it.FetchedAt,
			}}
			_, err := s.items.UpdateByID(ctx, it.ID, update, options.Update().SetUpsert(true))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListRecent returns up to limit items, newest published first.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.NewsItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.items.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.NewsItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of stored news items.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.items.CountDocuments(ctx, bson.M{})
}

// refreshMarker is the persisted cooldown record. Absent means "never run".
type refreshMarker struct {
	ID      string    `bson:"_id"`
	LastRun time.Time `bson:"last_run"`
}

// LastRun returns the time of the last successful ingestion run. ok is
// false when the job has never run.
func (s *Store) LastRun(ctx context.Context) (t time.Time, ok bool, err error) {
	var m refreshMarker
	err = s.meta.FindOne(ctx, bson.M{"_id": refreshMarkerID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return m.LastRun, true, nil
}

// MarkRan records now as the last successful run. Written only after the
// item batch has committed, so a failed run retries on the next tick.
func (s *Store) MarkRan(ctx context.Context, now time.Time) error {
	_, err := s.meta.UpdateByID(ctx, refreshMarkerID,
		bson.M{"$set": bson.M{"last_run": now.UTC()}},
		options.Update().SetUpsert(true))
	return err
}
