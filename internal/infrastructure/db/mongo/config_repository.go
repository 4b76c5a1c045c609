package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

// ConfigRepository stores runtime settings in configEcommerce.
type ConfigRepository struct {
	col *mongo.Collection
}

func NewConfigRepository(db *mongo.Database) *ConfigRepository {
	return &ConfigRepository{col: db.Collection(domain.CollectionConfig)}
}

// InsertMany writes all entries in one ordered batch. On failure the returned
// count is the driver's list of attempted ids and may overstate the writes.
func (r *ConfigRepository) InsertMany(ctx context.Context, entries []domain.ConfigEntry) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		return inserted, classify(fmt.Errorf("insert config entries: %w", err))
	}
	return len(res.InsertedIDs), nil
}

// Upsert creates the entry when no document with its key exists. Existing
// documents are left untouched.
func (r *ConfigRepository) Upsert(ctx context.Context, entry domain.ConfigEntry) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"key": entry.Key}
	update := bson.M{"$setOnInsert": entry}

	res, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, classify(fmt.Errorf("upsert config %s: %w", entry.Key, err))
	}
	return res.UpsertedCount > 0, nil
}

// FindAll returns every config entry in insertion order.
func (r *ConfigRepository) FindAll(ctx context.Context) ([]domain.ConfigEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find config entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.ConfigEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode config entries: %w", err)
	}
	return entries, nil
}
