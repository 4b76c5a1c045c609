package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

// IndexRepository creates and lists secondary indexes across collections.
type IndexRepository struct {
	db *mongo.Database
}

func NewIndexRepository(db *mongo.Database) *IndexRepository {
	return &IndexRepository{db: db}
}

// indexModel translates a declaration into the driver's IndexModel. Key
// order is preserved, which matters for compound indexes.
func indexModel(spec domain.IndexSpec) mongo.IndexModel {
	keys := make(bson.D, 0, len(spec.Keys))
	for _, k := range spec.Keys {
		var v interface{} = int32(k.Order)
		if k.Order == domain.Text {
			v = "text"
		}
		keys = append(keys, bson.E{Key: k.Field, Value: v})
	}

	model := mongo.IndexModel{Keys: keys}
	if spec.Unique {
		model.Options = options.Index().SetUnique(true)
	}
	return model
}

// Create builds one index. Creating an index identical to an existing one is
// a server-side no-op.
func (r *IndexRepository) Create(ctx context.Context, spec domain.IndexSpec) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultIndexTimeout)
	defer cancel()

	name, err := r.db.Collection(spec.Collection).Indexes().CreateOne(ctx, indexModel(spec))
	if err != nil {
		err = classify(fmt.Errorf("create index %s: %w", spec, err))
		// A unique index build over violating documents is a write failure.
		if errors.Is(err, domain.ErrDuplicateKey) {
			err = fmt.Errorf("%w: %w", domain.ErrWrite, err)
		}
		return "", err
	}
	return name, nil
}

// Names lists the index names on collection, including the implicit _id_.
func (r *IndexRepository) Names(ctx context.Context, collection string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	specs, err := r.db.Collection(collection).Indexes().ListSpecifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexes on %s: %w", collection, err)
	}

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	return names, nil
}
