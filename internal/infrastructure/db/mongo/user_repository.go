package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(domain.CollectionUsers)}
}

type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	Email     string             `bson:"email"`
	Roles     []string           `bson:"roles"`
	Active    bool               `bson:"active"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		Roles:     u.Roles,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

// Insert writes a new user. The unique username and email indexes turn a
// collision into domain.ErrDuplicateKey.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoUser(user)); err != nil {
		return classify(fmt.Errorf("insert user: %w", err))
	}
	return nil
}

// Upsert inserts the user unless the username already exists, in which case
// the stored document (including its password) is left as is.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"username": user.Username}
	update := bson.M{"$setOnInsert": toMongoUser(user)}

	res, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, classify(fmt.Errorf("upsert user: %w", err))
	}
	return res.UpsertedCount > 0, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		Username:  mu.Username,
		Password:  mu.Password,
		Email:     mu.Email,
		Roles:     mu.Roles,
		Active:    mu.Active,
		CreatedAt: mu.CreatedAt.UTC(),
	}, nil
}
