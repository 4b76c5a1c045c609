package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/ports"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultIndexTimeout = 2 * time.Minute
	defaultAuthSource   = "admin"
)

// Config captures the settings required to reach and authenticate against a
// MongoDB deployment.
type Config struct {
	URI        string
	Username   string
	Password   string
	AuthSource string
	Timeout    time.Duration
}

// Connect builds a MongoDB client. No server round trip happens here;
// credentials are checked by Session.Authenticate.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	if cfg.Username != "" {
		source := cfg.AuthSource
		if source == "" {
			source = defaultAuthSource
		}
		opts.SetAuth(options.Credential{
			Username:   cfg.Username,
			Password:   cfg.Password,
			AuthSource: source,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

// Session implements ports.Session on top of a mongo.Client.
type Session struct {
	client  *mongo.Client
	timeout time.Duration
}

// NewSession wraps client. timeout bounds the authentication round trip.
func NewSession(client *mongo.Client, timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Session{client: client, timeout: timeout}
}

// Authenticate pings the primary. With credentials configured the handshake
// performs authentication, so a rejected login fails here.
func (s *Session) Authenticate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return classify(fmt.Errorf("mongo ping: %w", err))
	}
	return nil
}

// Database selects name and returns its repositories.
func (s *Session) Database(name string) ports.Repositories {
	db := s.client.Database(name)
	return ports.Repositories{
		Config:  NewConfigRepository(db),
		Users:   NewUserRepository(db),
		Indexes: NewIndexRepository(db),
	}
}

// Ping reports whether the server answers; used by the readiness probe.
func (s *Session) Ping(ctx context.Context) error {
	return s.client.Database(defaultAuthSource).RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

var _ ports.Session = (*Session)(nil)
