// Package mongodb provides MongoDB implementations of the interfaces in
// internal/store. Each entity lives in its own collection of one database.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carecamp/carecamp-api/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection         = "UsersCollection"
	CampsCollection         = "CampsCollection"
	RegistrationsCollection = "registeredParticipantsCollection"
	FeedbackCollection      = "feedbackCollection"
)

// Client owns the driver connection and hands out stores bound to one database.
type Client struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
	logger  *slog.Logger
}

// Connect dials the deployment described by cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Client, error) {
	// Nested values in inlined extra fields decode as bson.M so they render
	// as JSON objects.
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", MapError(err))
	}

	c := &Client{
		client:  client,
		db:      client.Database(cfg.Name),
		timeout: cfg.OperationTimeout,
		logger:  logger,
	}

	if err := c.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("pinged mongodb deployment", "database", cfg.Name)
	return c, nil
}

// Ping checks that the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", MapError(err))
	}
	return nil
}

// EnsureIndexes creates the indexes lookups rely on. It is safe to call repeatedly.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	indexes := map[string]mongo.IndexModel{
		UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		RegistrationsCollection: {
			Keys:    bson.D{{Key: "loggedUserEmail", Value: 1}},
			Options: options.Index().SetName("logged_user_email"),
		},
		CampsCollection: {
			Keys:    bson.D{{Key: "participantCount", Value: -1}},
			Options: options.Index().SetName("participant_count"),
		},
	}

	for name, model := range indexes {
		if _, err := c.db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, MapError(err))
		}
	}
	return nil
}

// Close disconnects from the deployment.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// UserStore returns a store bound to the users collection.
func (c *Client) UserStore() *UserStore {
	return NewUserStore(c.db, c.timeout, c.logger)
}

// CampStore returns a store bound to the camps collection.
func (c *Client) CampStore() *CampStore {
	return NewCampStore(c.db, c.timeout, c.logger)
}

// RegistrationStore returns a store bound to the registrations collection.
func (c *Client) RegistrationStore() *RegistrationStore {
	return NewRegistrationStore(c.db, c.timeout, c.logger)
}

// FeedbackStore returns a store bound to the feedback collection.
func (c *Client) FeedbackStore() *FeedbackStore {
	return NewFeedbackStore(c.db, c.timeout, c.logger)
}

// withTimeout bounds a single store operation. A zero timeout leaves ctx unchanged.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// decodeAll drains cur into a non-nil slice.
func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]*T, error) {
	defer cur.Close(ctx)

	results := make([]*T, 0)
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
