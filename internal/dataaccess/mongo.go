package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/config"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/insurance"
)

// MongoSource reads the full collection with a query-all find. Documents
// decode into the fixed-shape Record via bson tags; the internal _id field
// has no Record counterpart and is dropped by the decode.
type MongoSource struct {
	client     *mongo.Client
	database   string
	collection string
	logger     *slog.Logger
}

func NewMongoSource(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*MongoSource, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb is unreachable: %w", err)
	}

	logger.Info("connected to mongodb", "database", cfg.Database, "collection", cfg.Collection)
	return &MongoSource{
		client:     client,
		database:   cfg.Database,
		collection: cfg.Collection,
		logger:     logger,
	}, nil
}

func (s *MongoSource) FetchAll(ctx context.Context) ([]insurance.Record, error) {
	coll := s.client.Database(s.database).Collection(s.collection)

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %q: %w", s.collection, err)
	}

	var records []insurance.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection %q: %w", s.collection, err)
	}

	s.logger.Info("fetched records from collection", "collection", s.collection, "rows", len(records))
	return records, nil
}

func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
