package database

import (
	"context"
	"fmt"
	"time"

	"teamfeed/config"
	"teamfeed/database/docstore"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Handle is an open document store plus its lifecycle hooks.
type Handle struct {
	Store docstore.Store
	// Ping probes the backend; used by the health monitor.
	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}

// Open connects the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Handle, error) {
	switch cfg.StoreDriver {
	case config.DriverFirestore:
		client, err := NewFirestoreClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to Firestore", zap.String("projectId", cfg.FirebaseProjectID))
		return &Handle{
			Store: docstore.NewFirestoreStore(client),
			Ping: func(ctx context.Context) error {
				_, err := client.Collections(ctx).Next()
				if err != nil && err != iterator.Done {
					return err
				}
				return nil
			},
			Close: func(context.Context) error { return client.Close() },
		}, nil

	case config.DriverMongo:
		client, err := NewMongoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to MongoDB successfully", zap.String("database", cfg.DatabaseName))
		db := client.Database(cfg.DatabaseName)
		if err := EnsureMongoIndexes(ctx, db); err != nil {
			logger.Warn("Could not ensure MongoDB indexes", zap.Error(err))
		}
		return &Handle{
			Store: docstore.NewMongoStore(db),
			Ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
			Close: client.Disconnect,
		}, nil

	case config.DriverMemory:
		logger.Warn("Using the in-memory store; data is lost on restart")
		return &Handle{
			Store: docstore.NewMemoryStore(),
			Ping:  func(context.Context) error { return nil },
			Close: func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// NewFirestoreClient initializes the Firebase app and returns its Firestore
// client. Inline FIREBASE_* credentials win over a credentials file; with
// neither, application default credentials are used.
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	creds, err := cfg.FirebaseCredentialsJSON()
	switch {
	case err == nil:
		opts = append(opts, option.WithCredentialsJSON(creds))
	case cfg.FirebaseCredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}
	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}
	return client, nil
}

// NewMongoClient connects to DATABASE_URL and verifies the connection.
func NewMongoClient(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DatabaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}
