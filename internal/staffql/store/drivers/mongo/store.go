package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	employeesCollection = "employees"
)

type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout bounds every store call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// NewStore connects to uri and verifies the server is reachable before
// returning. The database name is taken from the argument.
func NewStore(ctx context.Context, uri, database string, opts ...Option) (*Store, error) {
	s := &Store{timeout: store.DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "mongo: connect")
	}
	s.client = client
	s.db = client.Database(database)

	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := store.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the server is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := store.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Ping(ctx, nil); err != nil {
		return pkgerrors.Wrap(err, "mongo: ping")
	}
	return nil
}

// ApplyMigrations ensures the indexes the repositories rely on exist. Index
// creation is idempotent.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := store.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "mongo: users index")
	}

	_, err = s.db.Collection(employeesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "projet", Value: 1}},
		Options: options.Index().SetName("projet"),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "mongo: employees index")
	}
	return nil
}

func (s *Store) Users() store.Users {
	return &usersRepo{coll: s.db.Collection(usersCollection), timeout: s.timeout}
}

func (s *Store) Employees() store.Employees {
	return &employeesRepo{coll: s.db.Collection(employeesCollection), timeout: s.timeout}
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

// parseID turns a hex ObjectID into its typed form. Anything else cannot
// name a stored document, so it reports store.ErrNotFound.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return oid, nil
}
