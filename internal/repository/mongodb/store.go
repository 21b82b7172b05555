package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// Store keeps one MongoDB collection per entity kind. Documents are stored under
// their own identifier as _id.
type Store struct {
	client *mongo.Client
	dbName string
}

// NewStore connects and pings the server.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

func (s *Store) collection(c repository.Collection) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(string(c))
}

func (s *Store) Get(ctx context.Context, c repository.Collection, id string) ([]byte, error) {
	var doc bson.M
	err := s.collection(c).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", c, id, err)
	}
	return toJSON(doc)
}

func (s *Store) List(ctx context.Context, c repository.Collection) ([][]byte, error) {
	cur, err := s.collection(c).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c, err)
	}
	defer cur.Close(ctx)

	var out [][]byte
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", c, err)
		}
		raw, err := toJSON(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c, err)
	}
	return out, nil
}

func (s *Store) Put(ctx context.Context, c repository.Collection, id string, doc []byte) error {
	var m bson.M
	if err := bson.UnmarshalExtJSON(doc, false, &m); err != nil {
		return fmt.Errorf("failed to convert %s %s: %w", c, id, err)
	}
	m["_id"] = id

	_, err := s.collection(c).ReplaceOne(ctx, bson.M{"_id": id}, m, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to put %s %s: %w", c, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, c repository.Collection, id string) error {
	res, err := s.collection(c).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", c, id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toJSON(doc bson.M) ([]byte, error) {
	delete(doc, "_id")
	raw, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return raw, nil
}
