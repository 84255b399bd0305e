package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoKV stores one document per key: {_id: key, value: text}.
type MongoKV struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// ConnectMongo connects to uri and uses database.collection for values.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoKV, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Println("Connected to MongoDB")
	return &MongoKV{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoKV) Get(ctx context.Context, key string) (string, bool, error) {
	var doc kvDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (s *MongoKV) Set(ctx context.Context, key, value string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *MongoKV) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoKV) Close() error {
	return s.client.Disconnect(context.Background())
}
