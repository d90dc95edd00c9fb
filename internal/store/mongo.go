package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"payments-gateway/internal/models"
)

// Mongo stores one document per payment. Ids are ObjectID hex strings
// kept as plain string _id values, so any client-chosen string is a valid key.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongo(client *mongo.Client, database, collection string) *Mongo {
	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (m *Mongo) List(ctx context.Context) ([]models.Payment, error) {
	cur, err := m.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	payments := make([]models.Payment, 0)
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

func (m *Mongo) Get(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}
	return &p, nil
}

func (m *Mongo) Save(ctx context.Context, p models.Payment) (*models.Payment, error) {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}

	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("save payment %s: %w", p.ID, err)
	}
	return &p, nil
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}

func (m *Mongo) Count(ctx context.Context) (int64, error) {
	n, err := m.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}
