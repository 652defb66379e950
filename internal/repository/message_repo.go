package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"avatarsurvey/internal/model"
)

// MessageRepo handles MongoDB operations for transcript messages
type MessageRepo interface {
	Create(ctx context.Context, message *model.Message) error
	GetBySessionID(ctx context.Context, sessionID string) ([]*model.Message, error)
}

type messageRepo struct {
	collection *mongo.Collection
}

// NewMessageRepo creates a new message repository
func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepo{
		collection: db.Collection("messages"),
	}
}

func (r *messageRepo) Create(ctx context.Context, message *model.Message) error {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid.Hex()
	}
	return nil
}

// GetBySessionID returns a session transcript ordered by receipt time.
// Extraction and audit both depend on this ordering.
func (r *messageRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
