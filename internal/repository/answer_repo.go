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

// AnswerRepo handles MongoDB operations for structured answers
type AnswerRepo interface {
	Create(ctx context.Context, answer *model.Answer) error
	GetBySessionID(ctx context.Context, sessionID string) ([]*model.Answer, error)
	Delete(ctx context.Context, id string) error
}

type answerRepo struct {
	collection *mongo.Collection
}

// NewAnswerRepo creates a new answer repository
func NewAnswerRepo(db *mongo.Database) AnswerRepo {
	return &answerRepo{
		collection: db.Collection("answers"),
	}
}

func (r *answerRepo) Create(ctx context.Context, answer *model.Answer) error {
	if answer.Timestamp.IsZero() {
		answer.Timestamp = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, answer)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		answer.ID = oid.Hex()
	}
	return nil
}

// GetBySessionID returns answers ordered by timestamp, the order the CSV
// export presents them in.
func (r *answerRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.Answer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []*model.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
