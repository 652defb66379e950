package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"avatarsurvey/internal/model"
)

// SessionRepo handles MongoDB operations for participant sessions.
// Session ids are client-visible UUID strings, not ObjectIDs.
type SessionRepo interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	GetBySurveyID(ctx context.Context, surveyID string) ([]*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
}

type sessionRepo struct {
	collection *mongo.Collection
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("sessions"),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.Session, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	return err
}
