package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"avatarsurvey/internal/model"
)

// SurveyCache handles Redis read-through caching for survey definitions.
// Participant session starts are read-heavy against a survey that rarely
// changes; writes invalidate.
type SurveyCache interface {
	Set(ctx context.Context, survey *model.Survey) error
	Get(ctx context.Context, id string) (*model.Survey, error)
	Delete(ctx context.Context, id string) error
}

type surveyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSurveyCache creates a new survey cache
func NewSurveyCache(client *redis.Client) SurveyCache {
	return &surveyCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *surveyCache) key(id string) string {
	return fmt.Sprintf("survey:%s", id)
}

func (c *surveyCache) Set(ctx context.Context, survey *model.Survey) error {
	data, err := json.Marshal(survey)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(survey.ID), data, c.ttl).Err()
}

func (c *surveyCache) Get(ctx context.Context, id string) (*model.Survey, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var survey model.Survey
	if err := json.Unmarshal([]byte(data), &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (c *surveyCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
