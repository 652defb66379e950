package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"avatarsurvey/internal/model"
)

// In-memory repository and cache implementations shared by the service
// tests. They mirror the MongoDB repos' not-found convention: (nil, nil).

type memSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]*model.Survey
	nextID  int
}

func newMemSurveyRepo() *memSurveyRepo {
	return &memSurveyRepo{surveys: map[string]*model.Survey{}}
}

func (r *memSurveyRepo) Create(ctx context.Context, survey *model.Survey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	survey.ID = fmt.Sprintf("survey-%d", r.nextID)
	copied := *survey
	r.surveys[survey.ID] = &copied
	return survey.ID, nil
}

func (r *memSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	survey, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	copied := *survey
	return &copied, nil
}

func (r *memSurveyRepo) List(ctx context.Context) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Survey, 0, len(r.surveys))
	for _, s := range r.surveys {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memSurveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *survey
	r.surveys[survey.ID] = &copied
	return nil
}

func (r *memSurveyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*model.Session{}}
}

func (r *memSessionRepo) Create(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Session
	for _, s := range r.sessions {
		if s.SurveyID == surveyID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memSessionRepo) Update(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages []*model.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) Create(ctx context.Context, message *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = fmt.Sprintf("msg-%d", len(r.messages)+1)
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *memMessageRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Message
	for _, m := range r.messages {
		if m.SessionID == sessionID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memAnswerRepo struct {
	mu      sync.Mutex
	answers []*model.Answer
}

func newMemAnswerRepo() *memAnswerRepo {
	return &memAnswerRepo{}
}

func (r *memAnswerRepo) Create(ctx context.Context, answer *model.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	answer.ID = fmt.Sprintf("ans-%d", len(r.answers)+1)
	copied := *answer
	r.answers = append(r.answers, &copied)
	return nil
}

func (r *memAnswerRepo) GetBySessionID(ctx context.Context, sessionID string) ([]*model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Answer
	for _, a := range r.answers {
		if a.SessionID == sessionID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memAnswerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.answers {
		if a.ID == id {
			r.answers = append(r.answers[:i], r.answers[i+1:]...)
			return nil
		}
	}
	return nil
}

type memSurveyCache struct {
	mu      sync.Mutex
	surveys map[string]*model.Survey
}

func newMemSurveyCache() *memSurveyCache {
	return &memSurveyCache{surveys: map[string]*model.Survey{}}
}

func (c *memSurveyCache) Set(ctx context.Context, survey *model.Survey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *survey
	c.surveys[survey.ID] = &copied
	return nil
}

func (c *memSurveyCache) Get(ctx context.Context, id string) (*model.Survey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	survey, ok := c.surveys[id]
	if !ok {
		return nil, nil
	}
	copied := *survey
	return &copied, nil
}

func (c *memSurveyCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.surveys, id)
	return nil
}

type memSessionCache struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newMemSessionCache() *memSessionCache {
	return &memSessionCache{sessions: map[string]*model.Session{}}
}

func (c *memSessionCache) Set(ctx context.Context, session *model.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *session
	c.sessions[session.ID] = &copied
	return nil
}

func (c *memSessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session, ok := c.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (c *memSessionCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	return nil
}

type memPromptCache struct {
	mu      sync.Mutex
	prompts map[string]string
}

func newMemPromptCache() *memPromptCache {
	return &memPromptCache{prompts: map[string]string{}}
}

func (c *memPromptCache) Set(ctx context.Context, sessionID, prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts[sessionID] = prompt
	return nil
}

func (c *memPromptCache) Get(ctx context.Context, sessionID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompts[sessionID], nil
}

func (c *memPromptCache) Delete(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.prompts, sessionID)
	return nil
}

// fakeAvatarClient records the persona it was handed and returns a fixed token
type fakeAvatarClient struct {
	persona model.PersonaConfig
	token   string
	err     error
}

func (c *fakeAvatarClient) CreateSessionToken(ctx context.Context, persona model.PersonaConfig) (string, error) {
	c.persona = persona
	if c.err != nil {
		return "", c.err
	}
	return c.token, nil
}

func (c *fakeAvatarClient) IsConfigured() bool { return true }

// recordingBroadcaster captures observer events in arrival order
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

type broadcastEvent struct {
	SessionID string
	Type      string
	Payload   interface{}
}

func (b *recordingBroadcaster) BroadcastToObservers(sessionID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{SessionID: sessionID, Type: msgType, Payload: payload})
}

func (b *recordingBroadcaster) eventTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]string, len(b.events))
	for i, e := range b.events {
		types[i] = e.Type
	}
	return types
}
