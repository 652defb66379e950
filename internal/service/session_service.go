package service

import (
	"context"
	"errors"
	"log"
	"time"

	"avatarsurvey/internal/cache"
	"avatarsurvey/internal/model"
	"avatarsurvey/internal/repository"
)

var (
	ErrSurveyNotFound  = errors.New("survey not found")
	ErrSessionNotFound = errors.New("session not found")
)

// SessionService owns the session lifecycle: token creation at session
// start, idempotent registration, and the completed/abandoned transitions.
type SessionService struct {
	surveySvc    *SurveyService
	sessionRepo  repository.SessionRepo
	messageRepo  repository.MessageRepo
	sessionCache cache.SessionCache
	promptCache  cache.PromptCache
	avatar       AvatarClient
	broadcaster  Broadcaster
}

// NewSessionService creates a new session service
func NewSessionService(
	surveySvc *SurveyService,
	sessionRepo repository.SessionRepo,
	messageRepo repository.MessageRepo,
	sessionCache cache.SessionCache,
	promptCache cache.PromptCache,
	avatar AvatarClient,
) *SessionService {
	return &SessionService{
		surveySvc:    surveySvc,
		sessionRepo:  sessionRepo,
		messageRepo:  messageRepo,
		sessionCache: sessionCache,
		promptCache:  promptCache,
		avatar:       avatar,
	}
}

// SetBroadcaster sets the broadcaster for live observer events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateSessionToken renders the survey's system prompt and exchanges it
// for an avatar session token. The prompt is synthesized exactly once
// here; the returned token is what the browser hands to the avatar SDK.
func (s *SessionService) CreateSessionToken(ctx context.Context, surveyID, sessionID string) (string, error) {
	survey, err := s.surveySvc.GetByID(ctx, surveyID)
	if err != nil {
		return "", err
	}
	if survey == nil {
		return "", ErrSurveyNotFound
	}

	persona := survey.PersonaConfig
	persona.SystemPrompt = BuildSystemPrompt(survey.Title, persona.Name, survey.Questions)

	token, err := s.avatar.CreateSessionToken(ctx, persona)
	if err != nil {
		return "", err
	}

	// Snapshot the rendered prompt so mid-session survey edits cannot
	// change what the live agent was instructed with.
	if sessionID != "" {
		if err := s.promptCache.Set(ctx, sessionID, persona.SystemPrompt); err != nil {
			log.Printf("[Session] failed to cache prompt for session %s: %v", sessionID, err)
		}
	}

	return token, nil
}

// EnsureSession registers a session, tolerating duplicate session_start
// events from the client.
func (s *SessionService) EnsureSession(ctx context.Context, session *model.Session) error {
	existing, err := s.sessionRepo.GetByID(ctx, session.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if session.Status == "" {
		session.Status = model.SessionActive
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return err
	}
	return s.sessionCache.Set(ctx, session)
}

// GetByID retrieves a session, serving from cache when possible
func (s *SessionService) GetByID(ctx context.Context, id string) (*model.Session, error) {
	if cached, err := s.sessionCache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}
	return s.sessionRepo.GetByID(ctx, id)
}

// SetStatus moves a session to completed or abandoned
func (s *SessionService) SetStatus(ctx context.Context, id string, status model.SessionStatus) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	session.Status = status
	if status == model.SessionCompleted || status == model.SessionAbandoned {
		now := time.Now()
		session.CompletedAt = &now
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("[Session] failed to refresh cache for session %s: %v", id, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToObservers(id, "session_ended", session)
	}
	return session, nil
}

// Transcript returns the ordered message history of a session
func (s *SessionService) Transcript(ctx context.Context, sessionID string) ([]*model.Message, error) {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return s.messageRepo.GetBySessionID(ctx, sessionID)
}

// Audit replays a session transcript against its survey and returns
// policy findings. Offline review only; never affects live ingestion.
func (s *SessionService) Audit(ctx context.Context, sessionID string) ([]model.AuditFinding, error) {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	survey, err := s.surveySvc.GetByID(ctx, session.SurveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	messages, err := s.messageRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	transcript := make([]model.Message, len(messages))
	for i, m := range messages {
		transcript[i] = *m
	}
	return AuditTranscript(survey, transcript), nil
}
