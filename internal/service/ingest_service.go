package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"avatarsurvey/internal/model"
	"avatarsurvey/internal/repository"
)

var ErrUnknownIngestKind = errors.New("invalid request kind")

// IngestService receives session starts, transcript turns and structured
// answers from the participant client. Assistant turns are scanned for
// machine blocks; an answered block becomes a stored Answer. Per session,
// calls arrive and are processed in transcript order.
type IngestService struct {
	sessionSvc  *SessionService
	surveySvc   *SurveyService
	messageRepo repository.MessageRepo
	answerRepo  repository.AnswerRepo
	broadcaster Broadcaster
}

// NewIngestService creates a new ingest service
func NewIngestService(
	sessionSvc *SessionService,
	surveySvc *SurveyService,
	messageRepo repository.MessageRepo,
	answerRepo repository.AnswerRepo,
) *IngestService {
	return &IngestService{
		sessionSvc:  sessionSvc,
		surveySvc:   surveySvc,
		messageRepo: messageRepo,
		answerRepo:  answerRepo,
	}
}

// SetBroadcaster sets the broadcaster for live observer events
func (s *IngestService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Process dispatches one ingest request by kind
func (s *IngestService) Process(ctx context.Context, req *model.IngestRequest) error {
	switch req.Kind {
	case model.IngestSessionStart:
		return s.processSessionStart(ctx, req)
	case model.IngestMessage:
		return s.processMessage(ctx, req)
	case model.IngestAnswer:
		return s.processAnswer(ctx, req)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIngestKind, req.Kind)
	}
}

func (s *IngestService) processSessionStart(ctx context.Context, req *model.IngestRequest) error {
	if req.Session.ID == "" || req.Session.SurveyID == "" {
		return fmt.Errorf("session id and surveyId are required")
	}
	return s.sessionSvc.EnsureSession(ctx, &model.Session{
		ID:            req.Session.ID,
		SurveyID:      req.Session.SurveyID,
		ParticipantID: req.Session.ParticipantID,
		Status:        model.SessionStatus(req.Session.Status),
	})
}

// processMessage stores a transcript turn, then runs block extraction on
// assistant turns. Structured answers found inline are persisted without
// waiting for a separate answer ingest from the client.
func (s *IngestService) processMessage(ctx context.Context, req *model.IngestRequest) error {
	if req.Message == nil {
		return fmt.Errorf("message payload is required")
	}

	message := &model.Message{
		SessionID: req.Session.ID,
		Role:      req.Message.Role,
		Text:      req.Message.Text,
		Timestamp: req.Message.Timestamp,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToObservers(req.Session.ID, "message", message)
	}

	if message.Role != model.RoleAssistant {
		return nil
	}

	block := ExtractMachineBlock(message.Text)
	if block == nil || block.Status != model.BlockAnswered {
		return nil
	}

	return s.recordAnswer(ctx, req.Session, block)
}

// processAnswer stores an answer the client already extracted itself
func (s *IngestService) processAnswer(ctx context.Context, req *model.IngestRequest) error {
	if req.Answer == nil {
		return fmt.Errorf("answer payload is required")
	}

	answer := &model.Answer{
		SessionID:  req.Session.ID,
		QuestionID: req.Answer.QuestionID,
		AnswerText: req.Answer.AnswerText,
		AnswerJSON: req.Answer.AnswerJSON,
		Confidence: req.Answer.Confidence,
	}
	s.flagUnknownQuestion(ctx, req.Session, answer.QuestionID)
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToObservers(req.Session.ID, "answer", answer)
	}
	return nil
}

// recordAnswer persists a machine block extracted from an assistant turn
func (s *IngestService) recordAnswer(ctx context.Context, sess model.IngestSession, block *model.MachineBlock) error {
	answer := &model.Answer{
		SessionID:  sess.ID,
		QuestionID: block.QuestionID,
		Timestamp:  time.Now(),
	}
	if block.Answer != nil {
		answer.AnswerText = block.Answer.Text
		answer.AnswerJSON = map[string]interface{}{
			"questionId": block.QuestionID,
			"status":     string(block.Status),
		}
		answerFields := map[string]interface{}{}
		if block.Answer.Text != "" {
			answerFields["text"] = block.Answer.Text
		}
		if block.Answer.ChoiceID != "" {
			answerFields["choiceId"] = block.Answer.ChoiceID
		}
		if block.Answer.Numeric != nil {
			answerFields["numeric"] = *block.Answer.Numeric
		}
		answer.AnswerJSON["answer"] = answerFields
	}

	s.flagUnknownQuestion(ctx, sess, block.QuestionID)

	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToObservers(sess.ID, "answer", answer)
	}
	return nil
}

// flagUnknownQuestion logs answers that reference a question id the
// survey does not define. The agent sits behind a trust boundary: a
// stray id is operator-review material, never a rejection.
func (s *IngestService) flagUnknownQuestion(ctx context.Context, sess model.IngestSession, questionID string) {
	if sess.SurveyID == "" {
		return
	}
	survey, err := s.surveySvc.GetByID(ctx, sess.SurveyID)
	if err != nil || survey == nil {
		return
	}
	if survey.QuestionByID(questionID) != nil {
		return
	}

	log.Printf("[Ingest] session %s: machine block references unknown question %q (survey %s)", sess.ID, questionID, sess.SurveyID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToObservers(sess.ID, "audit_flag", model.AuditFinding{
			Kind:       model.AuditUnknownQuestion,
			QuestionID: questionID,
			Detail:     fmt.Sprintf("machine block references %q, which is not in survey %s", questionID, sess.SurveyID),
		})
	}
}
