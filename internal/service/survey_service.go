package service

import (
	"context"
	"errors"
	"fmt"

	"avatarsurvey/internal/cache"
	"avatarsurvey/internal/model"
	"avatarsurvey/internal/repository"
)

var ErrInvalidSurvey = errors.New("invalid survey")

// SurveyService handles survey CRUD operations. Validation lives here:
// the prompt synthesizer assumes its preconditions (non-empty question
// list, non-empty persona fields) were checked before a survey was ever
// stored, so they are enforced on every write.
type SurveyService struct {
	surveyRepo  repository.SurveyRepo
	surveyCache cache.SurveyCache
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo, surveyCache cache.SurveyCache) *SurveyService {
	return &SurveyService{
		surveyRepo:  surveyRepo,
		surveyCache: surveyCache,
	}
}

// Create validates and stores a new survey
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) (string, error) {
	assignQuestionIDs(survey.Questions)
	if err := validateSurvey(survey); err != nil {
		return "", err
	}
	return s.surveyRepo.Create(ctx, survey)
}

// GetByID retrieves a survey, serving from cache when possible
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	if cached, err := s.surveyCache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey != nil {
		s.surveyCache.Set(ctx, survey)
	}
	return survey, nil
}

// List retrieves all surveys
func (s *SurveyService) List(ctx context.Context) ([]*model.Survey, error) {
	return s.surveyRepo.List(ctx)
}

// Update validates and replaces an existing survey. Sessions already
// running keep the prompt rendered at their start.
func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) error {
	assignQuestionIDs(survey.Questions)
	if err := validateSurvey(survey); err != nil {
		return err
	}
	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return err
	}
	return s.surveyCache.Delete(ctx, survey.ID)
}

// Delete removes a survey
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.surveyCache.Delete(ctx, id)
}

// assignQuestionIDs fills in Q1..Qn ids for questions created without one
func assignQuestionIDs(questions []model.Question) {
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = fmt.Sprintf("Q%d", i+1)
		}
	}
}

// validateSurvey enforces the synthesizer's preconditions and the
// per-type question constraints.
func validateSurvey(survey *model.Survey) error {
	if survey.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSurvey)
	}
	p := survey.PersonaConfig
	if p.Name == "" || p.AvatarID == "" || p.VoiceID == "" {
		return fmt.Errorf("%w: persona name, avatarId and voiceId are required", ErrInvalidSurvey)
	}
	if len(survey.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrInvalidSurvey)
	}

	seen := make(map[string]bool, len(survey.Questions))
	for _, q := range survey.Questions {
		if q.Text == "" {
			return fmt.Errorf("%w: question %s has no text", ErrInvalidSurvey, q.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %s", ErrInvalidSurvey, q.ID)
		}
		seen[q.ID] = true

		switch q.Type {
		case model.QuestionTypeChoice:
			if len(q.Choices) == 0 {
				return fmt.Errorf("%w: choice question %s has no choices", ErrInvalidSurvey, q.ID)
			}
		case model.QuestionTypeOpen, model.QuestionTypeNumeric:
			if len(q.Choices) > 0 {
				return fmt.Errorf("%w: %s question %s must not carry choices", ErrInvalidSurvey, q.Type, q.ID)
			}
		default:
			return fmt.Errorf("%w: question %s has unknown type %q", ErrInvalidSurvey, q.ID, q.Type)
		}
	}
	return nil
}
