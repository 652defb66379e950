package service

import (
	"context"
	"strings"

	"avatarsurvey/internal/repository"
)

// csvBOM is the UTF-8 byte order mark Excel needs to detect encoding
const csvBOM = "\uFEFF"

// ExportService renders session results as Excel-compatible CSV
type ExportService struct {
	sessionSvc *SessionService
	surveySvc  *SurveyService
	answerRepo repository.AnswerRepo
}

// NewExportService creates a new export service
func NewExportService(sessionSvc *SessionService, surveySvc *SurveyService, answerRepo repository.AnswerRepo) *ExportService {
	return &ExportService{
		sessionSvc: sessionSvc,
		surveySvc:  surveySvc,
		answerRepo: answerRepo,
	}
}

// ExportSessionCSV builds the CSV document for one session's structured
// answers, ordered by timestamp, with question text joined in from the
// survey definition.
func (s *ExportService) ExportSessionCSV(ctx context.Context, sessionID string) (string, error) {
	session, err := s.sessionSvc.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", ErrSessionNotFound
	}

	survey, err := s.surveySvc.GetByID(ctx, session.SurveyID)
	if err != nil {
		return "", err
	}

	answers, err := s.answerRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return "", err
	}

	questionText := make(map[string]string)
	if survey != nil {
		for _, q := range survey.Questions {
			questionText[q.ID] = q.Text
		}
	}

	rows := []string{"participantId,questionId,questionText,answerText,timestamp"}
	for _, answer := range answers {
		row := []string{
			escapeCSV(session.ParticipantID),
			escapeCSV(answer.QuestionID),
			escapeCSV(questionText[answer.QuestionID]),
			escapeCSV(answer.AnswerText),
			escapeCSV(answer.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")),
		}
		rows = append(rows, strings.Join(row, ","))
	}

	return csvBOM + strings.Join(rows, "\n"), nil
}

// Filename returns the download filename for a session export
func (s *ExportService) Filename(sessionID string) string {
	return "survey-results-" + sessionID + ".csv"
}

// escapeCSV quotes a value when it contains a comma, quote or newline,
// doubling embedded quotes
func escapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
