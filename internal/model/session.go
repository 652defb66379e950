package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// Session is one participant's end-to-end interaction with a survey.
// The rendered system prompt is snapshotted at start; later survey edits
// do not retroactively change it.
type Session struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	SurveyID      string        `json:"surveyId" bson:"surveyId"`
	ParticipantID string        `json:"participantId" bson:"participantId"`
	Status        SessionStatus `json:"status" bson:"status"`
	StartedAt     time.Time     `json:"startedAt" bson:"startedAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}
