package model

import "time"

// IngestKind discriminates the three ingest payload shapes
type IngestKind string

const (
	IngestSessionStart IngestKind = "session_start"
	IngestMessage      IngestKind = "message"
	IngestAnswer       IngestKind = "answer"
)

// IngestSession identifies the session an ingest payload belongs to
type IngestSession struct {
	ID            string `json:"id"`
	SurveyID      string `json:"surveyId"`
	ParticipantID string `json:"participantId"`
	Status        string `json:"status,omitempty"`
}

// IngestMessageBody is a transcript turn delivered by the client
type IngestMessageBody struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// IngestRequest is the envelope for POST /v1/ingest
type IngestRequest struct {
	Kind    IngestKind         `json:"kind"`
	Session IngestSession      `json:"session"`
	Message *IngestMessageBody `json:"message,omitempty"`
	Answer  *Answer            `json:"answer,omitempty"`
}

// IngestResponse acknowledges an ingest request
type IngestResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
