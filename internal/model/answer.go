package model

import "time"

// Answer is a structured result ingested from a machine block
type Answer struct {
	ID         string                 `json:"id" bson:"_id,omitempty"`
	SessionID  string                 `json:"sessionId" bson:"sessionId"`
	QuestionID string                 `json:"questionId" bson:"questionId"`
	AnswerText string                 `json:"answerText,omitempty" bson:"answerText,omitempty"`
	AnswerJSON map[string]interface{} `json:"answerJson,omitempty" bson:"answerJson,omitempty"`
	Confidence *float64               `json:"confidence,omitempty" bson:"confidence,omitempty"`
	Timestamp  time.Time              `json:"timestamp" bson:"timestamp"`
}
