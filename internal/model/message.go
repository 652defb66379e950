package model

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one raw conversational turn in a session transcript
type Message struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	SessionID string      `json:"sessionId" bson:"sessionId"`
	Role      MessageRole `json:"role" bson:"role"`
	Text      string      `json:"text" bson:"text"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
