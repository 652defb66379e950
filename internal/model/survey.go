package model

import "time"

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeOpen    QuestionType = "open"    // Free text, probed for depth
	QuestionTypeNumeric QuestionType = "numeric" // Rating or count, probed once for rationale
	QuestionTypeChoice  QuestionType = "choice"  // Pick one from a fixed option list
)

// BranchingRule declares conditional sequencing for a question.
// Declared on the survey but acted on by the instructed agent, not by this core.
type BranchingRule struct {
	Condition      string `json:"condition" bson:"condition"` // e.g., "answer > 100"
	NextQuestionID string `json:"nextQuestionId" bson:"nextQuestionId"`
}

// Question is one entry in a survey's ordered question list
type Question struct {
	ID             string          `json:"id" bson:"id"` // stable addressable key, e.g., "Q1"
	Type           QuestionType    `json:"type" bson:"type"`
	Text           string          `json:"text" bson:"text"`
	Required       bool            `json:"required" bson:"required"`
	Choices        []string        `json:"choices,omitempty" bson:"choices,omitempty"` // choice type only
	Probes         []string        `json:"probes,omitempty" bson:"probes,omitempty"`   // suggested follow-up phrasings
	BranchingRules []BranchingRule `json:"branchingRules,omitempty" bson:"branchingRules,omitempty"`
}

// PersonaConfig identifies the rendered avatar persona and its governing prompt.
// Immutable once a session starts.
type PersonaConfig struct {
	Name         string `json:"name" bson:"name"`
	AvatarID     string `json:"avatarId" bson:"avatarId"`
	VoiceID      string `json:"voiceId" bson:"voiceId"`
	LLMID        string `json:"llmId,omitempty" bson:"llmId,omitempty"`
	SystemPrompt string `json:"systemPrompt,omitempty" bson:"systemPrompt,omitempty"`
}

// Survey is the persistent template an administrator creates.
// Question order is significant: it defines the interview sequence.
type Survey struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	Title         string        `json:"title" bson:"title"`
	PersonaConfig PersonaConfig `json:"personaConfig" bson:"personaConfig"`
	Questions     []Question    `json:"questions" bson:"questions"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// QuestionByID looks up a question by its stable id
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
