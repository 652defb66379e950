package model

// BlockStatus is the lifecycle state a machine block reports for a question
type BlockStatus string

const (
	BlockAnswered BlockStatus = "answered"
	BlockSkipped  BlockStatus = "skipped"
	BlockPending  BlockStatus = "pending"
)

// BlockAnswer carries the type-dependent answer fields of a machine block.
// Open questions use Text, numeric questions use Numeric, choice questions
// use Text holding the chosen option's label.
type BlockAnswer struct {
	Text     string   `json:"text,omitempty"`
	ChoiceID string   `json:"choiceId,omitempty"`
	Numeric  *float64 `json:"numeric,omitempty"`
}

// MachineBlock is the structured payload the agent embeds in conversational
// text between <machine> and </machine> markers. It is a wire artifact:
// decoded as-is, with no validation against the survey's question set at
// this layer.
type MachineBlock struct {
	QuestionID string       `json:"questionId"`
	Status     BlockStatus  `json:"status"`
	Answer     *BlockAnswer `json:"answer,omitempty"`
	NeedsProbe bool         `json:"needsProbe,omitempty"`
}
