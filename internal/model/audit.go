package model

// AuditFindingKind classifies a transcript audit finding
type AuditFindingKind string

const (
	AuditUnknownQuestion  AuditFindingKind = "unknown_question"
	AuditDuplicateAnswer  AuditFindingKind = "duplicate_answer"
	AuditProbeCapExceeded AuditFindingKind = "probe_cap_exceeded"
	AuditMissingRequired  AuditFindingKind = "missing_required"
)

// AuditFinding is one observed deviation from the instructed interview
// policy. Findings are advisory: they flag agent behavior for operator
// review and never reject live traffic.
type AuditFinding struct {
	Kind       AuditFindingKind `json:"kind"`
	QuestionID string           `json:"questionId,omitempty"`
	TurnIndex  int              `json:"turnIndex,omitempty"` // index into the ordered transcript
	Detail     string           `json:"detail"`
}
