package service

import (
	"fmt"

	"avatarsurvey/internal/model"
)

// maxProbesPerQuestion is the cap the prompt instructs the agent to
// self-enforce. The live path cannot guarantee compliance, so the audit
// pass measures it after the fact.
const maxProbesPerQuestion = 2

// AuditTranscript replays an ordered session transcript against its survey
// and reports deviations from the instructed interview policy: machine
// blocks addressing unknown questions, duplicate answers, probe-cap
// overruns, and required questions that never received an answer.
//
// Findings are advisory. The agent is a generative model behind a trust
// boundary; observed violations are flagged for operator review, never
// rejected.
func AuditTranscript(survey *model.Survey, messages []model.Message) []model.AuditFinding {
	findings := []model.AuditFinding{}
	answered := make(map[string]bool)

	// Assistant turns seen since the last machine block. The first such
	// turn asks the question; anything beyond it is a probe.
	turnsSinceBlock := 0

	for i, msg := range messages {
		if msg.Role != model.RoleAssistant {
			continue
		}

		block := ExtractMachineBlock(msg.Text)
		if block == nil {
			turnsSinceBlock++
			continue
		}

		if survey.QuestionByID(block.QuestionID) == nil {
			findings = append(findings, model.AuditFinding{
				Kind:       model.AuditUnknownQuestion,
				QuestionID: block.QuestionID,
				TurnIndex:  i,
				Detail:     fmt.Sprintf("machine block references %q, which is not in survey %s", block.QuestionID, survey.ID),
			})
		}

		if probes := turnsSinceBlock - 1; probes > maxProbesPerQuestion {
			findings = append(findings, model.AuditFinding{
				Kind:       model.AuditProbeCapExceeded,
				QuestionID: block.QuestionID,
				TurnIndex:  i,
				Detail:     fmt.Sprintf("%d probes issued before answering %s (cap is %d)", probes, block.QuestionID, maxProbesPerQuestion),
			})
		}

		if block.Status == model.BlockAnswered {
			if answered[block.QuestionID] {
				findings = append(findings, model.AuditFinding{
					Kind:       model.AuditDuplicateAnswer,
					QuestionID: block.QuestionID,
					TurnIndex:  i,
					Detail:     fmt.Sprintf("question %s answered more than once", block.QuestionID),
				})
			}
			answered[block.QuestionID] = true
		}

		turnsSinceBlock = 0
	}

	for _, q := range survey.Questions {
		if q.Required && !answered[q.ID] {
			findings = append(findings, model.AuditFinding{
				Kind:       model.AuditMissingRequired,
				QuestionID: q.ID,
				Detail:     fmt.Sprintf("required question %s has no answered machine block", q.ID),
			})
		}
	}

	return findings
}
