package service

import (
	"fmt"
	"strings"
	"testing"

	"avatarsurvey/internal/model"
)

func sampleQuestions() []model.Question {
	return []model.Question{
		{
			ID:       "Q1",
			Type:     model.QuestionTypeOpen,
			Text:     "What does your company use our product for?",
			Required: true,
			Probes:   []string{"Which teams rely on it?", "Walk me through a workflow"},
		},
		{
			ID:       "Q2",
			Type:     model.QuestionTypeNumeric,
			Text:     "How likely are you to recommend us, 1 to 10?",
			Required: true,
		},
		{
			ID:      "Q3",
			Type:    model.QuestionTypeChoice,
			Text:    "Which plan are you on?",
			Choices: []string{"Starter", "Growth", "Enterprise"},
		},
	}
}

func TestBuildSystemPromptDeterministic(t *testing.T) {
	questions := sampleQuestions()
	first := BuildSystemPrompt("Customer Research Survey", "Jordan", questions)
	second := BuildSystemPrompt("Customer Research Survey", "Jordan", questions)
	if first != second {
		t.Error("identical inputs produced different prompts")
	}
}

func TestBuildSystemPromptQuestionOrder(t *testing.T) {
	prompt := BuildSystemPrompt("Customer Research Survey", "Jordan", sampleQuestions())

	q1 := strings.Index(prompt, "1. [Q1]")
	q2 := strings.Index(prompt, "2. [Q2]")
	q3 := strings.Index(prompt, "3. [Q3]")
	if q1 == -1 || q2 == -1 || q3 == -1 {
		t.Fatalf("numbered question blocks missing from prompt:\n%s", prompt)
	}
	if !(q1 < q2 && q2 < q3) {
		t.Error("question blocks out of declared order")
	}
}

func TestBuildSystemPromptChoiceOptions(t *testing.T) {
	prompt := BuildSystemPrompt("Customer Research Survey", "Jordan", sampleQuestions())

	if !strings.Contains(prompt, "Options: Starter, Growth, Enterprise") {
		t.Error("choice options not rendered")
	}
	if !strings.Contains(prompt, "Probes: Which teams rely on it?; Walk me through a workflow") {
		t.Error("probe suggestions not rendered")
	}
	// Q2 has no choices or probes, its block stays a single line
	if strings.Contains(prompt, "2. [Q2] How likely are you to recommend us, 1 to 10?\n   Options:") {
		t.Error("options line rendered for a non-choice question")
	}
}

func TestBuildSystemPromptPersonaAndTopic(t *testing.T) {
	prompt := BuildSystemPrompt("B2B SaaS Customer Research Survey", "Jordan", sampleQuestions())

	if !strings.Contains(prompt, "You are Jordan, an AI research interviewer.") {
		t.Error("persona name not in role section")
	}
	if !strings.Contains(prompt, "Survey Topic: B2B SaaS Customer Research\n") {
		t.Error("trailing Survey word not stripped from topic")
	}
	if !strings.Contains(prompt, "Total Questions: 3") {
		t.Error("question count not rendered")
	}
	if !strings.Contains(prompt, `"Hello! I'm Jordan, an AI research interviewer. I'm going to ask you a series of questions related to B2B SaaS Customer Research. Let's begin."`) {
		t.Error("greeting line not rendered with persona and topic")
	}
}

func TestBuildSystemPromptPreservesQuestionIDs(t *testing.T) {
	questions := []model.Question{
		{ID: "intro", Type: model.QuestionTypeOpen, Text: "Tell me about yourself"},
		{ID: "nps", Type: model.QuestionTypeNumeric, Text: "Rate us 1-10"},
	}
	prompt := BuildSystemPrompt("Feedback Survey", "Alex", questions)

	for i, q := range questions {
		if !strings.Contains(prompt, fmt.Sprintf("%d. [%s] %s", i+1, q.ID, q.Text)) {
			t.Errorf("question %s not rendered with its declared id", q.ID)
		}
	}
}

func TestSurveyTopic(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"B2B SaaS Customer Research Survey", "B2B SaaS Customer Research"},
		{"Customer survey", "Customer"},
		{"Customer SURVEY", "Customer"},
		{"Survey", "Survey"},
		{"Exit Interviews", "Exit Interviews"},
		{"MicroSurvey", "MicroSurvey"},
		{"  Pricing Survey  ", "Pricing"},
	}
	for _, tt := range tests {
		if got := surveyTopic(tt.title); got != tt.want {
			t.Errorf("surveyTopic(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
