package service

import (
	"encoding/json"
	"reflect"
	"testing"

	"avatarsurvey/internal/model"
)

func TestExtractMachineBlockAnswered(t *testing.T) {
	text := `Thanks for sharing that! <machine>{"questionId": "Q1", "status": "answered", "answer": {"text": "We use it for onboarding"}}</machine> Let's move on.`

	block := ExtractMachineBlock(text)
	if block == nil {
		t.Fatal("expected a block, got nil")
	}
	if block.QuestionID != "Q1" {
		t.Errorf("questionId = %q, want Q1", block.QuestionID)
	}
	if block.Status != model.BlockAnswered {
		t.Errorf("status = %q, want answered", block.Status)
	}
	if block.Answer == nil || block.Answer.Text != "We use it for onboarding" {
		t.Errorf("answer text not decoded: %+v", block.Answer)
	}
}

func TestExtractMachineBlockNumeric(t *testing.T) {
	text := `<machine>{"questionId": "Q2", "status": "answered", "answer": {"numeric": 7, "text": "7"}}</machine>`

	block := ExtractMachineBlock(text)
	if block == nil {
		t.Fatal("expected a block, got nil")
	}
	if block.Answer == nil || block.Answer.Numeric == nil || *block.Answer.Numeric != 7 {
		t.Errorf("numeric answer not decoded: %+v", block.Answer)
	}
}

func TestExtractMachineBlockSkipped(t *testing.T) {
	text := `No problem, we can skip that one. <machine>{"questionId": "Q3", "status": "skipped"}</machine>`

	block := ExtractMachineBlock(text)
	if block == nil {
		t.Fatal("expected a block, got nil")
	}
	if block.Status != model.BlockSkipped {
		t.Errorf("status = %q, want skipped", block.Status)
	}
	if block.Answer != nil {
		t.Errorf("expected nil answer, got %+v", block.Answer)
	}
}

func TestExtractMachineBlockAbsent(t *testing.T) {
	cases := []string{
		"",
		"Just a normal conversational turn with no block at all.",
		// no close marker
		`<machine>{"questionId": "Q1"}`,
		// no open marker
		`{"questionId": "Q1"}</machine>`,
		// close before open
		`</machine>{"questionId": "Q1"}<machine>`,
	}
	for _, text := range cases {
		if block := ExtractMachineBlock(text); block != nil {
			t.Errorf("ExtractMachineBlock(%q) = %+v, want nil", text, block)
		}
	}
}

func TestExtractMachineBlockMalformedJSON(t *testing.T) {
	text := `<machine>{"questionId": "Q1", "status": }</machine>`

	if block := ExtractMachineBlock(text); block != nil {
		t.Errorf("malformed payload should be reported as absent, got %+v", block)
	}
}

func TestExtractMachineBlockFirstOfTwo(t *testing.T) {
	text := `<machine>{"questionId": "Q1", "status": "answered"}</machine> and later <machine>{"questionId": "Q2", "status": "answered"}</machine>`

	block := ExtractMachineBlock(text)
	if block == nil {
		t.Fatal("expected a block, got nil")
	}
	if block.QuestionID != "Q1" {
		t.Errorf("questionId = %q, want the first block's Q1", block.QuestionID)
	}
}

func TestExtractMachineBlockRoundTrip(t *testing.T) {
	numeric := 7.0
	original := &model.MachineBlock{
		QuestionID: "Q2",
		Status:     model.BlockAnswered,
		Answer: &model.BlockAnswer{
			Text:    "7",
			Numeric: &numeric,
		},
		NeedsProbe: true,
	}

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal block: %v", err)
	}

	extracted := ExtractMachineBlock("Got it. " + machineOpen + string(payload) + machineClose + " Next question.")
	if extracted == nil {
		t.Fatal("expected a block, got nil")
	}
	if !reflect.DeepEqual(original, extracted) {
		t.Errorf("round trip changed the block:\noriginal:  %+v\nextracted: %+v", original, extracted)
	}
}

func TestExtractMachineBlockWhitespacePadding(t *testing.T) {
	text := "<machine>\n  {\"questionId\": \"Q1\", \"status\": \"pending\", \"needsProbe\": true}\n</machine>"

	block := ExtractMachineBlock(text)
	if block == nil {
		t.Fatal("expected a block, got nil")
	}
	if block.Status != model.BlockPending || !block.NeedsProbe {
		t.Errorf("pending block not decoded: %+v", block)
	}
}
