package service

import (
	"encoding/json"
	"log"
	"strings"

	"avatarsurvey/internal/model"
)

// Machine block wire markers. The prompt in prompt.go instructs the agent
// to emit exactly this format; the two must stay in lock-step.
const (
	machineOpen  = "<machine>"
	machineClose = "</machine>"
)

// ExtractMachineBlock locates and decodes a machine block embedded in a
// conversational turn. Returns nil when no block is present, which is the
// common case for most turns. Malformed payloads are logged and reported
// as absent; this function is called on every streamed message and must
// never fail the session.
//
// Only the first occurrence of each marker is honored. A close marker
// appearing before the open marker is treated as absent. Marker text
// inside JSON string values is not escaped; the slice boundary is purely
// lexical.
func ExtractMachineBlock(text string) *model.MachineBlock {
	start := strings.Index(text, machineOpen)
	end := strings.Index(text, machineClose)

	if start == -1 || end == -1 {
		return nil
	}

	payloadStart := start + len(machineOpen)
	if payloadStart > end {
		log.Printf("[Machine] close marker precedes open marker, ignoring block")
		return nil
	}

	raw := strings.TrimSpace(text[payloadStart:end])

	var block model.MachineBlock
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		log.Printf("[Machine] failed to parse machine block: %v", err)
		return nil
	}

	return &block
}
