// Package web serves the trainer to a browser over a websocket.
package web

import (
	"encoding/json"
	"strings"

	"github.com/verte-zerg/typeracer/internal/model"
)

// Client message types.
const (
	msgLevel = "level"
	msgStart = "start"
	msgStop  = "stop"
	msgInput = "input"
)

// Server message types.
const (
	msgReference    = "reference"
	msgPlain        = "plain"
	msgHighlight    = "highlight"
	msgElapsed      = "elapsed"
	msgWPM          = "wpm"
	msgLevelLabel   = "level_label"
	msgInputEnabled = "input_enabled"
	msgClearInput   = "clear_input"
	msgStartEnabled = "start_enabled"
	msgStopEnabled  = "stop_enabled"
	msgError        = "error"
)

// inbound is a message sent by the page.
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// outbound is a message sent to the page.
type outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// wireToken is a highlighted prompt word.
type wireToken struct {
	Word   string `json:"word"`
	Status string `json:"status"`
}

// levelInfo describes a level for /api/levels.
type levelInfo struct {
	Level   int    `json:"level"`
	Label   string `json:"label"`
	Prompts int    `json:"prompts"`
}

func toWireTokens(tokens []model.Token) []wireToken {
	out := make([]wireToken, len(tokens))
	for i, tok := range tokens {
		out[i] = wireToken{Word: tok.Word, Status: tok.Status.String()}
	}
	return out
}

// dataString returns the payload as text. Form controls may send numbers or
// strings, so a JSON string is unquoted and anything else is used verbatim.
func dataString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
