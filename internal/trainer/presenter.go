// Package trainer runs the typing-session state machine behind a presenter.
package trainer

import "github.com/verte-zerg/typeracer/internal/model"

// Presenter is the capability surface a host UI supplies to the trainer.
type Presenter interface {
	SelectedLevel() string
	TypedText() string
	SetReferenceText(text string)
	ClearTypedText()
	SetInputEnabled(enabled bool)
	RenderHighlighted(tokens []model.Token)
	RenderPlainText(text string)
	DisplayElapsed(formatted string)
	DisplayWPM(wpm int)
	DisplayLevelLabel(label string)
	SetStartEnabled(enabled bool)
	SetStopEnabled(enabled bool)
}

// Event is a UI event forwarded by a presenter.
type Event int

// Events forwarded by adapters.
const (
	EventLevelChanged Event = iota + 1
	EventStart
	EventStop
	EventInput
)

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e {
	case EventLevelChanged:
		return "level_changed"
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventInput:
		return "input"
	default:
		return "unknown"
	}
}
