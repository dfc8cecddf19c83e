// Package web serves the trainer to a browser over a websocket.
package web

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/trainer"
)

const writeWait = 10 * time.Second

// client is the presenter for one browser page. The read loop is the only
// caller of the trainer, so presenter state needs no locking; writes are
// serialized by writeMu.
type client struct {
	conn    *websocket.Conn
	log     logrus.FieldLogger
	trainer *trainer.Trainer

	level  string
	typed  string
	outbox []outbound

	writeMu sync.Mutex
}

var _ trainer.Presenter = (*client)(nil)

func (c *client) run() {
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		var msg inbound
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.log.WithError(err).Debug("malformed client message")
			c.send(outbound{Type: msgError, Data: fmt.Sprintf("invalid message: %v", err)})
		} else if err := c.handle(msg); err != nil {
			c.log.WithError(err).WithField("type", msg.Type).Debug("rejected client message")
			c.send(outbound{Type: msgError, Data: err.Error()})
		}
		if err := c.flush(); err != nil {
			c.log.WithError(err).Warn("websocket write failed")
			return
		}
	}
}

func (c *client) handle(msg inbound) error {
	switch msg.Type {
	case msgLevel:
		level, err := dataString(msg.Data)
		if err != nil {
			return fmt.Errorf("invalid level: %w", err)
		}
		c.level = level
		c.trainer.Dispatch(trainer.EventLevelChanged)
	case msgStart:
		c.trainer.Dispatch(trainer.EventStart)
	case msgStop:
		c.trainer.Dispatch(trainer.EventStop)
	case msgInput:
		var text string
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			return fmt.Errorf("invalid input: %w", err)
		}
		c.typed = text
		c.trainer.Dispatch(trainer.EventInput)
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

func (c *client) send(msg outbound) {
	c.outbox = append(c.outbox, msg)
}

func (c *client) flush() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	pending := c.outbox
	c.outbox = nil
	for _, msg := range pending {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := c.conn.WriteJSON(msg); err != nil {
			return err
		}
	}
	return nil
}

// SelectedLevel implements trainer.Presenter.
func (c *client) SelectedLevel() string {
	return c.level
}

// TypedText implements trainer.Presenter.
func (c *client) TypedText() string {
	return c.typed
}

// SetReferenceText implements trainer.Presenter.
func (c *client) SetReferenceText(text string) {
	c.send(outbound{Type: msgReference, Data: text})
}

// ClearTypedText implements trainer.Presenter.
func (c *client) ClearTypedText() {
	c.typed = ""
	c.send(outbound{Type: msgClearInput})
}

// SetInputEnabled implements trainer.Presenter.
func (c *client) SetInputEnabled(enabled bool) {
	c.send(outbound{Type: msgInputEnabled, Data: enabled})
}

// RenderHighlighted implements trainer.Presenter.
func (c *client) RenderHighlighted(tokens []model.Token) {
	c.send(outbound{Type: msgHighlight, Data: toWireTokens(tokens)})
}

// RenderPlainText implements trainer.Presenter.
func (c *client) RenderPlainText(text string) {
	c.send(outbound{Type: msgPlain, Data: text})
}

// DisplayElapsed implements trainer.Presenter.
func (c *client) DisplayElapsed(formatted string) {
	c.send(outbound{Type: msgElapsed, Data: formatted})
}

// DisplayWPM implements trainer.Presenter.
func (c *client) DisplayWPM(wpm int) {
	c.send(outbound{Type: msgWPM, Data: wpm})
}

// DisplayLevelLabel implements trainer.Presenter.
func (c *client) DisplayLevelLabel(label string) {
	c.send(outbound{Type: msgLevelLabel, Data: label})
}

// SetStartEnabled implements trainer.Presenter.
func (c *client) SetStartEnabled(enabled bool) {
	c.send(outbound{Type: msgStartEnabled, Data: enabled})
}

// SetStopEnabled implements trainer.Presenter.
func (c *client) SetStopEnabled(enabled bool) {
	c.send(outbound{Type: msgStopEnabled, Data: enabled})
}
