// Package scanner decides whether text-field input is coming from a
// keyboard-wedge RFID reader or from a human typing, and auto-submits
// reader bursts once they quiesce.
package scanner

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Mode classifies the origin of the current input buffer.
type Mode int

const (
	// ModeManual is human typing; submission waits for an explicit confirm.
	ModeManual Mode = iota
	// ModeReaderBurst is automated reader input; submission is automatic
	// after the quiescence interval.
	ModeReaderBurst
)

func (m Mode) String() string {
	if m == ModeReaderBurst {
		return "reader"
	}
	return "manual"
}

// SubmitFunc receives a completed buffer and the mode it was captured in.
type SubmitFunc func(raw string, mode Mode)

// Classifier watches buffer-growth events on the scan field. Growth of more
// than one character per event flags a reader burst; anything slower is (or
// reverts to) manual typing. A single-character paste is indistinguishable
// from typing and stays manual.
type Classifier struct {
	mu      sync.Mutex
	mode    Mode
	buffer  string
	quiesce time.Duration
	timer   *time.Timer
	submit  SubmitFunc
	logger  *zap.Logger
}

func New(quiesce time.Duration, submit SubmitFunc, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		quiesce: quiesce,
		submit:  submit,
		logger:  logger,
	}
}

// Input records the scan field's contents after a character-arrival event.
func (c *Classifier) Input(value string) {
	c.mu.Lock()
	grew := len(value) - len(c.buffer)
	c.buffer = value

	if grew > 1 {
		if c.mode != ModeReaderBurst {
			c.logger.Info("reader burst detected, automatic scan mode")
		}
		c.mode = ModeReaderBurst
		c.restartTimerLocked()
	} else {
		c.mode = ModeManual
		c.stopTimerLocked()
	}
	c.mu.Unlock()
}

// Confirm is the operator's explicit submit. It cancels any pending
// auto-submit and dispatches the buffer as-is.
func (c *Classifier) Confirm() {
	c.mu.Lock()
	raw := c.buffer
	mode := c.mode
	c.resetLocked()
	c.mu.Unlock()

	if raw == "" {
		return
	}
	c.submit(raw, mode)
}

// Reset empties the buffer and returns to manual mode.
func (c *Classifier) Reset() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

// Mode returns the current classification.
func (c *Classifier) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Classifier) restartTimerLocked() {
	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.quiesce, c.fire)
}

func (c *Classifier) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Classifier) resetLocked() {
	c.buffer = ""
	c.mode = ModeManual
	c.stopTimerLocked()
}

func (c *Classifier) fire() {
	c.mu.Lock()
	if c.mode != ModeReaderBurst || c.buffer == "" {
		c.mu.Unlock()
		return
	}
	raw := c.buffer
	c.resetLocked()
	c.mu.Unlock()

	c.submit(raw, ModeReaderBurst)
}
