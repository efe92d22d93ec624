// Package device owns the serial connection to a wired RFID reader/writer:
// connect/disconnect lifecycle, newline-framed tag reads and kill-command
// writes.
package device

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrUnavailable is returned by Connect when no device can be acquired or a
// connection is already open.
var ErrUnavailable = errors.New("serial device unavailable")

// ErrNotConnected is returned by SendKill when no channel is open.
var ErrNotConnected = errors.New("no serial device connected")

// Port is a byte-stream handle to a reader device.
type Port interface {
	io.ReadWriteCloser
}

// Opener acquires exclusive access to a named device.
type Opener func(name string, baud int) (Port, error)

// SinkFunc receives each decoded tag frame after the settle delay.
type SinkFunc func(tag string)

// Channel manages at most one serial connection. The read loop decodes
// newline-terminated frames and forwards each to the sink after the same
// settle interval the input classifier uses, so both paths share dispatch
// semantics.
type Channel struct {
	mu        sync.Mutex
	opener    Opener
	port      Port
	connected bool
	done      chan struct{}
	wg        sync.WaitGroup

	settle time.Duration
	sink   SinkFunc
	logger *zap.Logger
}

func NewChannel(opener Opener, settle time.Duration, sink SinkFunc, logger *zap.Logger) *Channel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{
		opener: opener,
		settle: settle,
		sink:   sink,
		logger: logger,
	}
}

// Connect acquires the device and starts the read loop. Fails with
// ErrUnavailable when the device cannot be opened or a connection is already
// active.
func (c *Channel) Connect(name string, baud int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return fmt.Errorf("%w: connection already open", ErrUnavailable)
	}

	port, err := c.opener(name, baud)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.port = port
	c.connected = true
	c.done = make(chan struct{})
	c.wg.Add(1)
	go c.readLoop(port, c.done)

	c.logger.Info("serial reader connected", zap.String("port", name), zap.Int("baud", baud))
	return nil
}

// Disconnect releases the device. Idempotent: disconnecting a closed channel
// is a no-op. The blocked read unblocks via the port close, so the loop exits
// within one read cycle.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return
	}
	close(c.done)
	c.port.Close()
	c.port = nil
	c.connected = false
	c.mu.Unlock()

	c.wg.Wait()
	c.logger.Info("serial reader disconnected")
}

// Connected reports whether a device session is active.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// SendKill transmits one KILL:<tagID>:<password> frame. Success means only
// that the frame was written; the protocol carries no confirmation inbound.
func (c *Channel) SendKill(tagID, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}
	frame := fmt.Sprintf("KILL:%s:%s\n", tagID, password)
	if _, err := io.WriteString(c.port, frame); err != nil {
		return fmt.Errorf("kill command write: %w", err)
	}
	c.logger.Info("kill command sent", zap.String("tag", tagID))
	return nil
}

func (c *Channel) readLoop(port Port, done chan struct{}) {
	defer c.wg.Done()

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		tag := strings.TrimSpace(scanner.Text())
		if tag == "" {
			continue
		}
		c.logger.Info("serial tag read", zap.String("tag", tag))

		// Allow late frame completion before dispatch, mirroring the
		// classifier's quiescence interval.
		select {
		case <-time.After(c.settle):
		case <-done:
			return
		}
		c.sink(tag)
	}

	if err := scanner.Err(); err != nil {
		select {
		case <-done:
			// close during Disconnect, expected
		default:
			c.logger.Warn("serial read error", zap.Error(err))
		}
	}

	// Stream ended without an explicit disconnect; release the handle.
	c.mu.Lock()
	if c.connected && c.port == port {
		c.port.Close()
		c.port = nil
		c.connected = false
		c.logger.Info("serial stream ended")
	}
	c.mu.Unlock()
}
