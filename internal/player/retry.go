// Package player holds the playback-facing state machines: the retry
// controller that self-heals transient stream failures, and the guide
// display mode. The media pipeline itself sits behind the Player port.
package player

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Player is the media port the retry controller drives. Play is expected to
// be asynchronous; outcomes come back through OnReady/OnError on the
// controller.
type Player interface {
	Play(url string)
	ClearBuffer()
}

// State of the retry controller.
type State int

const (
	StateIdle State = iota
	StateRetrying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRetrying:
		return "retrying"
	default:
		return "unknown"
	}
}

const (
	defaultBaseDelay = 2 * time.Second
	defaultMaxDelay  = 10 * time.Second
)

// Backoff returns the delay before retry number attempt (1-based): it grows
// linearly from 2s and caps at 10s.
func Backoff(attempt int) time.Duration {
	return backoff(attempt, defaultBaseDelay, defaultMaxDelay)
}

func backoff(attempt int, base, max time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	d := time.Duration(attempt) * base
	if d > max {
		d = max
	}

	return d
}

// Controller retries the last playback action with growing backoff after
// the player reports an error. The loop is unbounded; it only stops when a
// new action supersedes it, the player comes back ready, or the controller
// is stopped or closed.
type Controller struct {
	log    logrus.FieldLogger
	player Player

	baseDelay time.Duration
	maxDelay  time.Duration

	mu         sync.Mutex
	url        string
	errorCount int
	state      State
	attempt    int
	cancel     chan struct{}
	closed     bool
}

// NewController creates an idle controller driving the given player.
func NewController(log logrus.FieldLogger, player Player) *Controller {
	return &Controller{
		log:       log.WithField("component", "retry"),
		player:    player,
		baseDelay: defaultBaseDelay,
		maxDelay:  defaultMaxDelay,
	}
}

// Play starts a fresh playback action. Any in-flight retry loop is
// cancelled and the error counter resets.
func (c *Controller) Play(url string) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()

		return
	}

	c.cancelLocked()
	c.url = url
	c.errorCount = 0
	c.state = StateIdle
	c.attempt = 0
	c.mu.Unlock()

	c.player.Play(url)
}

// OnError records a playback failure for the current action and (re)enters
// the retry loop. With no current action it is a no-op.
func (c *Controller) OnError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.url == "" {
		return
	}

	c.errorCount++

	attempt := c.errorCount
	if attempt < 1 {
		attempt = 1
	}

	c.cancelLocked()
	c.state = StateRetrying
	c.attempt = attempt
	c.cancel = make(chan struct{})

	c.log.WithFields(logrus.Fields{
		"attempt": attempt,
		"delay":   backoff(attempt, c.baseDelay, c.maxDelay),
	}).Info("Playback failed, scheduling retry")

	go c.retryLoop(c.cancel, attempt, c.url)
}

// OnReady records that the player reached a ready/playing state: the
// controller returns to idle and the backoff sequence resets.
func (c *Controller) OnReady() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.errorCount = 0
	c.state = StateIdle
	c.attempt = 0
}

// Stop cancels any retry loop and forgets the current action.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.url = ""
	c.errorCount = 0
	c.state = StateIdle
	c.attempt = 0
}

// Close is Stop plus refusal of any further actions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.url = ""
	c.state = StateIdle
	c.attempt = 0
	c.closed = true
}

// State returns the current state and, while retrying, the upcoming attempt
// number.
func (c *Controller) State() (State, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state, c.attempt
}

func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
}

// retryLoop waits out the backoff, then clears the player's buffered state
// and replays the action. Replays do not touch the error counter; only a
// fresh Play or OnReady resets it.
func (c *Controller) retryLoop(cancel chan struct{}, attempt int, url string) {
	for {
		timer := time.NewTimer(backoff(attempt, c.baseDelay, c.maxDelay))

		select {
		case <-cancel:
			timer.Stop()

			return
		case <-timer.C:
		}

		c.mu.Lock()
		if c.cancel != cancel {
			// Superseded while the timer was running.
			c.mu.Unlock()

			return
		}

		attempt++
		c.attempt = attempt
		c.mu.Unlock()

		c.log.WithField("attempt", attempt-1).Info("Retrying playback")

		c.player.ClearBuffer()
		c.player.Play(url)
	}
}
