/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package fixconn wraps a fixsession.Engine with a reconnect loop: on any
// non-user-initiated disconnect it resolves a fresh address, redials, and
// resumes the session, backing off exponentially (with jitter, to avoid
// every session in a fleet redialing in lockstep) between attempts.
package fixconn

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gurre/prime-fix-md-go/fixsession"
	"github.com/gurre/prime-fix-md-go/metrics"
)

// EventKind classifies a lifecycle Event emitted to a Connector's sink.
type EventKind int

const (
	Attempting EventKind = iota
	AddressResolved
	Connected
	Disconnected
)

func (k EventKind) String() string {
	switch k {
	case Attempting:
		return "attempting"
	case AddressResolved:
		return "address_resolved"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Event is one step in a Connector's lifecycle, reported to an optional
// subscriber. Status renders a short human string suitable for a CLI
// status line, e.g. "retrying in 4 seconds" or "connected to md.prime.coinbase.com".
type Event struct {
	Kind    EventKind
	Address string
	Reason  error
	Attempt int
	RetryIn time.Duration
}

// Status renders the event as a short human-readable line.
func (e Event) Status() string {
	switch e.Kind {
	case Attempting:
		return "attempting connection (try " + humanize.Ordinal(e.Attempt) + ")"
	case AddressResolved:
		return "resolved address " + e.Address
	case Connected:
		return "connected to " + e.Address
	case Disconnected:
		if e.Reason != nil {
			return "disconnected: " + e.Reason.Error() + "; retrying in " + humanize.RelTime(time.Now(), time.Now().Add(e.RetryIn), "", "")
		}
		return "disconnected; retrying in " + humanize.RelTime(time.Now(), time.Now().Add(e.RetryIn), "", "")
	default:
		return ""
	}
}

// Dialer opens a fresh Transport for one connection attempt, returning
// the resolved address alongside it for lifecycle reporting.
type Dialer func(ctx context.Context) (transport fixsession.Transport, address string, err error)

// Connector drives a Dialer and a fixsession.Config through repeated
// sessions, retrying with backoff on every disconnect that wasn't
// requested by the caller via Close.
type Connector struct {
	dial Dialer
	cfg  fixsession.Config
	sink func(Event)

	minRetry time.Duration
	maxRetry time.Duration

	closeOnce sync.Once
	closed    chan struct{}
}

// Option configures a Connector at construction time.
type Option func(*Connector)

// WithRetryBounds overrides the default 1s-60s exponential backoff range.
func WithRetryBounds(min, max time.Duration) Option {
	return func(c *Connector) {
		c.minRetry = min
		c.maxRetry = max
	}
}

// WithEventSink registers a subscriber for lifecycle events. Passing nil
// (the default) disables event reporting.
func WithEventSink(sink func(Event)) Option {
	return func(c *Connector) { c.sink = sink }
}

// New builds a Connector. dial is called once per connection attempt;
// cfg is reused verbatim across every reconnect.
func New(dial Dialer, cfg fixsession.Config, opts ...Option) *Connector {
	c := &Connector{
		dial:     dial,
		cfg:      cfg,
		minRetry: time.Second,
		maxRetry: time.Minute,
		closed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close requests the reconnect loop terminate after its current session
// (if any) ends, rather than attempting another dial. A Close-driven
// shutdown is terminal; Run returns nil.
func (c *Connector) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Run drives the reconnect loop until ctx is cancelled or Close is
// called. onPipe is invoked once per successfully established session
// and must block for the pipe's lifetime (typically draining
// pipe.Messages() until the channel closes); Run redials as soon as
// onPipe returns, unless the loop has been closed or cancelled.
func (c *Connector) Run(ctx context.Context, onPipe func(*fixsession.Pipe)) error {
	var retry time.Duration
	attempt := 0

	for {
		if c.stopping(ctx) {
			return ctx.Err()
		}

		attempt++
		c.emit(Event{Kind: Attempting, Attempt: attempt})

		transport, addr, err := c.dial(ctx)
		if err != nil {
			if !c.backoffAndContinue(ctx, &retry, attempt, err) {
				return ctx.Err()
			}
			continue
		}
		c.emit(Event{Kind: AddressResolved, Address: addr})

		pipe, err := fixsession.Connect(ctx, transport, c.cfg)
		if err != nil {
			if !c.backoffAndContinue(ctx, &retry, attempt, err) {
				return ctx.Err()
			}
			continue
		}

		retry = 0
		attempt = 0
		c.emit(Event{Kind: Connected, Address: addr})

		onPipe(pipe)

		metrics.Reconnects.WithLabelValues(c.cfg.SessionID).Inc()
		c.emit(Event{Kind: Disconnected, Reason: pipe.Err()})

		if c.stopping(ctx) {
			return nil
		}
	}
}

func (c *Connector) backoffAndContinue(ctx context.Context, retry *time.Duration, attempt int, cause error) bool {
	*retry = nextBackoff(*retry, c.minRetry, c.maxRetry)
	c.emit(Event{Kind: Disconnected, Reason: cause, Attempt: attempt, RetryIn: *retry})
	select {
	case <-time.After(*retry):
		return true
	case <-ctx.Done():
		return false
	case <-c.closed:
		return false
	}
}

func (c *Connector) stopping(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *Connector) emit(e Event) {
	if c.sink != nil {
		c.sink(e)
	}
}

// nextBackoff doubles curr (seeding at min on the first call), caps at
// max, then jitters by up to ±25% so a fleet of sessions dropped by the
// same network blip doesn't redial in lockstep.
func nextBackoff(curr, min, max time.Duration) time.Duration {
	if curr <= 0 {
		curr = min
	} else if curr *= 2; curr > max {
		curr = max
	}
	if curr <= 0 {
		return min
	}
	jitter := time.Duration(rand.Int63n(int64(curr)/4 + 1))
	if rand.Intn(2) == 0 {
		curr += jitter
	} else {
		curr -= jitter
	}
	if curr < min {
		curr = min
	}
	return curr
}
