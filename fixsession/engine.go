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

// Package fixsession implements the logon/heartbeat/sequencing state
// machine that sits between a raw byte Transport and an application's
// stream of business messages. It is the only stateful component in
// this module — fixfield and fixcodec are pure — and it owns its state
// from a single goroutine, so no locking is needed around sequence
// numbers, timers, or the resend history.
package fixsession

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/metrics"
)

// errGracefulClose signals a peer- or user-initiated Logout exchange
// completing normally; the run loop treats it as a nil-error shutdown
// rather than a SessionError.
var errGracefulClose = errors.New("fixsession: session closed")

// Engine runs one session's state machine against one Transport. Build
// one with Connect; do not construct directly.
type Engine struct {
	cfg      Config
	registry *fixfield.Registry
	groups   *fixcodec.GroupTable
	transport Transport
	frame    *fixcodec.Frame

	state  State
	seqOut int64
	seqIn  int64

	history  *History
	holdback map[int64]*fixcodec.Message

	testReqOutstanding bool
	testReqID          string

	pipe *Pipe
}

type frameResult struct {
	buf []byte
	err error
}

// Connect opens a session over transport: it sends Logon immediately and
// blocks until the peer's Logon acknowledgement arrives (reaching
// LoggedOn) or the attempt fails. On success it returns a Pipe and keeps
// running the session's admin traffic (heartbeats, resend, sequencing)
// in the background until the Pipe is closed or the session fails.
func Connect(ctx context.Context, transport Transport, cfg Config) (*Pipe, error) {
	if transport == nil {
		return nil, errors.New("fixsession: transport is nil")
	}
	if cfg.Registry == nil {
		cfg.Registry = fixfield.Default()
		cfg.Registry.Seal()
	}
	if cfg.Groups == nil {
		cfg.Groups = fixcodec.DefaultGroups()
	}
	if cfg.HeartBtInt <= 0 {
		cfg.HeartBtInt = 30
	}

	e := &Engine{
		cfg:       cfg,
		registry:  cfg.Registry,
		groups:    cfg.Groups,
		transport: transport,
		frame:     fixcodec.NewFrame(transport),
		state:     Disconnected,
		seqOut:    1,
		seqIn:     1,
		history:   NewHistory(cfg.historySize()),
		holdback:  make(map[int64]*fixcodec.Message),
		pipe: &Pipe{
			inbound:  make(chan Inbound, 256),
			outbound: make(chan outboundRequest),
			done:     make(chan struct{}),
		},
	}

	ready := make(chan error, 1)
	go e.run(ctx, ready)

	select {
	case err := <-ready:
		if err != nil {
			return nil, err
		}
		return e.pipe, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Engine) run(ctx context.Context, ready chan<- error) {
	logger := e.cfg.Logger.With().Str("session", e.cfg.SessionID).Logger()
	defer close(e.pipe.done)

	if err := e.sendLogon(); err != nil {
		e.pipe.err = err
		ready <- err
		return
	}
	e.state = LogonSent
	metrics.SessionState.WithLabelValues(e.cfg.SessionID).Set(float64(e.state))

	readerCtx, cancelReader := context.WithCancel(ctx)
	defer cancelReader()
	rawCh := make(chan frameResult)
	go e.readLoop(readerCtx, rawCh)

	sendTimer := time.NewTimer(e.heartbeatInterval())
	recvTimer := time.NewTimer(e.recvTimeout(1.5))
	defer sendTimer.Stop()
	defer recvTimer.Stop()

	readySignaled := false
	var terminal error

	for terminal == nil {
		select {
		case <-ctx.Done():
			terminal = ctx.Err()

		case res := <-rawCh:
			if res.err != nil {
				terminal = classifyReadError(res.err)
				break
			}
			if err := e.handleRaw(res.buf); err != nil {
				terminal = err
				break
			}
			resetTimer(recvTimer, e.recvTimeout(1.5))
			if !readySignaled && e.state == LoggedOn {
				readySignaled = true
				ready <- nil
			}

		case req := <-e.pipe.outbound:
			if req.msg.MsgType == closeSentinel {
				_ = e.sendLogout("")
				e.state = LogoutSent
				req.result <- nil
				terminal = e.waitForLogoutAck(ctx, rawCh)
				if terminal == nil {
					terminal = errGracefulClose
				}
				break
			}
			err := e.sendApplication(req.msg)
			req.result <- err
			if err == nil {
				resetTimer(sendTimer, e.heartbeatInterval())
			}

		case <-sendTimer.C:
			if err := e.sendHeartbeat(""); err != nil {
				terminal = err
				break
			}
			sendTimer.Reset(e.heartbeatInterval())

		case <-recvTimer.C:
			if !e.testReqOutstanding {
				id := uuid.New().String()
				e.testReqOutstanding = true
				e.testReqID = id
				if err := e.sendTestRequest(id); err != nil {
					terminal = err
					break
				}
				resetTimer(sendTimer, e.heartbeatInterval())
				recvTimer.Reset(e.recvTimeout(1.0))
			} else {
				terminal = &SessionError{Kind: Timeout, State: e.state}
			}
		}
	}

	if !readySignaled {
		ready <- terminal
	}
	if terminal == errGracefulClose {
		e.pipe.err = nil
	} else {
		e.pipe.err = terminal
		logger.Debug().Err(terminal).Msg("session terminated")
	}
	close(e.pipe.inbound)
	_ = e.transport.Close()
}

func (e *Engine) waitForLogoutAck(ctx context.Context, rawCh <-chan frameResult) error {
	timeout := time.NewTimer(e.heartbeatInterval())
	defer timeout.Stop()
	select {
	case res := <-rawCh:
		if res.err == nil {
			_ = e.handleRaw(res.buf)
		}
	case <-timeout.C:
	case <-ctx.Done():
	}
	return nil
}

func (e *Engine) readLoop(ctx context.Context, out chan<- frameResult) {
	for {
		buf, err := e.frame.ReadMessage(ctx)
		select {
		case out <- frameResult{buf: buf, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func classifyReadError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if ce, ok := err.(*fixcodec.CodecError); ok {
		return &SessionError{Kind: HeaderError, Text: ce.Error()}
	}
	return &TransportError{Cause: err}
}

func (e *Engine) heartbeatInterval() time.Duration {
	return time.Duration(e.cfg.HeartBtInt) * time.Second
}

func (e *Engine) recvTimeout(mult float64) time.Duration {
	return time.Duration(float64(e.cfg.HeartBtInt) * mult * float64(time.Second))
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func isApplicationMsgType(msgType string) bool {
	switch msgType {
	case "0", "1", "2", "3", "4", "5", "A":
		return false
	default:
		return true
	}
}
