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

package fixsession

import (
	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixfield"
)

// Inbound is one application-level message delivered to the reader.
// Administrative messages (Heartbeat, TestRequest, ResendRequest,
// SequenceReset, Logon, Logout) are absorbed by the engine and never
// reach this channel.
type Inbound struct {
	MsgType   string
	MsgSeqNum int64
	Fields    []fixfield.Field
	// Groups carries any repeating-group blocks fixcodec found in the
	// message body, keyed by count tag (e.g. 268 for NoMDEntries).
	Groups  map[fixfield.Tag]*fixcodec.Group
	PossDup bool
}

// Outbound is an application message to send. The engine populates the
// session header (BeginString, MsgType, MsgSeqNum, SenderCompID,
// TargetCompID, SendingTime) and delegates framing to fixcodec; the
// caller supplies only the message's own body fields.
type Outbound struct {
	MsgType string
	Fields  []fixfield.Field
	// Groups carries repeating-group blocks keyed by count tag (e.g. 267
	// for NoMDEntryTypes). The count field itself still belongs in Fields;
	// Groups supplies only the per-block member fields.
	Groups map[fixfield.Tag]*fixcodec.Group
}

// Pipe is the bidirectional message channel Connect hands back once a
// session has reached LoggedOn. It represents exactly one connection's
// worth of session: fixconn hands a new Pipe to its onPipe callback after
// every reconnect.
type Pipe struct {
	inbound  chan Inbound
	outbound chan outboundRequest
	done     chan struct{}
	err      error
}

type outboundRequest struct {
	msg    Outbound
	result chan error
}

// Messages returns the channel of inbound application messages. It is
// closed when the session terminates, after which Err reports why.
func (p *Pipe) Messages() <-chan Inbound { return p.inbound }

// Send enqueues an application message for sending and blocks until the
// engine has accepted it (or the session has terminated).
func (p *Pipe) Send(msg Outbound) error {
	req := outboundRequest{msg: msg, result: make(chan error, 1)}
	select {
	case p.outbound <- req:
	case <-p.done:
		return p.err
	}
	select {
	case err := <-req.result:
		return err
	case <-p.done:
		return p.err
	}
}

// Close triggers a graceful Logout followed by transport close, and
// blocks until the session has fully terminated.
func (p *Pipe) Close() error {
	req := outboundRequest{msg: Outbound{MsgType: closeSentinel}, result: make(chan error, 1)}
	select {
	case p.outbound <- req:
	case <-p.done:
		return p.err
	}
	<-p.done
	return p.err
}

// Err returns the reason the session terminated, or nil for a clean
// user-initiated close.
func (p *Pipe) Err() error { return p.err }

// closeSentinel is a MsgType value no real FIX message uses; Send'ing an
// Outbound with this MsgType from Close tells the engine loop to begin
// graceful shutdown instead of framing and transmitting a message.
const closeSentinel = "\x00close\x00"
