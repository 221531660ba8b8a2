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
	"github.com/gurre/prime-fix-md-go/metrics"
)

// handleRaw decodes one frame and routes it according to the current
// state: a Logon while LogonSent completes the handshake, everything
// else flows through sequence checking once LoggedOn.
func (e *Engine) handleRaw(buf []byte) error {
	msg, err := fixcodec.Decode(e.registry, e.groups, buf)
	if err != nil {
		return &SessionError{Kind: HeaderError, Text: err.Error(), State: e.state}
	}

	seq, ok := msg.MsgSeqNum()
	if !ok {
		return &SessionError{Kind: HeaderError, Text: "missing MsgSeqNum", State: e.state}
	}
	msgType, _ := msg.MsgType()
	possDup := false
	if f, ok := msg.Header.Get(43); ok {
		possDup, _ = f.Value.Bool()
	}

	metrics.MessagesReceived.WithLabelValues(e.cfg.SessionID, msgType).Inc()

	switch e.state {
	case LogonSent:
		return e.handleLogonAck(msgType, seq)
	case LoggedOn, LogoutSent:
		if msgType == "4" {
			return e.handleSequenceReset(msg)
		}
		return e.handleLoggedOnMessage(msgType, seq, possDup, msg)
	default:
		return &SessionError{Kind: UnexpectedMsgType, Text: msgType, State: e.state}
	}
}

func (e *Engine) handleLogonAck(msgType string, seq int64) error {
	if msgType == "5" {
		return &SessionError{Kind: LogonRejected, Text: "peer sent Logout instead of Logon acknowledgement", State: e.state}
	}
	if msgType != "A" {
		return &SessionError{Kind: UnexpectedMsgType, Text: msgType, State: e.state}
	}
	e.seqIn = seq + 1
	e.state = LoggedOn
	metrics.SessionState.WithLabelValues(e.cfg.SessionID).Set(float64(e.state))
	return nil
}

// handleLoggedOnMessage applies the gap/duplicate rules from the
// session's state table to every non-SequenceReset message received
// while logged on.
func (e *Engine) handleLoggedOnMessage(msgType string, seq int64, possDup bool, msg *fixcodec.Message) error {
	switch {
	case seq == e.seqIn:
		e.seqIn++
		if err := e.dispatch(msgType, possDup, msg); err != nil {
			return err
		}
		return e.drainHoldback()

	case seq > e.seqIn:
		e.holdback[seq] = msg
		return e.sendResendRequest(e.seqIn, 0)

	default: // seq < e.seqIn: a duplicate
		if possDup {
			return e.dispatch(msgType, possDup, msg)
		}
		_ = e.sendLogout("duplicate message received without PossDupFlag")
		e.state = LogoutSent
		return &SessionError{Kind: DuplicateWithoutPossDup, State: e.state}
	}
}

func (e *Engine) drainHoldback() error {
	for {
		next, ok := e.holdback[e.seqIn]
		if !ok {
			return nil
		}
		delete(e.holdback, e.seqIn)
		mt, _ := next.MsgType()
		possDup := false
		if f, ok := next.Header.Get(43); ok {
			possDup, _ = f.Value.Bool()
		}
		e.seqIn++
		if err := e.dispatch(mt, possDup, next); err != nil {
			return err
		}
	}
}

// handleSequenceReset applies SequenceReset's special rule: it is
// accepted irrespective of the normal gap/duplicate check, because its
// entire purpose is to override the engine's notion of the next
// expected sequence number.
func (e *Engine) handleSequenceReset(msg *fixcodec.Message) error {
	newSeqField, ok := msg.Body.Get(36)
	if !ok {
		return &SessionError{Kind: HeaderError, Text: "SequenceReset missing NewSeqNo", State: e.state}
	}
	newSeq, _ := newSeqField.Value.Int()

	gapFill := false
	if f, ok := msg.Body.Get(123); ok {
		gapFill, _ = f.Value.Bool()
	}

	if !gapFill {
		e.seqIn = newSeq
		return e.drainHoldback()
	}

	seq, _ := msg.MsgSeqNum()
	if seq >= e.seqIn {
		e.seqIn = newSeq
	}
	return e.drainHoldback()
}

// dispatch handles every administrative MsgType itself and forwards
// everything else to the application's inbound channel.
func (e *Engine) dispatch(msgType string, possDup bool, msg *fixcodec.Message) error {
	switch msgType {
	case "0": // Heartbeat
		if f, ok := msg.Body.Get(112); ok && e.testReqOutstanding && f.Value.Raw() == e.testReqID {
			e.testReqOutstanding = false
		}
		return nil

	case "1": // TestRequest
		var id string
		if f, ok := msg.Body.Get(112); ok {
			id = f.Value.Raw()
		}
		return e.sendHeartbeat(id)

	case "2": // ResendRequest
		var begin, end int64
		if f, ok := msg.Body.Get(7); ok {
			begin, _ = f.Value.Int()
		}
		if f, ok := msg.Body.Get(16); ok {
			end, _ = f.Value.Int()
		}
		return e.handleResendRequest(begin, end)

	case "3": // session-level Reject: surfaced to the application, not swallowed
		seqNum, _ := msg.MsgSeqNum()
		e.pipe.inbound <- Inbound{
			MsgType:   msgType,
			MsgSeqNum: seqNum,
			Fields:    append([]fixfield.Field{}, msg.Body.Fields()...),
			Groups:    msg.Groups,
			PossDup:   possDup,
		}
		return nil

	case "5": // Logout
		if e.state == LoggedOn {
			_ = e.sendLogout("")
		}
		e.state = LogoutSent
		return errGracefulClose

	case "A": // stray Logon while already logged on; ignore
		return nil

	default:
		seqNum, _ := msg.MsgSeqNum()
		e.pipe.inbound <- Inbound{
			MsgType:   msgType,
			MsgSeqNum: seqNum,
			Fields:    append([]fixfield.Field{}, msg.Body.Fields()...),
			Groups:    msg.Groups,
			PossDup:   possDup,
		}
		return nil
	}
}
