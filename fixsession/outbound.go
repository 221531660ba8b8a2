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
	"strconv"
	"time"

	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/metrics"
)

// sendMessage builds and transmits one message. When resendSeq is zero
// the engine assigns the next live outgoing sequence number and, for
// application MsgTypes, records the message in history for future
// resend. When resendSeq is non-zero the message reuses that historical
// sequence number verbatim and neither advances seqOut nor touches
// history — used for replaying history entries and for the
// SequenceReset messages that answer a ResendRequest.
func (e *Engine) sendMessage(msgType string, bodyFields []fixfield.Field, groups map[fixfield.Tag]*fixcodec.Group, resendSeq int64, possDup bool, origSendingTime fixfield.UTCTimestamp) (int64, error) {
	isResend := resendSeq != 0
	seq := resendSeq
	if !isResend {
		seq = e.seqOut
	}

	sendingTime := fixfield.UTCTimestamp{Time: time.Now().UTC()}

	msg := fixcodec.NewMessage()
	addHeader := func(tag fixfield.Tag, raw string) error {
		f, err := e.registry.DecodeField(tag, raw)
		if err != nil {
			return err
		}
		msg.Header.Add(f)
		return nil
	}

	if err := addHeader(8, e.cfg.Version.String()); err != nil {
		return 0, err
	}
	if err := addHeader(35, msgType); err != nil {
		return 0, err
	}
	if err := addHeader(34, strconv.FormatInt(seq, 10)); err != nil {
		return 0, err
	}
	if err := addHeader(49, e.cfg.SenderCompID); err != nil {
		return 0, err
	}
	if err := addHeader(56, e.cfg.TargetCompID); err != nil {
		return 0, err
	}
	if err := addHeader(52, sendingTime.String()); err != nil {
		return 0, err
	}
	if possDup {
		if err := addHeader(43, "Y"); err != nil {
			return 0, err
		}
		if err := addHeader(122, origSendingTime.String()); err != nil {
			return 0, err
		}
	}
	for _, f := range bodyFields {
		msg.Body.Add(f)
	}
	msg.Groups = groups

	raw, err := fixcodec.Encode(e.registry, msg)
	if err != nil {
		return 0, err
	}
	if _, err := e.transport.Write(raw); err != nil {
		return 0, &TransportError{Cause: err}
	}

	metrics.MessagesSent.WithLabelValues(e.cfg.SessionID, msgType).Inc()

	if !isResend {
		e.seqOut++
		if isApplicationMsgType(msgType) {
			e.history.Add(seq, msgType, sendingTime, bodyFields, groups)
		}
	}
	return seq, nil
}

func (e *Engine) sendLogon() error {
	var fields []fixfield.Field
	encryptField, err := e.registry.DecodeField(98, "0")
	if err != nil {
		return err
	}
	fields = append(fields, encryptField)

	hb, err := e.registry.DecodeField(108, strconv.Itoa(e.cfg.HeartBtInt))
	if err != nil {
		return err
	}
	fields = append(fields, hb)

	if e.cfg.ResetSeqNumFlag {
		rf, err := e.registry.DecodeField(141, "Y")
		if err != nil {
			return err
		}
		fields = append(fields, rf)
	}
	fields = append(fields, e.cfg.ExtraLogonFields...)

	_, err = e.sendMessage("A", fields, nil, 0, false, fixfield.UTCTimestamp{})
	return err
}

func (e *Engine) sendHeartbeat(testReqID string) error {
	var fields []fixfield.Field
	if testReqID != "" {
		f, err := e.registry.DecodeField(112, testReqID)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}
	_, err := e.sendMessage("0", fields, nil, 0, false, fixfield.UTCTimestamp{})
	return err
}

func (e *Engine) sendTestRequest(id string) error {
	f, err := e.registry.DecodeField(112, id)
	if err != nil {
		return err
	}
	_, err = e.sendMessage("1", []fixfield.Field{f}, nil, 0, false, fixfield.UTCTimestamp{})
	return err
}

func (e *Engine) sendLogout(text string) error {
	var fields []fixfield.Field
	if text != "" {
		f, err := e.registry.DecodeField(58, text)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}
	_, err := e.sendMessage("5", fields, nil, 0, false, fixfield.UTCTimestamp{})
	return err
}

func (e *Engine) sendApplication(out Outbound) error {
	_, err := e.sendMessage(out.MsgType, out.Fields, out.Groups, 0, false, fixfield.UTCTimestamp{})
	return err
}

func (e *Engine) sendResendRequest(begin, end int64) error {
	bf, err := e.registry.DecodeField(7, strconv.FormatInt(begin, 10))
	if err != nil {
		return err
	}
	ef, err := e.registry.DecodeField(16, strconv.FormatInt(end, 10))
	if err != nil {
		return err
	}
	_, err = e.sendMessage("2", []fixfield.Field{bf, ef}, nil, 0, false, fixfield.UTCTimestamp{})
	return err
}

func (e *Engine) sendSequenceResetGapFill(fromSeq, toSeq int64) error {
	nf, err := e.registry.DecodeField(36, strconv.FormatInt(toSeq, 10))
	if err != nil {
		return err
	}
	gf, err := e.registry.DecodeField(123, "Y")
	if err != nil {
		return err
	}
	if _, err := e.sendMessage("4", []fixfield.Field{nf, gf}, nil, fromSeq, false, fixfield.UTCTimestamp{}); err != nil {
		return err
	}
	metrics.SequenceResets.WithLabelValues(e.cfg.SessionID, "gapfill").Inc()
	return nil
}

func (e *Engine) sendSequenceResetReset(fromSeq, toSeq int64) error {
	nf, err := e.registry.DecodeField(36, strconv.FormatInt(toSeq, 10))
	if err != nil {
		return err
	}
	if _, err := e.sendMessage("4", []fixfield.Field{nf}, nil, fromSeq, false, fixfield.UTCTimestamp{}); err != nil {
		return err
	}
	metrics.SequenceResets.WithLabelValues(e.cfg.SessionID, "reset").Inc()
	return nil
}

// handleResendRequest answers a ResendRequest(begin, end) by walking the
// requested range: entries still in history are replayed verbatim with
// PossDupFlag=Y; contiguous runs of administrative (never-retained)
// sequence numbers become a single SequenceReset-GapFill; contiguous
// runs that have fallen out of the history ring become a single
// SequenceReset-Reset, since the engine can no longer prove what they
// were.
func (e *Engine) handleResendRequest(begin, end int64) error {
	hi := end
	if hi == 0 || hi > e.seqOut-1 {
		hi = e.seqOut - 1
	}

	seq := begin
	for seq <= hi {
		if seq <= e.history.EvictedUpTo() {
			start := seq
			for seq <= hi && seq <= e.history.EvictedUpTo() {
				seq++
			}
			if err := e.sendSequenceResetReset(start, seq); err != nil {
				return err
			}
			continue
		}

		entry, ok := e.history.Get(seq)
		if !ok {
			start := seq
			for seq <= hi {
				if _, ok := e.history.Get(seq); ok {
					break
				}
				seq++
			}
			if err := e.sendSequenceResetGapFill(start, seq); err != nil {
				return err
			}
			continue
		}

		if err := e.resendEntry(entry); err != nil {
			return err
		}
		metrics.ResendEntriesServed.WithLabelValues(e.cfg.SessionID).Inc()
		seq++
	}
	return nil
}

func (e *Engine) resendEntry(entry historyEntry) error {
	_, err := e.sendMessage(entry.msgType, entry.bodyFields, entry.groups, entry.seq, true, entry.sendingTime)
	return err
}
