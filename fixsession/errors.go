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

import "fmt"

type SessionErrorKind int

const (
	LogonRejected SessionErrorKind = iota
	SequenceGapUnresolved
	DuplicateWithoutPossDup
	HeaderError
	Timeout
	UnexpectedMsgType
)

// SessionError is fatal to the current session but recoverable by a
// persistent connector wrapping it: the caller is expected to close the
// pipe, let fixconn back off, and reconnect.
type SessionError struct {
	Kind  SessionErrorKind
	Text  string
	State State
}

func (e *SessionError) Error() string {
	switch e.Kind {
	case LogonRejected:
		return fmt.Sprintf("fixsession: logon rejected: %s", e.Text)
	case SequenceGapUnresolved:
		return "fixsession: sequence gap could not be resolved"
	case DuplicateWithoutPossDup:
		return "fixsession: duplicate message received without PossDupFlag"
	case HeaderError:
		return fmt.Sprintf("fixsession: header error: %s", e.Text)
	case Timeout:
		return "fixsession: timed out waiting for peer"
	case UnexpectedMsgType:
		return fmt.Sprintf("fixsession: unexpected message type while in state %s: %s", e.State, e.Text)
	default:
		return "fixsession: session error"
	}
}

// TransportError wraps a read/write/close failure from the underlying
// Transport. It is always terminal for the session.
type TransportError struct {
	Cause error
	EOF   bool
}

func (e *TransportError) Error() string {
	if e.EOF {
		return "fixsession: transport closed (EOF)"
	}
	return fmt.Sprintf("fixsession: transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }
