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
	"github.com/rs/zerolog"
)

// Config names everything a session needs to negotiate and run a logon
// that it cannot derive from the wire itself.
type Config struct {
	SessionID string // used only for logging/metrics labels, not a FIX field

	Version      fixfield.Version
	SenderCompID string
	TargetCompID string

	HeartBtInt      int
	ResetSeqNumFlag bool

	// ExtraLogonFields are appended to the Logon body after EncryptMethod
	// and HeartBtInt — a venue adapter's signature, API key, or passphrase
	// fields, for instance.
	ExtraLogonFields []fixfield.Field

	// HistorySize bounds how many recently sent application messages the
	// engine retains for resend replay. Defaults to 1000 if zero.
	HistorySize int

	Registry *fixfield.Registry
	Groups   *fixcodec.GroupTable

	Logger zerolog.Logger
}

func (c Config) historySize() int {
	if c.HistorySize > 0 {
		return c.HistorySize
	}
	return 1000
}
