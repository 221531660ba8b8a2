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

// Package coinbasepro is a thin Adapter for the retail Coinbase
// Exchange FIX gateway: market-data-only, HMAC-SHA256 signed with a
// base64-encoded secret and an explicit Passphrase header field.
package coinbasepro

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/venues"
)

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Name() string { return "coinbasepro" }

// RegisterFields needs nothing beyond the standard registry: Coinbase
// Pro's FIX gateway carries no custom tags outside Passphrase, which
// reuses the common password/passphrase tag already in fixfield.Default.
func (Adapter) RegisterFields(*fixfield.Registry) {}

// LogonFields signs the Logon with the same timestamp+method+path
// style digest the exchange's REST/WebSocket APIs use, over
// SendingTime + MsgType + MsgSeqNum + SenderCompID + TargetCompID +
// Password, base64-encoded.
func (a Adapter) LogonFields(cfg venues.Config, now time.Time) []fixfield.Field {
	ts := now.UTC().Format(constants.FixTimeFormat)
	key, err := base64.StdEncoding.DecodeString(cfg.APISecret)
	if err != nil {
		key = []byte(cfg.APISecret)
	}
	message := ts + constants.MsgTypeLogon + "1" + cfg.SenderCompID + cfg.TargetCompID + cfg.Passphrase
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return []fixfield.Field{
		{Tag: constants.TagPassword, Name: "Password", Value: fixfield.NewStringValue(cfg.Passphrase)},
		{Tag: constants.TagHmac, Name: "RawData", Value: fixfield.NewStringValue(sig)},
		{Tag: constants.TagAccount, Name: "Account", Value: fixfield.NewStringValue(cfg.APIKey)},
	}
}
