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

// Package coinbaseprime is the fully-fleshed-out Adapter: Coinbase
// Prime's FIX Drop Copy / Order Entry API signs every Logon with an
// HMAC-SHA256 digest over a fixed field order and carries a handful of
// custom tags (AccessKey, DropCopyFlag, AggressorSide, FilledAmt,
// NetAvgPrice, IsRaiseExact) outside the standard FIX 4.4 tag space.
package coinbaseprime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/venues"
)

// Custom tags outside the standard FIX 4.4 range, per
// https://docs.cdp.coinbase.com/prime/fix-api/admin-messages and the
// Prime order-entry execution report extensions.
const (
	TagAggressorSide = fixfield.Tag(2446)
	TagDropCopyFlag  = fixfield.Tag(9406)
	TagAccessKey     = fixfield.Tag(9407)
	TagFilledAmt     = fixfield.Tag(8002)
	TagNetAvgPrice   = fixfield.Tag(8006)
	TagIsRaiseExact  = fixfield.Tag(8999)
)

const dropCopyFlagYes = "Y"

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Name() string { return "coinbaseprime" }

// RegisterFields adds the custom tags to the registry as plain strings;
// none of them carry FIX-typed semantics (price, qty, timestamp) beyond
// what the venue assigns them.
func (Adapter) RegisterFields(reg *fixfield.Registry) {
	names := map[fixfield.Tag]string{
		TagAggressorSide: "AggressorSide",
		TagDropCopyFlag:  "DropCopyFlag",
		TagAccessKey:     "AccessKey",
		TagFilledAmt:     "FilledAmt",
		TagNetAvgPrice:   "NetAvgPrice",
		TagIsRaiseExact:  "IsRaiseExact",
		constants.TagHmac: "RawData",
	}
	for tag, name := range names {
		reg.MustRegister(fixfield.StringDescriptor(tag, name))
	}
}

func stringField(tag fixfield.Tag, name, raw string) fixfield.Field {
	return fixfield.Field{Tag: tag, Name: name, Value: fixfield.NewStringValue(raw)}
}

// LogonFields signs the Logon per Coinbase Prime's scheme: the HMAC-
// SHA256 digest, keyed by the base64-decoded API secret, runs over
// SendingTime + MsgType + MsgSeqNum(always "1" for Logon) + API key
// (AccessKey) + TargetCompID + Passphrase, then is itself base64-encoded into tag 96.
func (a Adapter) LogonFields(cfg venues.Config, now time.Time) []fixfield.Field {
	ts := now.UTC().Format(constants.FixTimeFormat)
	sig := sign(ts, constants.MsgTypeLogon, "1", cfg.APIKey, cfg.TargetCompID, cfg.Passphrase, cfg.APISecret)

	return []fixfield.Field{
		stringField(constants.TagPassword, "Password", cfg.Passphrase),
		stringField(constants.TagAccount, "Account", cfg.PortfolioID),
		stringField(constants.TagHmac, "RawData", sig),
		stringField(TagAccessKey, "AccessKey", cfg.APIKey),
		stringField(TagDropCopyFlag, "DropCopyFlag", dropCopyFlagYes),
	}
}

// sign computes the base64 HMAC-SHA256 signature Coinbase Prime expects
// on every Logon. apiSecret is itself base64-encoded at rest, so it is
// decoded before use as the HMAC key.
func sign(timestamp, msgType, msgSeqNum, apiKey, targetCompID, passphrase, apiSecret string) string {
	key, err := base64.StdEncoding.DecodeString(apiSecret)
	if err != nil {
		// Secrets that aren't valid base64 are used raw: some deployments
		// hand out hex or plaintext secrets despite the documented format.
		key = []byte(apiSecret)
	}
	message := timestamp + msgType + msgSeqNum + apiKey + targetCompID + passphrase
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
