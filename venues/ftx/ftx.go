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

// Package ftx is a thin Adapter for FTX's FIX gateway: API-key/secret
// logon signed over a millisecond-epoch timestamp rather than the
// FIX SendingTime string, per the exchange's REST/FIX auth convention.
package ftx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/venues"
)

const (
	tagAPIKey     = fixfield.Tag(9000)
	tagSignature  = fixfield.Tag(9001)
	tagTimestamp  = fixfield.Tag(9002)
	tagSubaccount = fixfield.Tag(9003)
)

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Name() string { return "ftx" }

func (Adapter) RegisterFields(reg *fixfield.Registry) {
	reg.MustRegister(fixfield.StringDescriptor(tagAPIKey, "FtxAPIKey"))
	reg.MustRegister(fixfield.StringDescriptor(tagSignature, "FtxSignature"))
	reg.MustRegister(fixfield.StringDescriptor(tagTimestamp, "FtxTimestamp"))
	reg.MustRegister(fixfield.StringDescriptor(tagSubaccount, "FtxSubaccount"))
}

// LogonFields signs "{timestampMs}A" (the Logon MsgType) with the API secret as an
// HMAC-SHA256 hex digest, matching FTX's REST request-signing scheme
// adapted to FIX's Logon MsgType.
func (a Adapter) LogonFields(cfg venues.Config, now time.Time) []fixfield.Field {
	tsMillis := strconv.FormatInt(now.UnixMilli(), 10)
	mac := hmac.New(sha256.New, []byte(cfg.APISecret))
	mac.Write([]byte(tsMillis + "A"))
	sig := hex.EncodeToString(mac.Sum(nil))

	fields := []fixfield.Field{
		{Tag: tagAPIKey, Name: "FtxAPIKey", Value: fixfield.NewStringValue(cfg.APIKey)},
		{Tag: tagTimestamp, Name: "FtxTimestamp", Value: fixfield.NewStringValue(tsMillis)},
		{Tag: tagSignature, Name: "FtxSignature", Value: fixfield.NewStringValue(sig)},
	}
	if cfg.PortfolioID != "" {
		fields = append(fields, fixfield.Field{
			Tag: tagSubaccount, Name: "FtxSubaccount", Value: fixfield.NewStringValue(cfg.PortfolioID),
		})
	}
	return fields
}
