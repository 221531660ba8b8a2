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

// Package deribit is a thin Adapter for Deribit's FIX gateway, which
// authenticates a Logon with a RawData challenge rather than a
// password: the client signs SenderCompID+SendingTime with its secret
// and presents the digest as RawData(96)/RawDataLength(95).
package deribit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/venues"
)

const (
	tagRawDataLength = fixfield.Tag(95)
	tagRawData       = fixfield.Tag(96)
)

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Name() string { return "deribit" }

func (Adapter) RegisterFields(reg *fixfield.Registry) {
	reg.MustRegister(fixfield.StringDescriptor(tagRawDataLength, "RawDataLength"))
	reg.MustRegister(fixfield.StringDescriptor(tagRawData, "RawData"))
}

// LogonFields signs SenderCompID+SendingTime with the API secret as an
// HMAC-SHA256 hex digest, presented as a RawData challenge alongside
// its length and the API key as Username(553).
func (a Adapter) LogonFields(cfg venues.Config, now time.Time) []fixfield.Field {
	ts := now.UTC().Format(constants.FixTimeFormat)
	mac := hmac.New(sha256.New, []byte(cfg.APISecret))
	mac.Write([]byte(cfg.SenderCompID + ts))
	sig := hex.EncodeToString(mac.Sum(nil))

	return []fixfield.Field{
		{Tag: 553, Name: "Username", Value: fixfield.NewStringValue(cfg.APIKey)},
		{Tag: tagRawDataLength, Name: "RawDataLength", Value: fixfield.NewStringValue(strconv.Itoa(len(sig)))},
		{Tag: tagRawData, Name: "RawData", Value: fixfield.NewStringValue(sig)},
	}
}
