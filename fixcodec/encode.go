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

package fixcodec

import (
	"bytes"
	"fmt"

	"github.com/gurre/prime-fix-md-go/fixfield"
)

// Encode renders msg to the wire. It recomputes BodyLength over every
// field between BeginString and CheckSum, and recomputes CheckSum as the
// mod-256 arithmetic sum of every preceding byte: neither is trusted
// from whatever the caller happened to put in Header/Trailer.
//
// The caller must have already populated msg.Header with BeginString (8)
// and the rest of the session header (MsgType, SenderCompID,
// TargetCompID, MsgSeqNum, SendingTime, ...); Encode does not invent
// sequencing or timing, that is the session engine's job.
func Encode(registry *fixfield.Registry, msg *Message) ([]byte, error) {
	beginField, ok := msg.Header.Get(8)
	if !ok {
		return nil, &CodecError{Kind: MalformedHeader, Reason: "header missing BeginString (tag 8)"}
	}

	var body bytes.Buffer
	for _, f := range msg.Header.Fields() {
		if f.Tag == 8 || f.Tag == 9 {
			continue
		}
		if err := encodeField(registry, f, &body); err != nil {
			return nil, err
		}
	}
	for _, f := range msg.Body.Fields() {
		if err := encodeField(registry, f, &body); err != nil {
			return nil, err
		}
		if grp, ok := msg.Groups[f.Tag]; ok {
			for _, block := range grp.Blocks {
				for _, bf := range block {
					if err := encodeField(registry, bf, &body); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	var out bytes.Buffer
	if err := encodeField(registry, beginField, &out); err != nil {
		return nil, err
	}
	bodyLenField, err := registry.DecodeField(9, fmt.Sprintf("%d", body.Len()))
	if err != nil {
		return nil, err
	}
	if err := encodeField(registry, bodyLenField, &out); err != nil {
		return nil, err
	}
	out.Write(body.Bytes())

	sum := 0
	for _, b := range out.Bytes() {
		sum += int(b)
	}
	checksumField, err := registry.DecodeField(10, fmt.Sprintf("%03d", sum%256))
	if err != nil {
		return nil, err
	}
	if err := encodeField(registry, checksumField, &out); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func encodeField(registry *fixfield.Registry, f fixfield.Field, buf *bytes.Buffer) error {
	_, _, err := registry.EncodeField(f, buf)
	if err != nil {
		return &CodecError{Kind: UnparseableValue, Tag: int(f.Tag), Reason: err.Error()}
	}
	return nil
}
