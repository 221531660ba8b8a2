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
	"context"
	"testing"
	"time"

	"github.com/gurre/prime-fix-md-go/fixfield"
)

func buildLogon(t *testing.T, registry *fixfield.Registry) *Message {
	t.Helper()
	return buildLogonWithSeq(t, registry, "1")
}

func buildLogonWithSeq(t *testing.T, registry *fixfield.Registry, seq string) *Message {
	t.Helper()
	msg := NewMessage()

	add := func(list *FieldList, tag fixfield.Tag, raw string) {
		f, err := registry.DecodeField(tag, raw)
		if err != nil {
			t.Fatalf("DecodeField(%d, %q): %v", tag, raw, err)
		}
		list.Add(f)
	}

	add(msg.Header, 8, "FIX.4.4")
	add(msg.Header, 35, "A")
	add(msg.Header, 49, "CLIENT")
	add(msg.Header, 56, "VENUE")
	add(msg.Header, 34, seq)
	add(msg.Header, 52, "20250615-00:00:00")

	add(msg.Body, 98, "0")
	add(msg.Body, 108, "30")
	add(msg.Body, 141, "Y")

	return msg
}

// TestCodecRoundTrip is the universal property: decode(encode(m)) == m
// for every field the message carries.
func TestCodecRoundTrip(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	groups := DefaultGroups()

	msg := buildLogon(t, registry)
	raw, err := Encode(registry, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(registry, groups, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for _, want := range msg.Header.Fields() {
		gf, ok := got.Header.Get(want.Tag)
		if !ok {
			t.Fatalf("header tag %d missing after round trip", want.Tag)
		}
		if !gf.Equal(want) {
			t.Fatalf("header tag %d: got %q, want %q", want.Tag, gf.Value.Raw(), want.Value.Raw())
		}
	}
	for _, want := range msg.Body.Fields() {
		gf, ok := got.Body.Get(want.Tag)
		if !ok {
			t.Fatalf("body tag %d missing after round trip", want.Tag)
		}
		if !gf.Equal(want) {
			t.Fatalf("body tag %d: got %q, want %q", want.Tag, gf.Value.Raw(), want.Value.Raw())
		}
	}
}

// TestChecksumSoundness is the universal property: Decode rejects any
// frame whose trailing checksum does not match the mod-256 sum of the
// preceding bytes, even if BodyLength is internally consistent.
func TestChecksumSoundness(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	groups := DefaultGroups()

	msg := buildLogon(t, registry)
	raw, err := Encode(registry, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	corrupted := append([]byte(nil), raw...)
	// Flip the first of the three checksum digits, staying within '0'-'9'
	// so the corruption is a wrong checksum, not a malformed one.
	idx := len(corrupted) - 4
	if corrupted[idx] == '9' {
		corrupted[idx] = '0'
	} else {
		corrupted[idx]++
	}

	if _, err := Decode(registry, groups, corrupted); err == nil {
		t.Fatalf("expected BadChecksum error for corrupted frame")
	} else if ce, ok := err.(*CodecError); !ok || ce.Kind != BadChecksum {
		t.Fatalf("expected BadChecksum CodecError, got %v", err)
	}
}

// TestDecodeRejectsMalformedHeader covers scenario S1: a frame that does
// not begin with BeginString is rejected outright.
func TestDecodeRejectsMalformedHeader(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	groups := DefaultGroups()

	_, err := Decode(registry, groups, []byte("35=A\x0110=000\x01"))
	if err == nil {
		t.Fatalf("expected MalformedHeader error")
	}
	ce, ok := err.(*CodecError)
	if !ok || ce.Kind != MalformedHeader {
		t.Fatalf("expected MalformedHeader CodecError, got %v", err)
	}
}

// TestDecodeRejectsTruncated covers scenario S2: BodyLength claims more
// bytes than the frame actually carries.
func TestDecodeRejectsTruncated(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	groups := DefaultGroups()

	raw := []byte("8=FIX.4.4\x019=500\x0135=A\x0110=000\x01")
	_, err := Decode(registry, groups, raw)
	if err == nil {
		t.Fatalf("expected Truncated error")
	}
	ce, ok := err.(*CodecError)
	if !ok || ce.Kind != Truncated {
		t.Fatalf("expected Truncated CodecError, got %v", err)
	}
}

// TestDecodePreservesUnknownTag covers the protocol's requirement that an
// unregistered-but-well-formed tag is preserved (not dropped) and can
// still be re-encoded.
func TestDecodePreservesUnknownTag(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	groups := DefaultGroups()

	msg := buildLogon(t, registry)
	msg.Body.Add(fixfield.Field{Tag: 9999, Value: fixfield.NewUnknownValue("custom-venue-value")})

	raw, err := Encode(registry, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(registry, groups, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	f, ok := got.Body.Get(9999)
	if !ok {
		t.Fatalf("expected unknown tag 9999 to survive round trip")
	}
	if f.Value.Kind() != fixfield.KindUnknown {
		t.Fatalf("expected KindUnknown, got %v", f.Value.Kind())
	}
	if f.Value.Raw() != "custom-venue-value" {
		t.Fatalf("got %q, want %q", f.Value.Raw(), "custom-venue-value")
	}
}

// TestDecodeRepeatingGroup covers a MarketDataRequest-shaped message
// carrying the NoRelatedSym and NoMDEntryTypes groups.
func TestDecodeRepeatingGroup(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	groups := DefaultGroups()

	msg := NewMessage()
	add := func(list *FieldList, tag fixfield.Tag, raw string) {
		f, err := registry.DecodeField(tag, raw)
		if err != nil {
			t.Fatalf("DecodeField(%d, %q): %v", tag, raw, err)
		}
		list.Add(f)
	}
	add(msg.Header, 8, "FIX.4.4")
	add(msg.Header, 35, "V")
	add(msg.Header, 49, "CLIENT")
	add(msg.Header, 56, "VENUE")
	add(msg.Header, 34, "7")
	add(msg.Header, 52, "20250615-00:00:00")

	add(msg.Body, 262, "MDR-1")
	add(msg.Body, 263, "1")
	add(msg.Body, 264, "1")

	entryTypesCount, err := registry.DecodeField(267, "2")
	if err != nil {
		t.Fatalf("DecodeField 267: %v", err)
	}
	msg.Body.Add(entryTypesCount)
	bidField, _ := registry.DecodeField(269, "0")
	offerField, _ := registry.DecodeField(269, "1")
	msg.Groups[267] = &Group{
		CountTag: 267,
		Delim:    269,
		Blocks:   [][]fixfield.Field{{bidField}, {offerField}},
	}

	symCount, err := registry.DecodeField(146, "2")
	if err != nil {
		t.Fatalf("DecodeField 146: %v", err)
	}
	msg.Body.Add(symCount)
	symA, _ := registry.DecodeField(55, "BTC-USD")
	symB, _ := registry.DecodeField(55, "ETH-USD")
	msg.Groups[146] = &Group{
		CountTag: 146,
		Delim:    55,
		Blocks:   [][]fixfield.Field{{symA}, {symB}},
	}

	raw, err := Encode(registry, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(registry, groups, raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	grp, ok := got.Groups[267]
	if !ok {
		t.Fatalf("expected group 267 to decode")
	}
	if len(grp.Blocks) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(grp.Blocks))
	}
	if grp.Blocks[0][0].Value.Raw() != "0" || grp.Blocks[1][0].Value.Raw() != "1" {
		t.Fatalf("unexpected MDEntryType values: %v", grp.Blocks)
	}

	symGrp, ok := got.Groups[146]
	if !ok {
		t.Fatalf("expected group 146 to decode")
	}
	if symGrp.Blocks[0][0].Value.Raw() != "BTC-USD" || symGrp.Blocks[1][0].Value.Raw() != "ETH-USD" {
		t.Fatalf("unexpected Symbol values: %v", symGrp.Blocks)
	}
}

// TestFrameReadsOneMessageAtATime covers scenario S5: two back-to-back
// messages on the same stream are read as two distinct frames, not
// merged or truncated into one another.
func TestFrameReadsOneMessageAtATime(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	groups := DefaultGroups()

	msg1 := buildLogon(t, registry)
	raw1, err := Encode(registry, msg1)
	if err != nil {
		t.Fatalf("Encode msg1: %v", err)
	}
	msg2 := buildLogonWithSeq(t, registry, "2")
	raw2, err := Encode(registry, msg2)
	if err != nil {
		t.Fatalf("Encode msg2: %v", err)
	}

	stream := bytes.NewBuffer(append(append([]byte{}, raw1...), raw2...))
	frame := NewFrame(stream)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	first, err := frame.ReadMessage(ctx)
	if err != nil {
		t.Fatalf("ReadMessage 1: %v", err)
	}
	decoded1, err := Decode(registry, groups, first)
	if err != nil {
		t.Fatalf("Decode 1: %v", err)
	}
	if seq, _ := decoded1.MsgSeqNum(); seq != 1 {
		t.Fatalf("expected seq 1, got %d", seq)
	}

	second, err := frame.ReadMessage(ctx)
	if err != nil {
		t.Fatalf("ReadMessage 2: %v", err)
	}
	decoded2, err := Decode(registry, groups, second)
	if err != nil {
		t.Fatalf("Decode 2: %v", err)
	}
	if seq, _ := decoded2.MsgSeqNum(); seq != 2 {
		t.Fatalf("expected seq 2, got %d", seq)
	}
}
