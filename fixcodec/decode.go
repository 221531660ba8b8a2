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
	"fmt"
	"strconv"
	"strings"

	"github.com/gurre/prime-fix-md-go/fixfield"
)

// headerTags and trailerTags classify which session-envelope tags belong
// in Header/Trailer rather than Body when a message is decoded from the
// wire. Anything not listed here lands in Body, including group count
// tags (which also gain an entry in Message.Groups).
var headerTags = map[fixfield.Tag]bool{
	8: true, 9: true, 35: true, 49: true, 50: true, 56: true, 57: true,
	34: true, 43: true, 97: true, 52: true, 122: true,
}

var trailerTags = map[fixfield.Tag]bool{10: true}

// Decode parses one complete frame (as produced by Frame.ReadMessage)
// into a Message. It verifies BodyLength and CheckSum before decoding a
// single field, per the protocol's framing invariants, and expands any
// repeating groups named in groups.
func Decode(registry *fixfield.Registry, groups *GroupTable, raw []byte) (*Message, error) {
	s := string(raw)

	if !strings.HasPrefix(s, "8=") {
		return nil, &CodecError{Kind: MalformedHeader, Reason: "missing BeginString (tag 8)"}
	}
	beginIdx := strings.IndexByte(s, fixfield.SOH)
	if beginIdx == -1 {
		return nil, &CodecError{Kind: Truncated, Reason: "BeginString field not terminated"}
	}
	beginString := s[2:beginIdx]
	rest := s[beginIdx+1:]

	if !strings.HasPrefix(rest, "9=") {
		return nil, &CodecError{Kind: MalformedHeader, Reason: "missing BodyLength (tag 9)"}
	}
	lenFieldEnd := strings.IndexByte(rest, fixfield.SOH)
	if lenFieldEnd == -1 {
		return nil, &CodecError{Kind: Truncated, Reason: "BodyLength field not terminated"}
	}
	bodyLenStr := rest[2:lenFieldEnd]
	bodyLen, err := strconv.Atoi(bodyLenStr)
	if err != nil || bodyLen < 0 {
		return nil, &CodecError{Kind: MalformedHeader, Reason: "BodyLength is not a non-negative integer"}
	}

	afterLen := rest[lenFieldEnd+1:]
	if len(afterLen) < bodyLen {
		return nil, &CodecError{Kind: Truncated, Reason: "fewer bytes available than BodyLength declares"}
	}
	body := afterLen[:bodyLen]
	trailer := afterLen[bodyLen:]

	if !strings.HasPrefix(trailer, "10=") {
		return nil, &CodecError{Kind: Truncated, Reason: "missing CheckSum field (tag 10) after BodyLength bytes"}
	}
	checksumEnd := strings.IndexByte(trailer, fixfield.SOH)
	if checksumEnd == -1 {
		return nil, &CodecError{Kind: Truncated, Reason: "CheckSum field not terminated"}
	}
	checksumStr := trailer[3:checksumEnd]
	wantChecksum, err := strconv.Atoi(checksumStr)
	if err != nil {
		return nil, &CodecError{Kind: MalformedHeader, Reason: "CheckSum is not a numeric value"}
	}

	checksummed := s[:beginIdx+1] + "9=" + bodyLenStr + string(fixfield.SOH) + body
	sum := 0
	for i := 0; i < len(checksummed); i++ {
		sum += int(checksummed[i])
	}
	gotChecksum := sum % 256
	if gotChecksum != wantChecksum {
		return nil, &CodecError{Kind: BadChecksum, Reason: fmt.Sprintf("computed %03d, wire declared %03d", gotChecksum, wantChecksum)}
	}

	msg := NewMessage()
	if err := msg.Header.addRaw(registry, 8, beginString); err != nil {
		return nil, err
	}
	if err := msg.Header.addRaw(registry, 9, bodyLenStr); err != nil {
		return nil, err
	}

	rawFields := strings.Split(body, string(fixfield.SOH))
	if len(rawFields) > 0 && rawFields[len(rawFields)-1] == "" {
		rawFields = rawFields[:len(rawFields)-1]
	}

	if err := decodeFields(registry, groups, rawFields, msg); err != nil {
		return nil, err
	}

	if err := msg.Trailer.addRaw(registry, 10, checksumStr); err != nil {
		return nil, err
	}

	return msg, nil
}

func decodeFields(registry *fixfield.Registry, groups *GroupTable, raw []string, msg *Message) error {
	i := 0
	for i < len(raw) {
		tag, valStr, err := fixfield.ParseRaw(raw[i])
		if err != nil {
			return &CodecError{Kind: UnparseableValue, Reason: err.Error()}
		}
		if valStr == "" {
			return &CodecError{Kind: EmptyValue, Tag: int(tag)}
		}

		f, err := registry.DecodeField(tag, valStr)
		if err != nil {
			return &CodecError{Kind: UnparseableValue, Tag: int(tag), Reason: err.Error()}
		}

		if spec, ok := groups.SpecFor(tag); ok {
			count, _ := f.Value.Int()
			msg.Body.Add(f)
			grp := &Group{CountTag: tag, Delim: spec.Delim}
			i++
			for b := int64(0); b < count; b++ {
				block, consumed, err := consumeBlock(registry, raw, i, spec)
				if err != nil {
					return err
				}
				grp.Blocks = append(grp.Blocks, block)
				i += consumed
			}
			msg.Groups[tag] = grp
			continue
		}

		switch {
		case headerTags[tag]:
			switch tag {
			case 8, 9, 34, 35, 49, 52, 56:
				if _, dup := msg.Header.Get(tag); dup {
					return &CodecError{Kind: HeaderError, Tag: int(tag)}
				}
			}
			msg.Header.Add(f)
		case trailerTags[tag]:
			// The trailer is re-derived and appended by the caller once
			// the checksum has already been verified against raw bytes.
		default:
			msg.Body.Add(f)
		}
		i++
	}
	return nil
}

// consumeBlock reads one repeating-group entry starting at raw[start],
// which must be the group's delimiter tag. It keeps consuming fields
// that belong to spec.Members until either the delimiter tag reappears
// (the next entry) or a tag outside Members is seen (the group ended).
// It returns the entry's fields and how many raw fields were consumed.
func consumeBlock(registry *fixfield.Registry, raw []string, start int, spec GroupSpec) ([]fixfield.Field, int, error) {
	if start >= len(raw) {
		return nil, 0, &CodecError{Kind: Truncated, Reason: fmt.Sprintf("group %d entry truncated", spec.CountTag)}
	}
	firstTag, _, err := fixfield.ParseRaw(raw[start])
	if err != nil {
		return nil, 0, &CodecError{Kind: UnparseableValue, Reason: err.Error()}
	}
	if firstTag != spec.Delim {
		return nil, 0, &CodecError{Kind: MalformedHeader, Reason: fmt.Sprintf("group %d: expected delimiter tag %d, got %d", spec.CountTag, spec.Delim, firstTag)}
	}

	var block []fixfield.Field
	i := start
	for i < len(raw) {
		t, v, err := fixfield.ParseRaw(raw[i])
		if err != nil {
			return nil, 0, &CodecError{Kind: UnparseableValue, Reason: err.Error()}
		}
		if len(block) > 0 && t == spec.Delim {
			break
		}
		if !spec.Members[t] {
			break
		}
		f, err := registry.DecodeField(t, v)
		if err != nil {
			return nil, 0, &CodecError{Kind: UnparseableValue, Tag: int(t), Reason: err.Error()}
		}
		block = append(block, f)
		i++
	}
	return block, i - start, nil
}
