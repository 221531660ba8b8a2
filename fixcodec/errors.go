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

// Package fixcodec frames and parses the FIX tag-value wire format: the
// 8=/9=/35=.../10= envelope, checksum verification, and repeating-group
// extraction described by the protocol.
package fixcodec

import "fmt"

type CodecErrorKind int

const (
	MalformedHeader CodecErrorKind = iota
	Truncated
	BadChecksum
	EmptyValue
	UnknownTag
	UnparseableValue
	HeaderError
)

// CodecError is the tagged result type for every way a frame can fail to
// decode or a message can fail to encode.
type CodecError struct {
	Kind   CodecErrorKind
	Tag    int
	Reason string
}

func (e *CodecError) Error() string {
	switch e.Kind {
	case MalformedHeader:
		return fmt.Sprintf("fixcodec: malformed header: %s", e.Reason)
	case Truncated:
		return fmt.Sprintf("fixcodec: truncated frame: %s", e.Reason)
	case BadChecksum:
		return fmt.Sprintf("fixcodec: checksum mismatch: %s", e.Reason)
	case EmptyValue:
		return fmt.Sprintf("fixcodec: empty value for tag %d", e.Tag)
	case UnknownTag:
		return fmt.Sprintf("fixcodec: unknown tag %d", e.Tag)
	case UnparseableValue:
		return fmt.Sprintf("fixcodec: tag %d: %s", e.Tag, e.Reason)
	case HeaderError:
		return fmt.Sprintf("fixcodec: duplicate header tag %d", e.Tag)
	default:
		return "fixcodec: codec error"
	}
}
