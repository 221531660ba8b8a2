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
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gurre/prime-fix-md-go/fixfield"
)

// Frame reads one complete FIX message at a time off a byte stream. It
// only knows enough about the envelope (8=.../9=<n>.../10=<ccc>) to find
// message boundaries; it does not interpret field values or validate the
// checksum, both of which are Decode's job.
type Frame struct {
	r *bufio.Reader
}

func NewFrame(r io.Reader) *Frame {
	return &Frame{r: bufio.NewReaderSize(r, 4096)}
}

// ReadMessage blocks until one full message has been read, ctx is
// cancelled, or the underlying stream fails. The returned bytes span
// from "8=" through the trailing SOH after the CheckSum field.
func (fr *Frame) ReadMessage(ctx context.Context) ([]byte, error) {
	type result struct {
		buf []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		buf, err := fr.readOne()
		done <- result{buf, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.buf, res.err
	}
}

func (fr *Frame) readOne() ([]byte, error) {
	begin, err := fr.r.ReadString(fixfield.SOH)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(begin, "8=") {
		return nil, &CodecError{Kind: MalformedHeader, Reason: "stream did not start with BeginString (tag 8)"}
	}

	lenField, err := fr.r.ReadString(fixfield.SOH)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(lenField, "9=") {
		return nil, &CodecError{Kind: MalformedHeader, Reason: "expected BodyLength (tag 9) after BeginString"}
	}
	bodyLenStr := strings.TrimSuffix(lenField[2:], string(fixfield.SOH))
	bodyLen, err := strconv.Atoi(bodyLenStr)
	if err != nil || bodyLen < 0 {
		return nil, &CodecError{Kind: MalformedHeader, Reason: "BodyLength is not a non-negative integer"}
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(fr.r, body); err != nil {
		return nil, &CodecError{Kind: Truncated, Reason: fmt.Sprintf("reading %d BodyLength bytes: %v", bodyLen, err)}
	}

	trailer, err := fr.r.ReadString(fixfield.SOH)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(trailer, "10=") {
		return nil, &CodecError{Kind: Truncated, Reason: "missing CheckSum field (tag 10)"}
	}

	out := make([]byte, 0, len(begin)+len(lenField)+len(body)+len(trailer))
	out = append(out, begin...)
	out = append(out, lenField...)
	out = append(out, body...)
	out = append(out, trailer...)
	return out, nil
}
