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

package fixfield

import (
	"bytes"
	"testing"
)

func TestRegistryCollisionRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stringDescriptor(100, "Foo")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(stringDescriptor(100, "Bar")); err == nil {
		t.Fatalf("expected tag collision error")
	}
	if err := r.Register(stringDescriptor(101, "Foo")); err == nil {
		t.Fatalf("expected name collision error")
	}
}

func TestRegistrySealedRejectsRegistration(t *testing.T) {
	r := NewRegistry()
	r.Seal()
	if err := r.Register(stringDescriptor(200, "Baz")); err == nil {
		t.Fatalf("expected sealed registry to reject registration")
	}
}

func TestDecodeFieldUnknownTagPreserved(t *testing.T) {
	r := Default()
	r.Seal()

	f, err := r.DecodeField(99999, "hello")
	if err != nil {
		t.Fatalf("DecodeField: %v", err)
	}
	if f.Value.Kind() != KindUnknown {
		t.Fatalf("expected KindUnknown, got %v", f.Value.Kind())
	}
	if f.Value.Raw() != "hello" {
		t.Fatalf("expected raw value preserved, got %q", f.Value.Raw())
	}
}

func TestDecodeFieldKnownTag(t *testing.T) {
	r := Default()
	r.Seal()

	f, err := r.DecodeField(108, "30")
	if err != nil {
		t.Fatalf("DecodeField: %v", err)
	}
	if f.Name != "HeartBtInt" {
		t.Fatalf("expected name HeartBtInt, got %q", f.Name)
	}
	n, ok := f.Value.Int()
	if !ok || n != 30 {
		t.Fatalf("expected int 30, got %v ok=%v", n, ok)
	}
}

func TestParseRaw(t *testing.T) {
	tag, val, err := ParseRaw("35=A")
	if err != nil {
		t.Fatalf("ParseRaw: %v", err)
	}
	if tag != 35 || val != "A" {
		t.Fatalf("got tag=%d val=%q", tag, val)
	}

	if _, _, err := ParseRaw("no-equals-sign"); err == nil {
		t.Fatalf("expected error for missing '='")
	}
	if _, _, err := ParseRaw("abc=1"); err == nil {
		t.Fatalf("expected error for non-integer tag")
	}
}

func TestEncodeFieldRoundTrip(t *testing.T) {
	r := Default()
	r.Seal()

	f, err := r.DecodeField(108, "30")
	if err != nil {
		t.Fatalf("DecodeField: %v", err)
	}

	var buf bytes.Buffer
	n, sum, err := r.EncodeField(f, &buf)
	if err != nil {
		t.Fatalf("EncodeField: %v", err)
	}
	want := "108=30\x01"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if n != len(want) {
		t.Fatalf("got n=%d, want %d", n, len(want))
	}
	expectedSum := 0
	for _, b := range []byte(want) {
		expectedSum += int(b)
	}
	if sum != expectedSum {
		t.Fatalf("got sum=%d, want %d", sum, expectedSum)
	}
}
