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

import "testing"

func TestUTCTimestampRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"whole seconds", "20200101-00:00:00"},
		{"with millis", "20200101-00:00:00.123"},
		{"end of year", "20201231-23:59:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseUTCTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseUTCTimestamp(%q): %v", tt.in, err)
			}
			if got := ts.String(); got != tt.in {
				t.Fatalf("round-trip mismatch: got %q, want %q", got, tt.in)
			}
		})
	}
}

func TestUTCTimestampZeroPadded(t *testing.T) {
	// The source's printer was observed to omit zero-padding; the spec
	// mandates fixed-width YYYYMMDD-HH:MM:SS[.sss] regardless.
	ts, err := ParseUTCTimestamp("20200101-01:02:03")
	if err != nil {
		t.Fatalf("ParseUTCTimestamp: %v", err)
	}
	if got := ts.String(); got != "20200101-01:02:03" {
		t.Fatalf("expected zero-padded output, got %q", got)
	}
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("20250615")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := d.String(); got != "20250615" {
		t.Fatalf("got %q, want 20250615", got)
	}
}

func TestTZTimeOnlyRoundTrip(t *testing.T) {
	tests := []string{
		"12:00:00",
		"12:00:00.500",
		"12:00:00Z",
		"12:00:00.500Z",
		"12:00:00+05",
		"12:00:00-05:30",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			parsed, err := ParseTZTimeOnly(in)
			if err != nil {
				t.Fatalf("ParseTZTimeOnly(%q): %v", in, err)
			}
			if got := parsed.String(); got != in {
				t.Fatalf("round-trip mismatch: got %q, want %q", got, in)
			}
		})
	}
}

func TestVersionRoundTrip(t *testing.T) {
	tests := []string{"FIX.4.2", "FIX.4.4", "FIXT.1.1"}
	for _, in := range tests {
		v, err := ParseVersion(in)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", in, err)
		}
		if got := v.String(); got != in {
			t.Fatalf("got %q, want %q", got, in)
		}
	}
}

func TestYesOrNo(t *testing.T) {
	y, err := ParseYesOrNo("Y")
	if err != nil || !y {
		t.Fatalf("expected Y -> true, got %v, %v", y, err)
	}
	n, err := ParseYesOrNo("N")
	if err != nil || n {
		t.Fatalf("expected N -> false, got %v, %v", n, err)
	}
	if _, err := ParseYesOrNo("X"); err == nil {
		t.Fatalf("expected error for invalid YesOrNo")
	}
}
