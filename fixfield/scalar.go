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
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UTCTimestamp is the FIX UTCTimestamp type: YYYYMMDD-HH:MM:SS or
// YYYYMMDD-HH:MM:SS.sss, always UTC.
type UTCTimestamp struct {
	Time      time.Time
	HasMillis bool
}

const (
	utcTimestampLayout       = "20060102-15:04:05"
	utcTimestampMillisLayout = "20060102-15:04:05.000"
)

// ParseUTCTimestamp accepts both the second and millisecond forms.
func ParseUTCTimestamp(s string) (UTCTimestamp, error) {
	if t, err := time.ParseInLocation(utcTimestampMillisLayout, s, time.UTC); err == nil {
		return UTCTimestamp{Time: t, HasMillis: true}, nil
	}
	t, err := time.ParseInLocation(utcTimestampLayout, s, time.UTC)
	if err != nil {
		return UTCTimestamp{}, fmt.Errorf("fixfield: invalid UTCTimestamp %q: %w", s, err)
	}
	return UTCTimestamp{Time: t}, nil
}

// String prints the millisecond form only when the fractional second is
// nonzero; both forms are always fixed-width and zero-padded.
func (t UTCTimestamp) String() string {
	if t.Time.Nanosecond() != 0 {
		return t.Time.UTC().Format(utcTimestampMillisLayout)
	}
	return t.Time.UTC().Format(utcTimestampLayout)
}

// Date is the FIX Date (LocalMktDate/UTCDate) type: YYYYMMDD.
type Date struct {
	Time time.Time
}

const dateLayout = "20060102"

func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("fixfield: invalid Date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Time.UTC().Format(dateLayout)
}

// TZTimeOnly is HH:MM:SS[.sss][Z|+HH|-HH|+HH:MM|-HH:MM].
type TZTimeOnly struct {
	Hour, Min, Sec, Millis int
	HasMillis              bool
	HasOffset              bool
	OffsetSign             int // +1 or -1
	OffsetHour, OffsetMin  int
	UTC                    bool // explicit "Z" suffix
}

func ParseTZTimeOnly(s string) (TZTimeOnly, error) {
	var out TZTimeOnly
	body := s
	tz := ""

	switch {
	case strings.HasSuffix(body, "Z"):
		out.UTC = true
		body = strings.TrimSuffix(body, "Z")
	default:
		// look for a +HH[:MM] or -HH[:MM] suffix after the seconds/millis field
		for i := len(body) - 1; i >= 0; i-- {
			if body[i] == '+' || body[i] == '-' {
				tz = body[i:]
				body = body[:i]
				break
			}
		}
	}

	timePart := body
	millisPart := ""
	if idx := strings.IndexByte(body, '.'); idx != -1 {
		timePart = body[:idx]
		millisPart = body[idx+1:]
	}

	hms := strings.Split(timePart, ":")
	if len(hms) != 3 {
		return out, fmt.Errorf("fixfield: invalid TZTimeOnly %q", s)
	}
	var err error
	if out.Hour, err = strconv.Atoi(hms[0]); err != nil {
		return out, fmt.Errorf("fixfield: invalid TZTimeOnly hour in %q: %w", s, err)
	}
	if out.Min, err = strconv.Atoi(hms[1]); err != nil {
		return out, fmt.Errorf("fixfield: invalid TZTimeOnly minute in %q: %w", s, err)
	}
	if out.Sec, err = strconv.Atoi(hms[2]); err != nil {
		return out, fmt.Errorf("fixfield: invalid TZTimeOnly second in %q: %w", s, err)
	}

	if millisPart != "" {
		millis, err := strconv.Atoi(millisPart)
		if err != nil {
			return out, fmt.Errorf("fixfield: invalid TZTimeOnly fraction in %q: %w", s, err)
		}
		out.Millis = millis
		out.HasMillis = true
	}

	if tz != "" {
		out.HasOffset = true
		switch tz[0] {
		case '+':
			out.OffsetSign = 1
		case '-':
			out.OffsetSign = -1
		}
		rest := tz[1:]
		parts := strings.Split(rest, ":")
		if out.OffsetHour, err = strconv.Atoi(parts[0]); err != nil {
			return out, fmt.Errorf("fixfield: invalid TZTimeOnly offset in %q: %w", s, err)
		}
		if len(parts) == 2 {
			if out.OffsetMin, err = strconv.Atoi(parts[1]); err != nil {
				return out, fmt.Errorf("fixfield: invalid TZTimeOnly offset minutes in %q: %w", s, err)
			}
		}
	}

	return out, nil
}

func (t TZTimeOnly) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d:%02d", t.Hour, t.Min, t.Sec)
	if t.HasMillis {
		fmt.Fprintf(&b, ".%03d", t.Millis)
	}
	switch {
	case t.UTC:
		b.WriteByte('Z')
	case t.HasOffset:
		sign := byte('+')
		if t.OffsetSign < 0 {
			sign = '-'
		}
		if t.OffsetMin != 0 {
			fmt.Fprintf(&b, "%c%02d:%02d", sign, t.OffsetHour, t.OffsetMin)
		} else {
			fmt.Fprintf(&b, "%c%02d", sign, t.OffsetHour)
		}
	}
	return b.String()
}

// Version is the BeginString value: FIX.m.n or FIXT.m.n.
type Version struct {
	Transport bool // true for FIXT
	Major     int
	Minor     int
}

func ParseVersion(s string) (Version, error) {
	var v Version
	rest := s
	switch {
	case strings.HasPrefix(s, "FIXT."):
		v.Transport = true
		rest = strings.TrimPrefix(s, "FIXT.")
	case strings.HasPrefix(s, "FIX."):
		rest = strings.TrimPrefix(s, "FIX.")
	default:
		return v, fmt.Errorf("fixfield: invalid Version %q", s)
	}
	parts := strings.SplitN(rest, ".", 2)
	if len(parts) != 2 {
		return v, fmt.Errorf("fixfield: invalid Version %q", s)
	}
	var err error
	if v.Major, err = strconv.Atoi(parts[0]); err != nil {
		return v, fmt.Errorf("fixfield: invalid Version major in %q: %w", s, err)
	}
	if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return v, fmt.Errorf("fixfield: invalid Version minor in %q: %w", s, err)
	}
	return v, nil
}

func (v Version) String() string {
	prefix := "FIX"
	if v.Transport {
		prefix = "FIXT"
	}
	return fmt.Sprintf("%s.%d.%d", prefix, v.Major, v.Minor)
}

// YesOrNo is the FIX Boolean type: "Y"/"N".
type YesOrNo bool

func ParseYesOrNo(s string) (YesOrNo, error) {
	switch s {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, fmt.Errorf("fixfield: invalid YesOrNo %q", s)
	}
}

func (y YesOrNo) String() string {
	if y {
		return "Y"
	}
	return "N"
}
