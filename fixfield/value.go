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

	"github.com/shopspring/decimal"
)

// Kind discriminates the closed universe of field value representations.
// Most of the thousands of FIX tags share one of these handfuls of
// representations; an open, per-tag universe would only be needed for
// the printer/parser pair, which the registry already supports per-tag.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTimestamp
	KindDate
	KindTimeOnly
	KindVersion
	KindEnum
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindTimestamp:
		return "Timestamp"
	case KindDate:
		return "Date"
	case KindTimeOnly:
		return "TimeOnly"
	case KindVersion:
		return "Version"
	case KindEnum:
		return "Enum"
	case KindUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Value is a typed field value. It is immutable once constructed and
// always carries a raw string: the wire text for string, enum and
// unknown values, and the printed form of the parsed value for the
// other kinds (a decimal parsed from "50000.00" holds "50000"). Two
// Values are equal iff their raw strings match — satisfying the spec's "two
// fields are equal iff their tags and value representations match"
// without needing kind-specific comparison.
type Value struct {
	kind Kind
	raw  string

	i   int64
	f   decimal.Decimal
	b   bool
	ts  UTCTimestamp
	dt  Date
	to  TZTimeOnly
	ver Version
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) Raw() string  { return v.raw }
func (v Value) String() string { return v.raw }

func (v Value) Equal(o Value) bool {
	return v.raw == o.raw
}

func NewStringValue(s string) Value {
	return Value{kind: KindString, raw: s}
}

func NewIntValue(i int64) Value {
	return Value{kind: KindInt, raw: fmt.Sprintf("%d", i), i: i}
}

func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

func NewFloatValue(f decimal.Decimal) Value {
	return Value{kind: KindFloat, raw: f.String(), f: f}
}

func (v Value) Float() (decimal.Decimal, bool) {
	if v.kind != KindFloat {
		return decimal.Decimal{}, false
	}
	return v.f, true
}

func NewBoolValue(y YesOrNo) Value {
	return Value{kind: KindBool, raw: y.String(), b: bool(y)}
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func NewTimestampValue(t UTCTimestamp) Value {
	return Value{kind: KindTimestamp, raw: t.String(), ts: t}
}

func (v Value) Timestamp() (UTCTimestamp, bool) {
	if v.kind != KindTimestamp {
		return UTCTimestamp{}, false
	}
	return v.ts, true
}

func NewDateValue(d Date) Value {
	return Value{kind: KindDate, raw: d.String(), dt: d}
}

func (v Value) Date() (Date, bool) {
	if v.kind != KindDate {
		return Date{}, false
	}
	return v.dt, true
}

func NewTimeOnlyValue(t TZTimeOnly) Value {
	return Value{kind: KindTimeOnly, raw: t.String(), to: t}
}

func (v Value) TimeOnly() (TZTimeOnly, bool) {
	if v.kind != KindTimeOnly {
		return TZTimeOnly{}, false
	}
	return v.to, true
}

func NewVersionValue(ver Version) Value {
	return Value{kind: KindVersion, raw: ver.String(), ver: ver}
}

func (v Value) Version() (Version, bool) {
	if v.kind != KindVersion {
		return Version{}, false
	}
	return v.ver, true
}

// NewEnumValue wraps a validated enum wire value; the raw string IS the
// wire code (e.g. "1" for Side Buy).
func NewEnumValue(raw string) Value {
	return Value{kind: KindEnum, raw: raw}
}

// NewUnknownValue preserves a tag's raw string when no descriptor claims
// it. The spec requires unknown-but-valid tags to flow through rather
// than be dropped.
func NewUnknownValue(raw string) Value {
	return Value{kind: KindUnknown, raw: raw}
}

// Field is an (tag, name, typed value) triple. Fields are immutable.
type Field struct {
	Tag   Tag
	Name  string
	Value Value
}

func (f Field) Equal(o Field) bool {
	return f.Tag == o.Tag && f.Value.Equal(o.Value)
}
