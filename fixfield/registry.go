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
	"strconv"
	"strings"
)

// SOH is the FIX field delimiter, ASCII 0x01.
const SOH = '\x01'

// Descriptor is an entry in the field registry: a unique tag, a unique
// name, and the parser/printer pair that converts between the wire
// string and the typed Value.
type Descriptor struct {
	Tag   Tag
	Name  string
	Parse func(raw string) (Value, error)
	Print func(v Value) (string, error)
}

// Registry is a catalog of field descriptors, keyed both by tag and by
// name (both injective). It is built explicitly by a constructor and
// sealed before being handed to any session, per the design notes:
// "never expose post-startup mutation." After Seal, Register always
// fails and the registry needs no synchronization for readers.
type Registry struct {
	byTag  map[Tag]Descriptor
	byName map[string]Descriptor
	sealed bool
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		byTag:  make(map[Tag]Descriptor),
		byName: make(map[string]Descriptor),
	}
}

// Register adds a descriptor. It fails with a ConfigError if the tag or
// name collides with an existing entry, or if the registry is sealed.
func (r *Registry) Register(d Descriptor) error {
	if r.sealed {
		return &ConfigError{Kind: RegistrySealed, Tag: d.Tag, Name: d.Name}
	}
	if _, exists := r.byTag[d.Tag]; exists {
		return &ConfigError{Kind: RegistryCollisionTag, Tag: d.Tag}
	}
	if _, exists := r.byName[d.Name]; exists {
		return &ConfigError{Kind: RegistryCollisionName, Name: d.Name}
	}
	r.byTag[d.Tag] = d
	r.byName[d.Name] = d
	return nil
}

// MustRegister panics on a ConfigError. It is intended for package-init
// style registration of the protocol's own standard tags, where a
// collision is a programming error, not a runtime condition.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Seal freezes the registry against further registration. Call this once
// at startup, after core and venue-adapter descriptors are registered,
// and before the registry is handed to any session.
func (r *Registry) Seal() { r.sealed = true }

func (r *Registry) Sealed() bool { return r.sealed }

func (r *Registry) ByTag(t Tag) (Descriptor, bool) {
	d, ok := r.byTag[t]
	return d, ok
}

func (r *Registry) ByName(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Clone copies all descriptors into a new, unsealed registry that can be
// extended without mutating r.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for _, d := range r.byTag {
		out.byTag[d.Tag] = d
		out.byName[d.Name] = d
	}
	return out
}

// ParseRaw splits a raw "tag=value" field on the first '=' and parses the
// tag as an integer.
func ParseRaw(s string) (Tag, string, error) {
	idx := strings.IndexByte(s, '=')
	if idx == -1 {
		return 0, "", &ConfigError{Kind: UnknownField, Name: s}
	}
	n, err := strconv.Atoi(s[:idx])
	if err != nil {
		return 0, "", &ConfigError{Kind: UnknownField, Name: s}
	}
	return Tag(n), s[idx+1:], nil
}

// DecodeField looks up tag's descriptor and invokes its parser. Unknown
// tags are preserved as opaque fields rather than dropped, per the
// protocol's requirement that unknown-but-valid tags flow through for
// inspection.
func (r *Registry) DecodeField(tag Tag, valueString string) (Field, error) {
	d, ok := r.byTag[tag]
	if !ok {
		return Field{Tag: tag, Name: "", Value: NewUnknownValue(valueString)}, nil
	}
	v, err := d.Parse(valueString)
	if err != nil {
		return Field{}, err
	}
	return Field{Tag: tag, Name: d.Name, Value: v}, nil
}

// EncodeField writes "tag=value\x01" into buf and returns the number of
// bytes written and their arithmetic sum, for checksum accumulation by
// the caller (fixcodec.Encode).
func (r *Registry) EncodeField(f Field, buf *bytes.Buffer) (n int, sum int, err error) {
	var printed string
	if d, ok := r.byTag[f.Tag]; ok && d.Print != nil {
		printed, err = d.Print(f.Value)
		if err != nil {
			return 0, 0, err
		}
	} else {
		printed = f.Value.Raw()
	}

	start := buf.Len()
	buf.WriteString(f.Tag.String())
	buf.WriteByte('=')
	buf.WriteString(printed)
	buf.WriteByte(SOH)
	written := buf.Bytes()[start:]

	sum = 0
	for _, b := range written {
		sum += int(b)
	}
	return len(written), sum, nil
}
