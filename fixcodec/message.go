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

import "github.com/gurre/prime-fix-md-go/fixfield"

// FieldList is an ordered, lookup-indexed collection of fields within one
// section of a message (header, body, or trailer). Order is preserved
// because some venues are picky about field order on output and because
// a decoded message should echo what arrived; lookup is indexed because
// sessions and adapters mostly want "give me tag 11" rather than a scan.
type FieldList struct {
	fields []fixfield.Field
	index  map[fixfield.Tag]int
}

func newFieldList() *FieldList {
	return &FieldList{index: make(map[fixfield.Tag]int)}
}

// Add appends f. If tag repeats (e.g. a misbehaving venue), the index
// keeps pointing at the first occurrence but both copies remain in
// Fields().
func (l *FieldList) Add(f fixfield.Field) {
	if _, exists := l.index[f.Tag]; !exists {
		l.index[f.Tag] = len(l.fields)
	}
	l.fields = append(l.fields, f)
}

func (l *FieldList) Get(tag fixfield.Tag) (fixfield.Field, bool) {
	i, ok := l.index[tag]
	if !ok {
		return fixfield.Field{}, false
	}
	return l.fields[i], true
}

func (l *FieldList) GetString(tag fixfield.Tag) (string, bool) {
	f, ok := l.Get(tag)
	if !ok {
		return "", false
	}
	return f.Value.Raw(), true
}

func (l *FieldList) Fields() []fixfield.Field { return l.fields }

func (l *FieldList) Len() int { return len(l.fields) }

func (l *FieldList) addRaw(registry *fixfield.Registry, tag fixfield.Tag, valueString string) error {
	f, err := registry.DecodeField(tag, valueString)
	if err != nil {
		return &CodecError{Kind: UnparseableValue, Tag: int(tag), Reason: err.Error()}
	}
	l.Add(f)
	return nil
}

// Group is one decoded repeating group: the tag that declared the entry
// count, the tag that marks the start of each block, and the blocks
// themselves in wire order.
type Group struct {
	CountTag fixfield.Tag
	Delim    fixfield.Tag
	Blocks   [][]fixfield.Field
}

// Message is a decoded (or not-yet-encoded) FIX message, split into the
// three sections the protocol always frames around, plus any repeating
// groups found in the body keyed by their count tag.
type Message struct {
	Header  *FieldList
	Body    *FieldList
	Trailer *FieldList
	Groups  map[fixfield.Tag]*Group
}

func NewMessage() *Message {
	return &Message{
		Header:  newFieldList(),
		Body:    newFieldList(),
		Trailer: newFieldList(),
		Groups:  make(map[fixfield.Tag]*Group),
	}
}

// MsgType returns the header's MsgType (tag 35), if present.
func (m *Message) MsgType() (string, bool) { return m.Header.GetString(35) }

// MsgSeqNum returns the header's MsgSeqNum (tag 34) as an integer.
func (m *Message) MsgSeqNum() (int64, bool) {
	f, ok := m.Header.Get(34)
	if !ok {
		return 0, false
	}
	return f.Value.Int()
}
