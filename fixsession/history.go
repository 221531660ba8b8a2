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

package fixsession

import (
	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixfield"
)

type historyEntry struct {
	seq         int64
	msgType     string
	sendingTime fixfield.UTCTimestamp
	bodyFields  []fixfield.Field
	groups      map[fixfield.Tag]*fixcodec.Group
}

// History is a bounded ring buffer of the session's own sent application
// messages, keyed by MsgSeqNum, used to service ResendRequest without
// unbounded memory growth. Only application messages are retained —
// administrative messages in a resend range are replaced by a single
// SequenceReset-GapFill rather than replayed — so entries here are
// always real wire content worth resending verbatim.
type History struct {
	entries     []historyEntry
	bySeq       map[int64]int
	cap         int
	next        int
	evictedUpTo int64
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{
		entries: make([]historyEntry, 0, capacity),
		bySeq:   make(map[int64]int),
		cap:     capacity,
	}
}

// Add records an application message at seq. Sequence numbers must be
// added in strictly increasing order, which the engine guarantees since
// MsgSeqNum only ever increases.
func (h *History) Add(seq int64, msgType string, sendingTime fixfield.UTCTimestamp, bodyFields []fixfield.Field, groups map[fixfield.Tag]*fixcodec.Group) {
	entry := historyEntry{seq: seq, msgType: msgType, sendingTime: sendingTime, bodyFields: bodyFields, groups: groups}
	if len(h.entries) < h.cap {
		h.entries = append(h.entries, entry)
		h.bySeq[seq] = len(h.entries) - 1
		return
	}
	idx := h.next % h.cap
	evicted := h.entries[idx]
	delete(h.bySeq, evicted.seq)
	if evicted.seq > h.evictedUpTo {
		h.evictedUpTo = evicted.seq
	}
	h.entries[idx] = entry
	h.bySeq[seq] = idx
	h.next++
}

func (h *History) Get(seq int64) (historyEntry, bool) {
	idx, ok := h.bySeq[seq]
	if !ok {
		return historyEntry{}, false
	}
	return h.entries[idx], true
}

// EvictedUpTo returns the highest sequence number that has fallen out of
// the ring. A ResendRequest touching a seq at or below this value covers
// an "unknown prefix" the engine can no longer replay verbatim and must
// answer with SequenceReset-Reset instead of SequenceReset-GapFill.
func (h *History) EvictedUpTo() int64 { return h.evictedUpTo }

func (h *History) Len() int { return len(h.entries) }

func (h *History) Cap() int { return h.cap }
