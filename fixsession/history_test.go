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

package fixsession_test

import (
	"testing"

	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
)

// TestHistoryBound is the universal property: the ring never holds more
// than its configured capacity, and always holds the most recent
// entries.
func TestHistoryBound(t *testing.T) {
	h := fixsession.NewHistory(3)
	for seq := int64(1); seq <= 10; seq++ {
		h.Add(seq, "D", fixfield.UTCTimestamp{}, nil, nil)
	}

	if h.Len() != 3 {
		t.Fatalf("expected len 3, got %d", h.Len())
	}
	for seq := int64(8); seq <= 10; seq++ {
		if _, ok := h.Get(seq); !ok {
			t.Fatalf("expected seq %d to still be retained", seq)
		}
	}
	for seq := int64(1); seq <= 7; seq++ {
		if _, ok := h.Get(seq); ok {
			t.Fatalf("expected seq %d to have been evicted", seq)
		}
	}
	if h.EvictedUpTo() != 7 {
		t.Fatalf("expected EvictedUpTo 7, got %d", h.EvictedUpTo())
	}
}

func TestHistoryGetMissing(t *testing.T) {
	h := fixsession.NewHistory(5)
	h.Add(1, "D", fixfield.UTCTimestamp{}, nil, nil)
	if _, ok := h.Get(2); ok {
		t.Fatalf("expected seq 2 to be absent")
	}
}
