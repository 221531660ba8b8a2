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

package fixclient

import (
	"testing"
	"time"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
	"github.com/shopspring/decimal"
)

// Tests for FIX market data group parsing. Entries arrive pre-decoded by
// fixcodec as blocks of fields keyed by the NoMdEntries(268) count tag;
// these tests exercise the conversion from those blocks to Trade structs.

func str(tag fixfield.Tag, v string) fixfield.Field {
	return fixfield.Field{Tag: tag, Value: fixfield.NewStringValue(v)}
}

// inboundWithEntries builds a fixsession.Inbound carrying one NoMdEntries
// group whose blocks are the given field lists.
func inboundWithEntries(blocks ...[]fixfield.Field) fixsession.Inbound {
	return fixsession.Inbound{
		MsgType: constants.MsgTypeMarketDataSnapshot,
		Groups: map[fixfield.Tag]*fixcodec.Group{
			constants.TagNoMdEntries: {CountTag: constants.TagNoMdEntries, Delim: constants.TagMdEntryType, Blocks: blocks},
		},
	}
}

func TestExtractTrades_SingleTradeEntry(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}
	msg := inboundWithEntries([]fixfield.Field{
		str(constants.TagMdEntryType, "2"),
		str(constants.TagMdEntryPx, "50000.00"),
		str(constants.TagMdEntrySize, "1.5000"),
		str(constants.TagMdEntryTime, "20250101-12:00:00"),
		str(constants.TagAggressorSide, "1"),
	})

	trades := app.extractTrades(msg, "BTC-USD", "req-123", false, "1")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}

	trade := trades[0]
	if trade.EntryType.Raw() != "2" || !trade.Price.Equal(decimal.RequireFromString("50000.00")) || !trade.Size.Equal(decimal.RequireFromString("1.5000")) ||
		trade.Time != "20250101-12:00:00" || fixfield.SideSet.Describe(trade.Aggressor.Raw()) != "Buy" || trade.Symbol != "BTC-USD" {
		t.Errorf("unexpected trade: %+v", trade)
	}
}

func TestExtractTrades_BidOfferEntries(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}

	tests := []struct {
		name      string
		fields    []fixfield.Field
		wantType  string
		wantPrice string
		wantPos   string
	}{
		{
			name: "bid entry with position",
			fields: []fixfield.Field{
				str(constants.TagMdEntryType, "0"),
				str(constants.TagMdEntryPx, "49999.00"),
				str(constants.TagMdEntrySize, "2.5000"),
				str(constants.TagMdEntryPositionNo, "1"),
			},
			wantType: "0", wantPrice: "49999.00", wantPos: "1",
		},
		{
			name: "offer entry with position",
			fields: []fixfield.Field{
				str(constants.TagMdEntryType, "1"),
				str(constants.TagMdEntryPx, "50001.00"),
				str(constants.TagMdEntrySize, "3.0000"),
				str(constants.TagMdEntryPositionNo, "5"),
			},
			wantType: "1", wantPrice: "50001.00", wantPos: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := app.extractTrades(inboundWithEntries(tt.fields), "BTC-USD", "req-123", false, "1")
			if len(trades) != 1 {
				t.Fatalf("expected 1 trade, got %d", len(trades))
			}
			trade := trades[0]
			if trade.EntryType.Raw() != tt.wantType {
				t.Errorf("entry type: got %q, want %q", trade.EntryType.Raw(), tt.wantType)
			}
			if !trade.Price.Equal(decimal.RequireFromString(tt.wantPrice)) {
				t.Errorf("price: got %s, want %s", trade.Price, tt.wantPrice)
			}
			if trade.Position != tt.wantPos {
				t.Errorf("position: got %q, want %q", trade.Position, tt.wantPos)
			}
		})
	}
}

func TestExtractTrades_AggressorSideMapping(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}

	tests := []struct {
		name          string
		aggressorCode string
		wantLabel     string
	}{
		{"buy aggressor", "1", "Buy"},
		{"sell aggressor", "2", "Sell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := []fixfield.Field{
				str(constants.TagMdEntryType, "2"),
				str(constants.TagMdEntryPx, "50000.00"),
				str(constants.TagMdEntrySize, "1.0"),
				str(constants.TagAggressorSide, tt.aggressorCode),
			}
			trades := app.extractTrades(inboundWithEntries(fields), "BTC-USD", "req-123", false, "1")
			if got := trades[0].Aggressor.Raw(); got != tt.aggressorCode || fixfield.SideSet.Describe(got) != tt.wantLabel {
				t.Errorf("aggressor: got %q (%s), want %q (%s)", got, fixfield.SideSet.Describe(got), tt.aggressorCode, tt.wantLabel)
			}
		})
	}
}

func TestExtractTrades_MultipleEntriesInMessage(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}

	msg := inboundWithEntries(
		[]fixfield.Field{str(constants.TagMdEntryType, "0"), str(constants.TagMdEntryPx, "49999.00"), str(constants.TagMdEntryPositionNo, "1")},
		[]fixfield.Field{str(constants.TagMdEntryType, "1"), str(constants.TagMdEntryPx, "50001.00"), str(constants.TagMdEntryPositionNo, "1")},
		[]fixfield.Field{str(constants.TagMdEntryType, "2"), str(constants.TagMdEntryPx, "50000.00"), str(constants.TagAggressorSide, "1")},
	)

	trades := app.extractTrades(msg, "BTC-USD", "req-123", true, "1")
	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}
}

func TestExtractTrades_SnapshotVsUpdate(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}
	fields := []fixfield.Field{str(constants.TagMdEntryType, "2"), str(constants.TagMdEntryPx, "50000.00")}

	t.Run("snapshot trade", func(t *testing.T) {
		trades := app.extractTrades(inboundWithEntries(fields), "BTC-USD", "req-123", true, "1")
		if !trades[0].IsSnapshot || trades[0].IsUpdate {
			t.Error("expected IsSnapshot=true, IsUpdate=false")
		}
	})

	t.Run("update trade", func(t *testing.T) {
		trades := app.extractTrades(inboundWithEntries(fields), "BTC-USD", "req-123", false, "1")
		if trades[0].IsSnapshot || !trades[0].IsUpdate {
			t.Error("expected IsSnapshot=false, IsUpdate=true")
		}
	})
}

func TestExtractTrades_MissingOptionalFields(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}
	fields := []fixfield.Field{
		str(constants.TagMdEntryType, "2"),
		str(constants.TagMdEntryPx, "50000.00"),
		str(constants.TagMdEntryTime, "20250101-12:00:00"),
	}
	trades := app.extractTrades(inboundWithEntries(fields), "BTC-USD", "req-123", false, "1")
	if trades[0].Aggressor.Raw() != "" {
		t.Errorf("expected empty aggressor when not present, got %q", trades[0].Aggressor.Raw())
	}
}

func TestExtractTrades_BidOfferDefaultPosition(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}
	fields := []fixfield.Field{str(constants.TagMdEntryType, "0"), str(constants.TagMdEntryPx, "49999.00")}
	trades := app.extractTrades(inboundWithEntries(fields), "BTC-USD", "req-123", false, "1")
	if trades[0].Position != "1" {
		t.Errorf("expected default position '1', got %q", trades[0].Position)
	}
}

func TestExtractTrades_NoGroup(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}
	msg := fixsession.Inbound{MsgType: constants.MsgTypeMarketDataSnapshot}
	if trades := app.extractTrades(msg, "BTC-USD", "req-123", false, "1"); trades != nil {
		t.Errorf("expected nil trades for message with no group, got %v", trades)
	}
}

func TestExtractTrades_SymbolPropagation(t *testing.T) {
	app := &FixApp{TradeStore: NewTradeStore(100, "")}
	fields := []fixfield.Field{str(constants.TagMdEntryType, "2"), str(constants.TagMdEntryPx, "50000.00")}

	for _, sym := range []string{"BTC-USD", "ETH-USD", "SOL-USD"} {
		trades := app.extractTrades(inboundWithEntries(fields), sym, "req-123", false, "1")
		if trades[0].Symbol != sym {
			t.Errorf("expected symbol %q, got %q", sym, trades[0].Symbol)
		}
	}
}

func TestParseTradeBlock_Timestamp(t *testing.T) {
	now := time.Now()
	fields := []fixfield.Field{str(constants.TagMdEntryType, "2")}
	trade := parseTradeBlock(fields, "BTC-USD", "req-1", false, "1", 0, now)
	if !trade.Timestamp.Equal(now) {
		t.Errorf("expected timestamp %v, got %v", now, trade.Timestamp)
	}
}
