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

// Benchmarks for the market data group conversion path: measures the cost
// of turning an already-decoded NoMdEntries group into Trade structs.
// Run with: go test -bench=. -benchmem ./fixclient/
package fixclient

import (
	"fmt"
	"testing"
	"time"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
)

// generateMdEntryBlocks builds the repeating-group blocks a market data
// snapshot/incremental message carries, alternating bid/offer/trade entries
// the way a real Coinbase Prime feed does.
func generateMdEntryBlocks(numEntries int) [][]fixfield.Field {
	blocks := make([][]fixfield.Field, 0, numEntries)
	for i := 0; i < numEntries; i++ {
		entryType := fmt.Sprintf("%d", i%3) // 0=Bid, 1=Offer, 2=Trade
		price := fmt.Sprintf("%.2f", 50000.00+float64(i)*0.01)
		size := fmt.Sprintf("%.4f", 1.5+float64(i)*0.1)

		block := []fixfield.Field{
			str(constants.TagMdEntryType, entryType),
			str(constants.TagMdEntryPx, price),
			str(constants.TagMdEntrySize, size),
			str(constants.TagMdEntryTime, "20250101-12:00:00"),
		}
		if i%3 == 2 {
			block = append(block, str(constants.TagAggressorSide, "1"))
		} else {
			block = append(block, str(constants.TagMdEntryPositionNo, fmt.Sprintf("%d", (i/3)+1)))
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// BenchmarkExtractTrades measures end-to-end conversion of a decoded
// NoMdEntries group into Trade structs, across a range of entry counts.
func BenchmarkExtractTrades(b *testing.B) {
	app := &FixApp{TradeStore: NewTradeStore(1000, "")}

	benchCases := []int{1, 5, 10, 20, 50, 100}

	for _, n := range benchCases {
		blocks := generateMdEntryBlocks(n)
		msg := fixsession.Inbound{
			MsgType: constants.MsgTypeMarketDataSnapshot,
			Groups: map[fixfield.Tag]*fixcodec.Group{
				constants.TagNoMdEntries: {CountTag: constants.TagNoMdEntries, Delim: constants.TagMdEntryType, Blocks: blocks},
			},
		}
		b.Run(fmt.Sprintf("%dEntries", n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = app.extractTrades(msg, "BTC-USD", "req-12345", false, "1")
			}
		})
	}
}

// BenchmarkParseTradeBlock measures the cost of converting a single group
// block into a Trade struct.
func BenchmarkParseTradeBlock(b *testing.B) {
	now := time.Now()

	benchCases := []struct {
		name   string
		fields []fixfield.Field
	}{
		{"TradeEntry", []fixfield.Field{
			str(constants.TagMdEntryType, "2"), str(constants.TagMdEntryPx, "50000.00"),
			str(constants.TagMdEntrySize, "1.5000"), str(constants.TagAggressorSide, "1"),
		}},
		{"BidEntry", []fixfield.Field{
			str(constants.TagMdEntryType, "0"), str(constants.TagMdEntryPx, "49999.00"),
			str(constants.TagMdEntrySize, "2.5000"), str(constants.TagMdEntryPositionNo, "1"),
		}},
		{"OHLCVEntry", []fixfield.Field{
			str(constants.TagMdEntryType, "4"), str(constants.TagMdEntryPx, "49500.00"),
		}},
	}

	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = parseTradeBlock(bc.fields, "BTC-USD", "req-123", false, "12345", 0, now)
			}
		})
	}
}
