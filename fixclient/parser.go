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

// Package fixclient provides FIX protocol message parsing for market data.
//
// extractTrades used to re-scan the raw wire string for "269=" boundaries
// to avoid the overhead of a structured group reader. fixcodec now decodes
// the NoMdEntries(268) repeating group during framing, so this file just
// walks the already-parsed blocks.
package fixclient

import (
	"strconv"
	"time"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
	"github.com/shopspring/decimal"
)

// extractTrades converts the NoMdEntries(268) repeating group of a market
// data message into Trade structs.
func (a *FixApp) extractTrades(msg fixsession.Inbound, symbol, mdReqId string, isSnapshot bool, seqNum string) []Trade {
	group, ok := msg.Groups[constants.TagNoMdEntries]
	if !ok || len(group.Blocks) == 0 {
		return nil
	}

	trades := make([]Trade, 0, len(group.Blocks))
	now := time.Now()

	for i, block := range group.Blocks {
		trades = append(trades, parseTradeBlock(block, symbol, mdReqId, isSnapshot, seqNum, i, now))
	}
	return trades
}

// parseTradeBlock converts one MdEntry group block into a Trade.
func parseTradeBlock(block []fixfield.Field, symbol, mdReqId string, isSnapshot bool, seqNum string, entryIndex int, timestamp time.Time) Trade {
	trade := Trade{
		Timestamp:  timestamp,
		Symbol:     symbol,
		MdReqId:    mdReqId,
		IsSnapshot: isSnapshot,
		IsUpdate:   !isSnapshot,
		SeqNum:     seqNum,
	}

	for _, f := range block {
		switch f.Tag {
		case constants.TagMdEntryType:
			trade.EntryType = f.Value
		case constants.TagMdEntryPx:
			if px, ok := f.Value.Float(); ok {
				trade.Price = px
			} else if px, err := decimal.NewFromString(f.Value.Raw()); err == nil {
				trade.Price = px
			}
		case constants.TagMdEntrySize:
			if sz, ok := f.Value.Float(); ok {
				trade.Size = sz
			} else if sz, err := decimal.NewFromString(f.Value.Raw()); err == nil {
				trade.Size = sz
			}
		case constants.TagMdEntryTime:
			trade.Time = f.Value.Raw()
		case constants.TagMdEntryPositionNo:
			trade.Position = f.Value.Raw()
		case constants.TagAggressorSide:
			trade.Aggressor = f.Value
		}
	}

	if trade.Position == "" && (trade.EntryType.Raw() == "0" || trade.EntryType.Raw() == "1") {
		trade.Position = strconv.Itoa(entryIndex + 1)
	}

	return trade
}
