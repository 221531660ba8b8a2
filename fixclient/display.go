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
	"fmt"
	"log"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/iancoleman/strcase"
)

func (a *FixApp) displayHelp() {
	fmt.Print(`Commands:
  --- Market Data ---
  md <symbol> [flags...]        - Market data request
  unsubscribe <symbol|reqId>    - Stop subscription(s)
  status                        - Show active subscriptions

  --- Order Entry ---
  order <buy|sell> <symbol> <qty> [price] [flags...]  - Submit new order
  cancel <clOrdId|orderId>      - Cancel an order
  replace <clOrdId> [--qty Q] [--price P]  - Modify an order
  ordstatus <clOrdId|orderId>   - Request order status
  orders                        - List tracked orders

  --- RFQ (Request for Quote) ---
  rfq <buy|sell> <symbol> <qty> - Request a quote
  accept <quoteId|quoteReqId>   - Accept a received quote
  quotes                        - List received quotes

  --- General ---
  help                          - Show this help message
  version, exit

Market Data Flags:
  --snapshot / --subscribe      - Request type
  --depth N                     - Order book depth (0=full, 1=L1, N=LN)
  --trades                      - Trade data
  --o, --c, --h, --l, --v       - OHLCV data

Order Flags:
  --type <market|limit|stop>    - Order type
  --tif <gtc|ioc|fok|gtd>       - Time in force
  --strategy <L|M|T|V|SL>       - Target strategy
  --postonly                    - Post-only (maker)
  --cash                        - Qty in quote currency

Examples:
  md BTC-USD --snapshot --trades          - Recent trades
  md BTC-USD --subscribe --depth 10       - Live L10 book
  order buy BTC-USD 0.01 50000            - Limit buy 0.01 BTC at $50k
  order sell ETH-USD 1.5 --type market    - Market sell 1.5 ETH
  rfq buy BTC-USD 1.0                     - Request buy quote for 1 BTC
  cancel ord_123                          - Cancel order
`)
}

// describe renders an EnumSet's PascalCase description ("PartiallyFilled")
// as space-delimited words for log output, via strcase.ToDelimited.
func describe(set *fixfield.EnumSet, raw string) string {
	if raw == "" {
		return "-"
	}
	return strcase.ToDelimited(set.Describe(raw), ' ')
}

func (a *FixApp) displaySnapshotTrades(trades []Trade, symbol string) {
	log.Printf("\n📋 Market Data Snapshot for %s:", symbol)

	byType := make(map[string][]Trade)
	for _, trade := range trades {
		entryType := trade.EntryType.Raw()
		if entryType == "" {
			entryType = "2" // Default to Trade if not specified
		}
		byType[entryType] = append(byType[entryType], trade)
	}

	for entryType, entries := range byType {
		typeName := getMdEntryTypeName(entryType)
		log.Printf("\n🔹 %s Entries (%d):", typeName, len(entries))

		if entryType == constants.MdEntryTypeBid || entryType == constants.MdEntryTypeOffer {
			fmt.Printf("┌─────┬───────────────┬────────────────┬───────────────┬──────────┐\n")
			fmt.Printf("│ Pos │ Price         │ Size           │ Time          │ Type     │\n")
			fmt.Printf("├─────┼───────────────┼────────────────┼───────────────┼──────────┤\n")

			for _, entry := range entries {
				pos := entry.Position
				if pos == "" {
					pos = "-"
				}
				fmt.Printf("│ %-3s │ %-13s │ %-14s │ %-13s │ %-8s │\n",
					pos, entry.Price.String(), entry.Size.String(), entry.Time, typeName)
			}
			fmt.Printf("└─────┴───────────────┴────────────────┴───────────────┴──────────┘\n")

		} else if entryType == constants.MdEntryTypeTrade {
			fmt.Printf("┌─────┬───────────────┬────────────────┬───────────────┬───────────┐\n")
			fmt.Printf("│ #   │ Price         │ Size           │ Time          │ Aggressor │\n")
			fmt.Printf("├─────┼───────────────┼────────────────┼───────────────┼───────────┤\n")

			for i, entry := range entries {
				aggressor := entry.Aggressor.Raw()
				if aggressor == "" {
					aggressor = "-"
				} else {
					aggressor = getAggressorSideDesc(aggressor)
				}
				fmt.Printf("│ %-3d │ %-13s │ %-14s │ %-13s │ %-9s │\n",
					i+1, entry.Price.String(), entry.Size.String(), entry.Time, aggressor)
			}
			fmt.Printf("└─────┴───────────────┴────────────────┴───────────────┴───────────┘\n")

		} else {
			fmt.Printf("┌─────┬───────────────┬───────────────┐\n")
			fmt.Printf("│ #   │ Value         │ Time          │\n")
			fmt.Printf("├─────┼───────────────┼───────────────┤\n")

			for i, entry := range entries {
				value := entry.Price.String()
				if entryType == constants.MdEntryTypeVolume {
					value = entry.Size.String()
				}

				fmt.Printf("│ %-3d │ %-13s │ %-13s │\n",
					i+1, value, entry.Time)
			}
			fmt.Printf("└─────┴───────────────┴───────────────┘\n")
		}
	}

	log.Printf("\nTotal Entries Displayed: %d", len(trades))
}

func (a *FixApp) displayIncrementalTrades(trades []Trade) {
	for _, trade := range trades {
		a.TradeStore.DisplayRealtimeUpdate(trade)
	}
	if len(trades) > 0 {
		log.Println("────────────────────────────────────────────────")
	}
}

func (a *FixApp) getSubscriptionTypeDesc(subType string) string {
	switch subType {
	case "0":
		return "Snapshot Only"
	case "1":
		return "Snapshot + Updates"
	case "2":
		return "Unsubscribe"
	default:
		return "Unknown"
	}
}

func getMarketDataTypeName(msgType string) string {
	switch msgType {
	case constants.MsgTypeMarketDataSnapshot:
		return "Snapshot"
	case constants.MsgTypeMarketDataIncremental:
		return "Incremental"
	default:
		return "Unknown"
	}
}

func getMdEntryTypeName(entryType string) string {
	return describe(fixfield.MDEntryTypeSet, entryType)
}

func getAggressorSideDesc(side string) string {
	return describe(fixfield.SideSet, side)
}

func (a *FixApp) displayMarketDataReject(mdReqId, rejReason, reasonDesc, text string) {
	log.Printf("Market Data Request REJECTED")
	log.Printf("   MdReqId: %s", mdReqId)
	log.Printf("   Reason: %s (%s)", rejReason, reasonDesc)
	if text != "" {
		log.Printf("   Text: %s", text)
	}
}

func (a *FixApp) displayMarketDataRejectHelp(rejReason string) {
	switch rejReason {
	case "0":
		log.Printf("Try a different symbol format (e.g., BTCUSD vs BTC-USD)")
	case "3":
		log.Printf("Check if your account has market data permissions")
	case "5":
		log.Printf("Try MarketDepth=0 (full depth) or MarketDepth=1 (top of book)")
	case "8":
		log.Printf("Try different MdEntryType: 0=Bids, 1=Offers, 2=Trades")
	}
}

func (a *FixApp) displayConnectionSuccess() {
	fmt.Print("Connected! Market data connection established.\n\n")
}

func (a *FixApp) displayMarketDataReceived(msgType, symbol, mdReqId, noMdEntries, seqNum string) {
	log.Printf("Market Data %s for %s (ReqId: %s, Entries: %s, Seq: %s)",
		getMarketDataTypeName(msgType), symbol, mdReqId, noMdEntries, seqNum)
}

// --- Order Entry Display Functions ---

func (a *FixApp) displayExecutionReport(er *ExecutionReport) {
	execTypeDesc := describe(fixfield.ExecTypeSet, er.ExecType.Raw())
	ordStatusDesc := describe(fixfield.OrdStatusSet, er.OrdStatus.Raw())
	sideDesc := describe(fixfield.SideSet, er.Side.Raw())

	log.Printf("Execution Report: %s", execTypeDesc)
	log.Printf("   ClOrdID: %s, OrderID: %s", er.ClOrdID, er.OrderID)
	log.Printf("   Symbol: %s, Side: %s, Status: %s", er.Symbol, sideDesc, ordStatusDesc)

	if !er.OrderQty.IsZero() {
		log.Printf("   Qty: %s, Filled: %s, Leaves: %s", er.OrderQty, er.CumQty, er.LeavesQty)
	}
	if !er.Price.IsZero() {
		log.Printf("   Price: %s", er.Price)
	}
	if !er.AvgPx.IsZero() {
		log.Printf("   AvgPx: %s", er.AvgPx)
	}
	if !er.LastPx.IsZero() && !er.LastShares.IsZero() {
		log.Printf("   Last Fill: %s @ %s", er.LastShares, er.LastPx)
	}
	if !er.Commission.IsZero() {
		log.Printf("   Commission: %s", er.Commission)
	}
	if er.OrdRejReason.Raw() != "" {
		log.Printf("   Reject Reason: %s (%s)", er.OrdRejReason.Raw(), getOrdRejReasonDesc(er.OrdRejReason.Raw()))
	}
	if er.Text != "" {
		log.Printf("   Text: %s", er.Text)
	}
}

func (a *FixApp) displayOrderCancelReject(reject *OrderCancelReject) {
	responseToDesc := "Cancel"
	if reject.CxlRejResponseTo.Raw() == constants.CxlRejResponseToReplace {
		responseToDesc = "Replace"
	}

	log.Printf("Order %s Rejected", responseToDesc)
	log.Printf("   ClOrdID: %s, OrigClOrdID: %s", reject.ClOrdID, reject.OrigClOrdID)
	log.Printf("   OrderID: %s, Status: %s", reject.OrderID, describe(fixfield.OrdStatusSet, reject.OrdStatus.Raw()))
	if reject.CxlRejReason.Raw() != "" {
		log.Printf("   Reason: %s", describe(fixfield.CxlRejReasonSet, reject.CxlRejReason.Raw()))
	}
	if reject.Text != "" {
		log.Printf("   Text: %s", reject.Text)
	}
}

func (a *FixApp) displayQuote(quote *Quote) {
	log.Printf("Quote Received")
	log.Printf("   QuoteID: %s, QuoteReqID: %s", quote.QuoteID, quote.QuoteReqID)
	log.Printf("   Symbol: %s, Account: %s", quote.Symbol, quote.Account)

	if !quote.BidPx.IsZero() {
		log.Printf("   Bid: %s @ %s", quote.BidSize, quote.BidPx)
	}
	if !quote.OfferPx.IsZero() {
		log.Printf("   Offer: %s @ %s", quote.OfferSize, quote.OfferPx)
	}
	if !quote.ValidUntilTime.IsZero() {
		log.Printf("   Valid Until: %s", quote.ValidUntilTime.Format("15:04:05.000"))
	}
}

func (a *FixApp) displayQuoteAck(ack *QuoteAck) {
	log.Printf("Quote Request Rejected")
	log.Printf("   QuoteReqID: %s, Symbol: %s", ack.QuoteReqID, ack.Symbol)
	log.Printf("   Reason: %s (%s)", ack.QuoteRejectReason.Raw(), getQuoteRejectReasonDesc(ack.QuoteRejectReason.Raw()))
	if ack.Text != "" {
		log.Printf("   Text: %s", ack.Text)
	}
}

func (a *FixApp) displaySessionReject(reject *SessionReject) {
	log.Printf("Session Reject (Message Rejected)")
	log.Printf("   RefSeqNum: %s, RefMsgType: %s", reject.RefSeqNum, reject.RefMsgType)
	if reject.RefTagID != "" {
		log.Printf("   RefTagID: %s", reject.RefTagID)
	}
	if reject.SessionRejectReason.Raw() != "" {
		log.Printf("   Reason: %s (%s)", reject.SessionRejectReason.Raw(), describe(fixfield.SessionRejectReasonSet, reject.SessionRejectReason.Raw()))
	}
	if reject.Text != "" {
		log.Printf("   Text: %s", reject.Text)
	}
}

func (a *FixApp) displayBusinessReject(reject *BusinessReject) {
	log.Printf("Business Message Reject")
	log.Printf("   RefSeqNum: %s, RefMsgType: %s", reject.RefSeqNum, reject.RefMsgType)
	log.Printf("   Reason: %s (%s)", reject.BusinessRejectReason.Raw(), describe(fixfield.BusinessRejectReasonSet, reject.BusinessRejectReason.Raw()))
	if reject.Text != "" {
		log.Printf("   Text: %s", reject.Text)
	}
}

// --- Order Entry Helper Functions ---
//
// OrdRejReason and QuoteRejectReason are registered in fixfield/default.go
// as intDescriptor fields rather than enumDescriptor ones (the registry
// keeps them as raw FIX ints, not a named EnumSet), so they keep their own
// description tables here instead of going through describe().

func getOrdRejReasonDesc(reason string) string {
	switch reason {
	case constants.OrdRejReasonBrokerOption:
		return "Broker Option"
	case constants.OrdRejReasonUnknownSymbol:
		return "Unknown Symbol"
	case constants.OrdRejReasonExchangeClosed:
		return "Exchange Closed"
	case constants.OrdRejReasonExceedsLimit:
		return "Exceeds Limit"
	case constants.OrdRejReasonTooLate:
		return "Too Late"
	case constants.OrdRejReasonUnknownOrder:
		return "Unknown Order"
	case constants.OrdRejReasonDuplicateOrder:
		return "Duplicate Order"
	case constants.OrdRejReasonOther:
		return "Other"
	default:
		return reason
	}
}

func getQuoteRejectReasonDesc(reason string) string {
	switch reason {
	case constants.QuoteRejectReasonUnknownSymbol:
		return "Unknown Symbol"
	case constants.QuoteRejectReasonExchangeClosed:
		return "Exchange Closed"
	case constants.QuoteRejectReasonExceedsLimit:
		return "Exceeds Limit"
	case constants.QuoteRejectReasonDuplicate:
		return "Duplicate Quote"
	case constants.QuoteRejectReasonInvalidPrice:
		return "Invalid Price"
	case constants.QuoteRejectReasonOther:
		return "Other"
	default:
		return reason
	}
}
