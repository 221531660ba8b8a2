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

// Package fixclient is the REPL-facing application layer: it owns a
// fixsession.Pipe, routes inbound application messages to the trade and
// order stores, and renders results through display.go. The hot path
// below is unchanged in shape from the message-parsing pipeline this
// package has always run, just re-pointed at fixsession/fixcodec types
// instead of quickfix's.
//
// Market data message processing flow:
//
//	Pipe.Messages() -> handleMarketDataMessage -> extractTrades (parser.go,
//	now reading msg.Groups[268] directly instead of re-scanning the raw
//	wire string, since fixcodec already decoded the repeating group) ->
//	TradeStore.AddTrades (ring buffer, O(1) per trade) -> optional SQLite
//	persistence -> display.
package fixclient

import (
	"log"
	"strconv"
	"time"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/database"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
	"github.com/shopspring/decimal"
)

// Version is reported by the REPL's "version" command and cmd/fixmd's
// "version" subcommand.
const Version = "2.0.0"

// Config holds the identifiers a FixApp needs beyond what's already
// captured in the venues.Config used to sign the Logon; venue
// credentials live there, not here, so FixApp stays venue-agnostic.
type Config struct {
	SenderCompId string
	TargetCompId string
	PortfolioId  string
}

type FixApp struct {
	Config   *Config
	Registry *fixfield.Registry
	Pipe     *fixsession.Pipe

	TradeStore *TradeStore
	OrderStore *OrderStore
	Db         *database.MarketDataDb
	OrderDb    *database.OrderHistoryDb

	shouldExit    bool
	lastLogonTime time.Time
}

func NewConfig(senderCompId, targetCompId, portfolioId string) *Config {
	return &Config{
		SenderCompId: senderCompId,
		TargetCompId: targetCompId,
		PortfolioId:  portfolioId,
	}
}

func NewFixApp(config *Config, registry *fixfield.Registry, db *database.MarketDataDb, orderDb *database.OrderHistoryDb) *FixApp {
	return &FixApp{
		Config:     config,
		Registry:   registry,
		TradeStore: NewTradeStore(10000, ""),
		OrderStore: NewOrderStore(),
		Db:         db,
		OrderDb:    orderDb,
		shouldExit: false,
	}
}

// Attach binds a freshly connected Pipe to the app and marks the logon
// time used by ShouldExit's reconnection-loop guard. Called once per
// fixconn.Connector.Run onPipe callback.
func (a *FixApp) Attach(pipe *fixsession.Pipe) {
	a.Pipe = pipe
	a.lastLogonTime = time.Now()
	log.Println("FIX logon established")
	a.displayConnectionSuccess()
	a.displayHelp()
}

// Detach records the disconnect and decides whether the harness should
// give up rather than let fixconn keep retrying: a logon that fails
// within moments of connecting is almost always a credentials problem,
// not a transient network blip.
func (a *FixApp) Detach(reason error) {
	log.Println("Session disconnected:", reason)
	timeSinceLogon := time.Since(a.lastLogonTime)
	if timeSinceLogon < 5*time.Second || a.lastLogonTime.IsZero() {
		log.Printf("Authentication failed. Exiting to prevent reconnection loop.")
		a.shouldExit = true
	}
}

func (a *FixApp) ShouldExit() bool {
	return a.shouldExit
}

// Run drains the pipe's inbound channel until it closes, dispatching
// each application message by MsgType. It returns when the session
// terminates (the caller, usually the fixconn onPipe callback, then
// returns control to the connector for reconnection).
func (a *FixApp) Run() {
	for msg := range a.Pipe.Messages() {
		switch msg.MsgType {
		case constants.MsgTypeMarketDataSnapshot, constants.MsgTypeMarketDataIncremental:
			a.handleMarketDataMessage(msg)
		case constants.MsgTypeMarketDataReject:
			a.handleMarketDataReject(msg)
		case constants.MsgTypeExecutionReport:
			a.handleExecutionReport(msg)
		case constants.MsgTypeOrderCancelReject:
			a.handleOrderCancelReject(msg)
		case constants.MsgTypeQuote:
			a.handleQuote(msg)
		case constants.MsgTypeQuoteAcknowledgement:
			a.handleQuoteAck(msg)
		case "3":
			a.handleSessionReject(msg)
		case constants.MsgTypeBusinessReject:
			a.handleBusinessReject(msg)
		default:
			log.Printf("Received application message type %s", msg.MsgType)
		}
	}
}

func (a *FixApp) handleMarketDataReject(msg fixsession.Inbound) {
	mdReqId := getString(msg.Fields, constants.TagMdReqId)
	rejReason := getString(msg.Fields, constants.TagMdReqRejReason)
	text := getString(msg.Fields, constants.TagText)

	reasonDesc := getMdReqRejReasonDesc(rejReason)

	a.displayMarketDataReject(mdReqId, rejReason, reasonDesc, text)
	a.TradeStore.RemoveSubscriptionByReqId(mdReqId)
	a.displayMarketDataRejectHelp(rejReason)
}

func getMdReqRejReasonDesc(reason string) string {
	switch reason {
	case constants.MdReqRejReasonUnknownSymbol:
		return "Unknown symbol"
	case constants.MdReqRejReasonDuplicateMdReqId:
		return "Duplicate MdReqId"
	case constants.MdReqRejReasonInsufficientBandwidth:
		return "Insufficient bandwidth"
	case constants.MdReqRejReasonInsufficientPermission:
		return "Insufficient permission"
	case constants.MdReqRejReasonInvalidSubscriptionReqType:
		return "Invalid SubscriptionRequestType"
	case constants.MdReqRejReasonInvalidMarketDepth:
		return "Invalid MarketDepth"
	case constants.MdReqRejReasonUnsupportedMdUpdateType:
		return "Unsupported MdUpdateType"
	case constants.MdReqRejReasonOther:
		return "Other"
	case constants.MdReqRejReasonUnsupportedMdEntryType:
		return "Unsupported MdEntryType"
	default:
		return "Unknown reason"
	}
}

// handleMarketDataMessage processes market data snapshots and incremental updates.
func (a *FixApp) handleMarketDataMessage(msg fixsession.Inbound) {
	mdReqId := getString(msg.Fields, constants.TagMdReqId)
	symbol := getString(msg.Fields, constants.TagSymbol)
	noMdEntries := getString(msg.Fields, constants.TagNoMdEntries)
	seqNum := strconv.FormatInt(msg.MsgSeqNum, 10)

	isSnapshot := msg.MsgType == constants.MsgTypeMarketDataSnapshot
	isIncremental := msg.MsgType == constants.MsgTypeMarketDataIncremental

	a.displayMarketDataReceived(msg.MsgType, symbol, mdReqId, noMdEntries, seqNum)

	trades := a.extractTrades(msg, symbol, mdReqId, isSnapshot, seqNum)

	a.TradeStore.AddTrades(symbol, trades, isSnapshot, mdReqId)
	a.storeTradesToDatabase(trades, seqNum, isSnapshot)

	if isSnapshot {
		a.displaySnapshotTrades(trades, symbol)
	} else if isIncremental {
		a.displayIncrementalTrades(trades)
	}
}

func getString(fields []fixfield.Field, tag fixfield.Tag) string {
	for _, f := range fields {
		if f.Tag == tag {
			return f.Value.Raw()
		}
	}
	return ""
}

// getValue returns the fixfield.Value the registry decoded for tag, or the
// zero Value (Raw() == "") if the message didn't carry it.
func getValue(fields []fixfield.Field, tag fixfield.Tag) fixfield.Value {
	for _, f := range fields {
		if f.Tag == tag {
			return f.Value
		}
	}
	return fixfield.Value{}
}

// getDecimal returns the decimal the registry's float descriptor parsed for
// tag. Falls back to re-parsing the raw string for fields a venue adapter
// registered outside the core float descriptors.
func getDecimal(fields []fixfield.Field, tag fixfield.Tag) decimal.Decimal {
	for _, f := range fields {
		if f.Tag != tag {
			continue
		}
		if d, ok := f.Value.Float(); ok {
			return d
		}
		if d, err := decimal.NewFromString(f.Value.Raw()); err == nil {
			return d
		}
	}
	return decimal.Decimal{}
}

// handleExecutionReport parses an Execution Report (8) into the store's
// Order record and renders it.
func (a *FixApp) handleExecutionReport(msg fixsession.Inbound) {
	er := &ExecutionReport{
		ClOrdID:       getString(msg.Fields, constants.TagClOrdID),
		OrderID:       getString(msg.Fields, constants.TagOrderID),
		ExecID:        getString(msg.Fields, constants.TagExecID),
		Account:       getString(msg.Fields, constants.TagAccount),
		Symbol:        getString(msg.Fields, constants.TagSymbol),
		OrdStatus:     getValue(msg.Fields, constants.TagOrdStatus),
		ExecType:      getValue(msg.Fields, constants.TagExecType),
		Side:          getValue(msg.Fields, constants.TagSide),
		OrdType:       getValue(msg.Fields, constants.TagOrdType),
		OrderQty:      getDecimal(msg.Fields, constants.TagOrderQty),
		CumQty:        getDecimal(msg.Fields, constants.TagCumQty),
		LeavesQty:     getDecimal(msg.Fields, constants.TagLeavesQty),
		CashOrderQty:  getDecimal(msg.Fields, constants.TagCashOrderQty),
		Price:         getDecimal(msg.Fields, constants.TagPrice),
		AvgPx:         getDecimal(msg.Fields, constants.TagAvgPx),
		LastPx:        getDecimal(msg.Fields, constants.TagLastPx),
		LastShares:    getDecimal(msg.Fields, constants.TagLastShares),
		Commission:    getDecimal(msg.Fields, constants.TagCommission),
		FilledAmt:     getString(msg.Fields, constants.TagFilledAmt),
		NetAvgPx:      getString(msg.Fields, constants.TagNetAvgPrice),
		OrdRejReason:  getValue(msg.Fields, constants.TagOrdRejReason),
		Text:          getString(msg.Fields, constants.TagText),
		EffectiveTime: getString(msg.Fields, constants.TagEffectiveTime),
	}

	a.OrderStore.UpdateOrderFromExecReport(er)
	if !er.OrderQty.IsZero() || !er.Price.IsZero() {
		if order := a.OrderStore.GetOrder(er.ClOrdID); order != nil {
			order.OrderQty = er.OrderQty
			order.Price = er.Price
			a.OrderStore.AddOrder(order)
		}
	}
	a.displayExecutionReport(er)
}

// handleOrderCancelReject parses an Order Cancel Reject (9).
func (a *FixApp) handleOrderCancelReject(msg fixsession.Inbound) {
	reject := &OrderCancelReject{
		ClOrdID:          getString(msg.Fields, constants.TagClOrdID),
		OrigClOrdID:      getString(msg.Fields, constants.TagOrigClOrdID),
		OrderID:          getString(msg.Fields, constants.TagOrderID),
		OrdStatus:        getValue(msg.Fields, constants.TagOrdStatus),
		CxlRejReason:     getValue(msg.Fields, constants.TagCxlRejReason),
		CxlRejResponseTo: getValue(msg.Fields, constants.TagCxlRejResponseTo),
		Text:             getString(msg.Fields, constants.TagText),
	}
	a.displayOrderCancelReject(reject)
}

// handleQuote parses a Quote (S) delivered in response to a QuoteRequest.
func (a *FixApp) handleQuote(msg fixsession.Inbound) {
	quote := &Quote{
		QuoteID:    getString(msg.Fields, constants.TagQuoteID),
		QuoteReqID: getString(msg.Fields, constants.TagQuoteReqID),
		Account:    getString(msg.Fields, constants.TagAccount),
		Symbol:     getString(msg.Fields, constants.TagSymbol),
		BidPx:      getDecimal(msg.Fields, constants.TagBidPx),
		BidSize:    getDecimal(msg.Fields, constants.TagBidSize),
		OfferPx:    getDecimal(msg.Fields, constants.TagOfferPx),
		OfferSize:  getDecimal(msg.Fields, constants.TagOfferSize),
	}
	a.OrderStore.AddQuote(quote)
	a.displayQuote(quote)
}

// handleQuoteAck parses a Quote Acknowledgement (b), which in practice is
// only sent to report a rejection of a QuoteRequest.
func (a *FixApp) handleQuoteAck(msg fixsession.Inbound) {
	ack := &QuoteAck{
		QuoteID:           getString(msg.Fields, constants.TagQuoteID),
		QuoteReqID:        getString(msg.Fields, constants.TagQuoteReqID),
		Account:           getString(msg.Fields, constants.TagAccount),
		Symbol:            getString(msg.Fields, constants.TagSymbol),
		QuoteAckStatus:    getValue(msg.Fields, constants.TagQuoteAckStatus),
		QuoteRejectReason: getValue(msg.Fields, constants.TagQuoteRejectReason),
		Text:              getString(msg.Fields, constants.TagText),
	}
	a.displayQuoteAck(ack)
}

// handleSessionReject parses a session-level Reject (3).
func (a *FixApp) handleSessionReject(msg fixsession.Inbound) {
	reject := &SessionReject{
		RefSeqNum:           getString(msg.Fields, constants.TagRefSeqNum),
		RefMsgType:          getString(msg.Fields, constants.TagRefMsgType),
		RefTagID:            getString(msg.Fields, constants.TagRefTagID),
		SessionRejectReason: getValue(msg.Fields, constants.TagSessionRejectReason),
		Text:                getString(msg.Fields, constants.TagText),
	}
	a.displaySessionReject(reject)
}

// handleBusinessReject parses a Business Message Reject (j).
func (a *FixApp) handleBusinessReject(msg fixsession.Inbound) {
	reject := &BusinessReject{
		RefSeqNum:            getString(msg.Fields, constants.TagRefSeqNum),
		RefMsgType:           getString(msg.Fields, constants.TagRefMsgType),
		BusinessRejectReason: getValue(msg.Fields, constants.TagBusinessRejectReason),
		Text:                 getString(msg.Fields, constants.TagText),
	}
	a.displayBusinessReject(reject)
}

