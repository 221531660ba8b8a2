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

// Package builder constructs fixsession.Outbound values for every
// business MsgType this module speaks. It never touches the session
// header (BeginString, MsgSeqNum, SenderCompID, TargetCompID,
// SendingTime) — that is fixsession.Engine's job — and never signs a
// Logon, since signing is venue-specific and lives behind the
// venues.Adapter interface instead.
package builder

import (
	"strconv"
	"time"

	"github.com/gurre/prime-fix-md-go/constants"
	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
)

// fieldSetter accumulates body fields against a registry, short-circuiting
// on the first encoding error so call sites read as a flat list of sets.
type fieldSetter struct {
	registry *fixfield.Registry
	fields   []fixfield.Field
	err      error
}

func newFieldSetter(registry *fixfield.Registry) *fieldSetter {
	return &fieldSetter{registry: registry}
}

func (s *fieldSetter) set(tag fixfield.Tag, value string) {
	if s.err != nil {
		return
	}
	f, err := s.registry.DecodeField(tag, value)
	if err != nil {
		s.err = err
		return
	}
	s.fields = append(s.fields, f)
}

// setIfNotEmpty sets a field only if value is non-empty, for the many
// conditional fields across order-entry messages.
func (s *fieldSetter) setIfNotEmpty(tag fixfield.Tag, value string) {
	if value == "" {
		return
	}
	s.set(tag, value)
}

func (s *fieldSetter) done() ([]fixfield.Field, error) {
	return s.fields, s.err
}

func transactTime() string {
	return time.Now().UTC().Format(constants.FixTimeFormat)
}

// --- Market Data Request (V) ---

// MarketDataRequestParams describes a market-data subscription or snapshot
// request spanning one or more symbols and entry types.
type MarketDataRequestParams struct {
	MdReqID                 string
	Symbols                 []string
	SubscriptionRequestType string
	MarketDepth             string
	MdEntryTypes            []string
}

// MarketDataRequest builds a Market Data Request (V), including its two
// repeating groups (NoMDEntryTypes, NoRelatedSym).
func MarketDataRequest(registry *fixfield.Registry, params MarketDataRequestParams) (fixsession.Outbound, error) {
	s := newFieldSetter(registry)
	s.set(262, params.MdReqID)
	s.set(263, params.SubscriptionRequestType)
	s.set(264, params.MarketDepth)
	if params.SubscriptionRequestType == constants.SubscriptionRequestTypeSubscribe {
		s.set(265, constants.MdUpdateTypeIncremental)
	}

	countField, err := registry.DecodeField(267, strconv.Itoa(len(params.MdEntryTypes)))
	if err != nil {
		return fixsession.Outbound{}, err
	}
	s.fields = append(s.fields, countField)

	entryGroup := &fixcodec.Group{CountTag: 267, Delim: 269}
	for _, entryType := range params.MdEntryTypes {
		f, err := registry.DecodeField(269, entryType)
		if err != nil {
			return fixsession.Outbound{}, err
		}
		entryGroup.Blocks = append(entryGroup.Blocks, []fixfield.Field{f})
	}

	symCountField, err := registry.DecodeField(146, strconv.Itoa(len(params.Symbols)))
	if err != nil {
		return fixsession.Outbound{}, err
	}
	s.fields = append(s.fields, symCountField)

	symGroup := &fixcodec.Group{CountTag: 146, Delim: 55}
	for _, symbol := range params.Symbols {
		f, err := registry.DecodeField(55, symbol)
		if err != nil {
			return fixsession.Outbound{}, err
		}
		symGroup.Blocks = append(symGroup.Blocks, []fixfield.Field{f})
	}

	fields, err := s.done()
	if err != nil {
		return fixsession.Outbound{}, err
	}
	return fixsession.Outbound{
		MsgType: constants.MsgTypeMarketDataRequest,
		Fields:  fields,
		Groups: map[fixfield.Tag]*fixcodec.Group{
			267: entryGroup,
			146: symGroup,
		},
	}, nil
}

// --- New Order Single (D) ---

// NewOrderParams contains parameters for creating a new order.
type NewOrderParams struct {
	Account        string // Portfolio ID (required)
	ClOrdID        string // Client order ID (required)
	Symbol         string // Product pair e.g. BTC-USD (required)
	Side           string // "1" buy, "2" sell (required)
	OrdType        string // Order type (required)
	TargetStrategy string // L, M, T, V, SL, R (required)
	TimeInForce    string // 1, 3, 4, 6 (required)
	OrderQty       string // Size in base units (conditional)
	CashOrderQty   string // Size in quote units (conditional)
	Price          string // Limit price (conditional)
	StopPx         string // Stop price for stop orders (conditional)
	ExpireTime     string // For GTD/TWAP/VWAP (conditional)
	EffectiveTime  string // Start time for TWAP/VWAP (conditional)
	MaxShow        string // Display size (optional)
	ExecInst       string // "A" for post-only (conditional)
	PartRate       string // Participation rate for TWAP/VWAP (conditional)
	QuoteID        string // For RFQ orders (conditional)
	IsRaiseExact   string // Y/N for raise exact orders (optional)
}

// NewOrderSingle builds a New Order Single (D) message.
func NewOrderSingle(registry *fixfield.Registry, params NewOrderParams) (fixsession.Outbound, error) {
	s := newFieldSetter(registry)
	s.set(1, params.Account)
	s.set(11, params.ClOrdID)
	s.set(55, params.Symbol)
	s.set(54, params.Side)
	s.set(40, params.OrdType)
	s.set(847, params.TargetStrategy)
	s.set(59, params.TimeInForce)
	s.set(60, transactTime())

	s.setIfNotEmpty(38, params.OrderQty)
	s.setIfNotEmpty(152, params.CashOrderQty)
	s.setIfNotEmpty(44, params.Price)
	s.setIfNotEmpty(99, params.StopPx)
	s.setIfNotEmpty(126, params.ExpireTime)
	s.setIfNotEmpty(168, params.EffectiveTime)
	s.setIfNotEmpty(210, params.MaxShow)
	s.setIfNotEmpty(18, params.ExecInst)
	s.setIfNotEmpty(849, params.PartRate)
	s.setIfNotEmpty(117, params.QuoteID)
	s.setIfNotEmpty(8999, params.IsRaiseExact)

	fields, err := s.done()
	if err != nil {
		return fixsession.Outbound{}, err
	}
	return fixsession.Outbound{MsgType: constants.MsgTypeNewOrderSingle, Fields: fields}, nil
}

// --- Order Cancel Request (F) ---

// CancelOrderParams contains parameters for canceling an order.
type CancelOrderParams struct {
	Account      string
	ClOrdID      string
	OrigClOrdID  string
	OrderID      string
	Symbol       string
	Side         string
	OrderQty     string
	CashOrderQty string
}

// OrderCancelRequest builds an Order Cancel Request (F) message.
func OrderCancelRequest(registry *fixfield.Registry, params CancelOrderParams) (fixsession.Outbound, error) {
	s := newFieldSetter(registry)
	s.set(1, params.Account)
	s.set(11, params.ClOrdID)
	s.set(41, params.OrigClOrdID)
	s.set(37, params.OrderID)
	s.set(55, params.Symbol)
	s.set(54, params.Side)
	s.set(60, transactTime())
	s.setIfNotEmpty(38, params.OrderQty)
	s.setIfNotEmpty(152, params.CashOrderQty)

	fields, err := s.done()
	if err != nil {
		return fixsession.Outbound{}, err
	}
	return fixsession.Outbound{MsgType: constants.MsgTypeOrderCancelRequest, Fields: fields}, nil
}

// --- Order Cancel/Replace Request (G) ---

// ReplaceOrderParams contains parameters for modifying an order.
type ReplaceOrderParams struct {
	Account      string
	ClOrdID      string
	OrigClOrdID  string
	OrderID      string
	Symbol       string
	Side         string
	OrdType      string
	OrderQty     string
	CashOrderQty string
	Price        string
	StopPx       string
	ExpireTime   string
	MaxShow      string
}

// OrderCancelReplaceRequest builds an Order Cancel/Replace Request (G) message.
func OrderCancelReplaceRequest(registry *fixfield.Registry, params ReplaceOrderParams) (fixsession.Outbound, error) {
	s := newFieldSetter(registry)
	s.set(1, params.Account)
	s.set(11, params.ClOrdID)
	s.set(41, params.OrigClOrdID)
	s.set(37, params.OrderID)
	s.set(55, params.Symbol)
	s.set(54, params.Side)
	s.set(40, params.OrdType)
	s.set(21, constants.HandlInstAutomatedNoIntervention)
	s.set(60, transactTime())
	s.set(44, params.Price)

	s.setIfNotEmpty(38, params.OrderQty)
	s.setIfNotEmpty(152, params.CashOrderQty)
	s.setIfNotEmpty(99, params.StopPx)
	s.setIfNotEmpty(126, params.ExpireTime)
	s.setIfNotEmpty(210, params.MaxShow)

	fields, err := s.done()
	if err != nil {
		return fixsession.Outbound{}, err
	}
	return fixsession.Outbound{MsgType: constants.MsgTypeOrderCancelReplace, Fields: fields}, nil
}

// --- Order Status Request (H) ---

// OrderStatusRequest builds an Order Status Request (H) message.
func OrderStatusRequest(registry *fixfield.Registry, orderID, clOrdID, symbol, side string) (fixsession.Outbound, error) {
	s := newFieldSetter(registry)
	s.set(37, orderID)
	s.setIfNotEmpty(11, clOrdID)
	s.setIfNotEmpty(55, symbol)
	s.setIfNotEmpty(54, side)

	fields, err := s.done()
	if err != nil {
		return fixsession.Outbound{}, err
	}
	return fixsession.Outbound{MsgType: constants.MsgTypeOrderStatusRequest, Fields: fields}, nil
}

// --- Quote Request (R) ---

// QuoteRequestParams contains parameters for requesting a quote.
type QuoteRequestParams struct {
	QuoteReqID string
	Account    string
	Symbol     string
	Side       string
	OrderQty   string
	Price      string
}

// QuoteRequest builds a Quote Request (R) message for RFQ.
func QuoteRequest(registry *fixfield.Registry, params QuoteRequestParams) (fixsession.Outbound, error) {
	s := newFieldSetter(registry)
	s.set(131, params.QuoteReqID)
	s.set(1, params.Account)
	s.set(55, params.Symbol)
	s.set(54, params.Side)
	s.set(38, params.OrderQty)
	s.set(40, constants.OrdTypeLimit)
	s.set(44, params.Price)
	s.set(59, constants.TimeInForceFOK)

	fields, err := s.done()
	if err != nil {
		return fixsession.Outbound{}, err
	}
	return fixsession.Outbound{MsgType: constants.MsgTypeQuoteRequest, Fields: fields}, nil
}

// --- Accept Quote (New Order Single with QuoteID) ---

// AcceptQuoteParams contains parameters for accepting a quote.
type AcceptQuoteParams struct {
	Account  string
	ClOrdID  string
	Symbol   string
	Side     string
	QuoteID  string
	OrderQty string
	Price    string
}

// AcceptQuote builds a New Order Single (D) that accepts a Quote.
func AcceptQuote(registry *fixfield.Registry, params AcceptQuoteParams) (fixsession.Outbound, error) {
	s := newFieldSetter(registry)
	s.set(1, params.Account)
	s.set(11, params.ClOrdID)
	s.set(55, params.Symbol)
	s.set(54, params.Side)
	s.set(40, constants.OrdTypePreviouslyQuoted)
	s.set(847, constants.TargetStrategyRFQ)
	s.set(59, constants.TimeInForceFOK)
	s.set(117, params.QuoteID)
	s.set(38, params.OrderQty)
	s.set(44, params.Price)
	s.set(60, transactTime())

	fields, err := s.done()
	if err != nil {
		return fixsession.Outbound{}, err
	}
	return fixsession.Outbound{MsgType: constants.MsgTypeNewOrderSingle, Fields: fields}, nil
}
