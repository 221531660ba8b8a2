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

// Package fixclient provides order management and tracking for FIX order entry.
//
// OrderStore maintains the state of all orders submitted through the FIX session,
// tracking their lifecycle from submission through fill or cancellation. Unlike
// the raw wire strings a quickfix FIX field accessor would hand back, every
// enumerated or numeric field here carries the fixfield-typed value the codec
// already produced: a fixfield.Value for Side/OrdType/OrdStatus/ExecType/
// TimeInForce/CxlRejReason/CxlRejResponseTo/SessionRejectReason/
// BusinessRejectReason/OrdRejReason, and a decimal.Decimal for every price and
// quantity, so callers never re-parse what the registry already decoded.
package fixclient

import (
	"sync"
	"time"

	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/shopspring/decimal"
)

// Order represents an order's current state as tracked by the client.
type Order struct {
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ValidUntilTime time.Time `json:"validUntilTime,omitempty"`

	ClOrdID        string `json:"clOrdId"`
	OrderID        string `json:"orderId"`
	Symbol         string `json:"symbol"`
	TargetStrategy string `json:"targetStrategy"`
	Account        string `json:"account"`

	Side        fixfield.Value `json:"side"`
	OrdType     fixfield.Value `json:"ordType"`
	TimeInForce fixfield.Value `json:"timeInForce"`
	OrdStatus   fixfield.Value `json:"ordStatus"`
	ExecType    fixfield.Value `json:"execType"`

	OrderQty     decimal.Decimal `json:"orderQty"`
	CashOrderQty decimal.Decimal `json:"cashOrderQty"`
	Price        decimal.Decimal `json:"price"`
	StopPx       decimal.Decimal `json:"stopPx"`
	AvgPx        decimal.Decimal `json:"avgPx"`
	CumQty       decimal.Decimal `json:"cumQty"`
	LeavesQty    decimal.Decimal `json:"leavesQty"`

	LastPx     decimal.Decimal `json:"lastPx"`
	LastShares decimal.Decimal `json:"lastShares"`
	ExecID     string          `json:"execId"`

	Commission decimal.Decimal `json:"commission"`
	// FilledAmt and NetAvgPx are Coinbase Prime extension tags the venue
	// adapter registers as plain strings (see coinbaseprime.RegisterFields);
	// they carry no guaranteed FIX-typed semantics, so they stay opaque here.
	FilledAmt string `json:"filledAmt,omitempty"`
	NetAvgPx  string `json:"netAvgPx,omitempty"`

	OrdRejReason fixfield.Value `json:"ordRejReason,omitempty"`
	Text         string         `json:"text,omitempty"`
}

// Quote represents a received quote from the RFQ process.
type Quote struct {
	ReceivedAt     time.Time `json:"receivedAt"`
	ValidUntilTime time.Time `json:"validUntilTime"`

	QuoteID    string `json:"quoteId"`
	QuoteReqID string `json:"quoteReqId"`
	Account    string `json:"account"`
	Symbol     string `json:"symbol"`

	// Only one side is populated, per the quote direction.
	BidPx     decimal.Decimal `json:"bidPx,omitempty"`
	BidSize   decimal.Decimal `json:"bidSize,omitempty"`
	OfferPx   decimal.Decimal `json:"offerPx,omitempty"`
	OfferSize decimal.Decimal `json:"offerSize,omitempty"`
}

// ExecutionReport represents a parsed Execution Report (8) message.
type ExecutionReport struct {
	ClOrdID string `json:"clOrdId"`
	OrderID string `json:"orderId"`
	ExecID  string `json:"execId"`
	Account string `json:"account"`
	Symbol  string `json:"symbol"`

	OrdStatus fixfield.Value `json:"ordStatus"`
	ExecType  fixfield.Value `json:"execType"`
	Side      fixfield.Value `json:"side"`
	OrdType   fixfield.Value `json:"ordType"`

	OrderQty     decimal.Decimal `json:"orderQty"`
	CumQty       decimal.Decimal `json:"cumQty"`
	LeavesQty    decimal.Decimal `json:"leavesQty"`
	CashOrderQty decimal.Decimal `json:"cashOrderQty,omitempty"`

	Price      decimal.Decimal `json:"price,omitempty"`
	AvgPx      decimal.Decimal `json:"avgPx,omitempty"`
	LastPx     decimal.Decimal `json:"lastPx,omitempty"`
	LastShares decimal.Decimal `json:"lastShares,omitempty"`

	Commission decimal.Decimal `json:"commission,omitempty"`
	FilledAmt  string          `json:"filledAmt,omitempty"`
	NetAvgPx   string          `json:"netAvgPx,omitempty"`

	OrdRejReason fixfield.Value `json:"ordRejReason,omitempty"`
	Text         string         `json:"text,omitempty"`

	EffectiveTime string `json:"effectiveTime,omitempty"`
}

// OrderCancelReject represents a parsed Order Cancel Reject (9) message.
type OrderCancelReject struct {
	ClOrdID          string         `json:"clOrdId"`
	OrigClOrdID      string         `json:"origClOrdId"`
	OrderID          string         `json:"orderId"`
	OrdStatus        fixfield.Value `json:"ordStatus"`
	CxlRejReason     fixfield.Value `json:"cxlRejReason,omitempty"`
	CxlRejResponseTo fixfield.Value `json:"cxlRejResponseTo"`
	Text             string         `json:"text,omitempty"`
}

// SessionReject represents a parsed Reject (3) message.
type SessionReject struct {
	RefSeqNum           string         `json:"refSeqNum"`
	RefMsgType          string         `json:"refMsgType"`
	RefTagID            string         `json:"refTagId,omitempty"`
	SessionRejectReason fixfield.Value `json:"sessionRejectReason,omitempty"`
	Text                string         `json:"text,omitempty"`
}

// BusinessReject represents a parsed Business Message Reject (j) message.
type BusinessReject struct {
	RefSeqNum            string         `json:"refSeqNum"`
	RefMsgType           string         `json:"refMsgType"`
	BusinessRejectReason fixfield.Value `json:"businessRejectReason"`
	Text                 string         `json:"text,omitempty"`
}

// QuoteAck represents a parsed Quote Acknowledgement (b) message (rejection).
type QuoteAck struct {
	QuoteID           string         `json:"quoteId,omitempty"`
	QuoteReqID        string         `json:"quoteReqId"`
	Account           string         `json:"account"`
	Symbol            string         `json:"symbol"`
	QuoteAckStatus    fixfield.Value `json:"quoteAckStatus"`
	QuoteRejectReason fixfield.Value `json:"quoteRejectReason"`
	Text              string         `json:"text,omitempty"`
}

// OrderStore provides thread-safe storage for orders and quotes.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*Order // ClOrdID -> Order
	quotes map[string]*Quote // QuoteReqID -> Quote
}

// NewOrderStore creates a new OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]*Order),
		quotes: make(map[string]*Quote),
	}
}

// --- Order Operations ---

// AddOrder adds or updates an order in the store.
func (os *OrderStore) AddOrder(order *Order) {
	os.mu.Lock()
	defer os.mu.Unlock()
	order.UpdatedAt = time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = order.UpdatedAt
	}
	os.orders[order.ClOrdID] = order
}

// GetOrder retrieves an order by ClOrdID.
func (os *OrderStore) GetOrder(clOrdID string) *Order {
	os.mu.RLock()
	defer os.mu.RUnlock()
	if order, exists := os.orders[clOrdID]; exists {
		copy := *order
		return &copy
	}
	return nil
}

// GetOrderByOrderID retrieves an order by exchange OrderID.
func (os *OrderStore) GetOrderByOrderID(orderID string) *Order {
	os.mu.RLock()
	defer os.mu.RUnlock()
	for _, order := range os.orders {
		if order.OrderID == orderID {
			copy := *order
			return &copy
		}
	}
	return nil
}

// UpdateOrderFromExecReport updates an order based on an execution report.
func (os *OrderStore) UpdateOrderFromExecReport(er *ExecutionReport) {
	os.mu.Lock()
	defer os.mu.Unlock()

	order, exists := os.orders[er.ClOrdID]
	if !exists {
		order = &Order{
			ClOrdID:   er.ClOrdID,
			CreatedAt: time.Now(),
		}
		os.orders[er.ClOrdID] = order
	}

	order.UpdatedAt = time.Now()
	order.OrderID = er.OrderID
	order.Symbol = er.Symbol
	order.Side = er.Side
	order.OrdType = er.OrdType
	order.OrdStatus = er.OrdStatus
	order.ExecType = er.ExecType
	order.Account = er.Account

	if !er.OrderQty.IsZero() {
		order.OrderQty = er.OrderQty
	}
	if !er.CashOrderQty.IsZero() {
		order.CashOrderQty = er.CashOrderQty
	}
	if !er.Price.IsZero() {
		order.Price = er.Price
	}
	if !er.AvgPx.IsZero() {
		order.AvgPx = er.AvgPx
	}
	if !er.CumQty.IsZero() {
		order.CumQty = er.CumQty
	}
	if !er.LeavesQty.IsZero() {
		order.LeavesQty = er.LeavesQty
	}
	if !er.LastPx.IsZero() {
		order.LastPx = er.LastPx
	}
	if !er.LastShares.IsZero() {
		order.LastShares = er.LastShares
	}
	if er.ExecID != "" {
		order.ExecID = er.ExecID
	}
	if !er.Commission.IsZero() {
		order.Commission = er.Commission
	}
	if er.FilledAmt != "" {
		order.FilledAmt = er.FilledAmt
	}
	if er.NetAvgPx != "" {
		order.NetAvgPx = er.NetAvgPx
	}
	if er.OrdRejReason.Raw() != "" {
		order.OrdRejReason = er.OrdRejReason
	}
	if er.Text != "" {
		order.Text = er.Text
	}
}

// GetAllOrders returns a copy of all orders.
func (os *OrderStore) GetAllOrders() []*Order {
	os.mu.RLock()
	defer os.mu.RUnlock()

	result := make([]*Order, 0, len(os.orders))
	for _, order := range os.orders {
		copy := *order
		result = append(result, &copy)
	}
	return result
}

// GetOpenOrders returns orders that are still open (not filled, canceled, or rejected).
func (os *OrderStore) GetOpenOrders() []*Order {
	os.mu.RLock()
	defer os.mu.RUnlock()

	result := make([]*Order, 0)
	for _, order := range os.orders {
		if isOpenStatus(order.OrdStatus) {
			copy := *order
			result = append(result, &copy)
		}
	}
	return result
}

// RemoveOrder removes an order from the store.
func (os *OrderStore) RemoveOrder(clOrdID string) {
	os.mu.Lock()
	defer os.mu.Unlock()
	delete(os.orders, clOrdID)
}

// --- Quote Operations ---

// AddQuote adds or updates a quote in the store.
func (os *OrderStore) AddQuote(quote *Quote) {
	os.mu.Lock()
	defer os.mu.Unlock()
	quote.ReceivedAt = time.Now()
	os.quotes[quote.QuoteReqID] = quote
}

// GetQuote retrieves a quote by QuoteReqID.
func (os *OrderStore) GetQuote(quoteReqID string) *Quote {
	os.mu.RLock()
	defer os.mu.RUnlock()
	if quote, exists := os.quotes[quoteReqID]; exists {
		copy := *quote
		return &copy
	}
	return nil
}

// GetQuoteByQuoteID retrieves a quote by QuoteID.
func (os *OrderStore) GetQuoteByQuoteID(quoteID string) *Quote {
	os.mu.RLock()
	defer os.mu.RUnlock()
	for _, quote := range os.quotes {
		if quote.QuoteID == quoteID {
			copy := *quote
			return &copy
		}
	}
	return nil
}

// RemoveQuote removes a quote from the store.
func (os *OrderStore) RemoveQuote(quoteReqID string) {
	os.mu.Lock()
	defer os.mu.Unlock()
	delete(os.quotes, quoteReqID)
}

// GetAllQuotes returns a copy of all quotes.
func (os *OrderStore) GetAllQuotes() []*Quote {
	os.mu.RLock()
	defer os.mu.RUnlock()

	result := make([]*Quote, 0, len(os.quotes))
	for _, quote := range os.quotes {
		copy := *quote
		result = append(result, &copy)
	}
	return result
}

// --- Helper Functions ---

// isOpenStatus returns true if the order status indicates an open order.
func isOpenStatus(status fixfield.Value) bool {
	switch status.Raw() {
	case "0", "1", "6", "9", "A", "E": // New, PartiallyFilled, PendingCancel, Suspended, PendingNew, PendingReplace
		return true
	default:
		return false
	}
}
