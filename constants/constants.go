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

// Package constants holds the MsgType, field-value enum, and well-known
// Tag declarations shared by the builder, venue adapters, and CLI
// harness. Tags are fixfield.Tag so they plug directly into Registry
// lookups and fixcodec.FieldList without a conversion step.
package constants

import "github.com/gurre/prime-fix-md-go/fixfield"

// --- Message Types ---
const (
	// Admin Messages
	MsgTypeLogon            = "A" // Logon
	MsgTypeReject           = "3" // Session-level Reject
	MsgTypeBusinessReject   = "j" // Business Message Reject
	MsgTypeMarketDataReject = "Y" // Market Data Request Reject

	// Market Data Messages
	MsgTypeMarketDataRequest     = "V" // Market Data Request
	MsgTypeMarketDataSnapshot    = "W" // Market Data Snapshot/Full Refresh
	MsgTypeMarketDataIncremental = "X" // Market Data Incremental Refresh

	// Order Entry Messages
	MsgTypeNewOrderSingle       = "D" // New Order Single
	MsgTypeOrderCancelRequest   = "F" // Order Cancel Request
	MsgTypeOrderCancelReplace   = "G" // Order Cancel/Replace Request
	MsgTypeOrderStatusRequest   = "H" // Order Status Request
	MsgTypeExecutionReport      = "8" // Execution Report
	MsgTypeOrderCancelReject    = "9" // Order Cancel Reject
	MsgTypeQuoteRequest         = "R" // Quote Request
	MsgTypeQuote                = "S" // Quote
	MsgTypeQuoteAcknowledgement = "b" // Quote Acknowledgement
)

// --- Protocol Constants ---
const (
	FixTimeFormat     = "20060102-15:04:05.000"
	FixBeginString    = "FIXT.1.1"
	EncryptMethodNone = "0"
	HeartBtInterval   = "30"
	DropCopyFlagYes   = "Y"
	MsgSeqNumInit     = "1"
)

// --- Subscription Request Types ---
const (
	SubscriptionRequestTypeSnapshot    = "0" // Snapshot
	SubscriptionRequestTypeSubscribe   = "1" // Subscribe
	SubscriptionRequestTypeUnsubscribe = "2" // Unsubscribe
)

// --- MD Entry Types ---
const (
	MdEntryTypeBid    = "0" // Bid
	MdEntryTypeOffer  = "1" // Offer/Ask
	MdEntryTypeTrade  = "2" // Trade
	MdEntryTypeOpen   = "4" // Open
	MdEntryTypeClose  = "5" // Close
	MdEntryTypeHigh   = "7" // High
	MdEntryTypeLow    = "8" // Low
	MdEntryTypeVolume = "B" // Volume
)

// --- MD Update Types ---
const (
	MdUpdateTypeFullRefresh = "0" // Full refresh
	MdUpdateTypeIncremental = "1" // Incremental refresh
)

// --- Order Types (Tag 40) ---
const (
	OrdTypeMarket           = "1" // Market
	OrdTypeLimit            = "2" // Limit
	OrdTypeStop             = "3" // Stop
	OrdTypeStopLimit        = "4" // Stop Limit
	OrdTypePreviouslyQuoted = "D" // Previously Quoted (for RFQ)
)

// --- Side (Tag 54) ---
const (
	SideBuy  = "1" // Buy
	SideSell = "2" // Sell
)

// --- Time In Force (Tag 59) ---
const (
	TimeInForceGTC = "1" // Good Till Cancel
	TimeInForceIOC = "3" // Immediate or Cancel
	TimeInForceFOK = "4" // Fill or Kill
	TimeInForceGTD = "6" // Good Till Date
)

// --- Target Strategy (Tag 847) ---
const (
	TargetStrategyLimit     = "L"  // Limit order
	TargetStrategyMarket    = "M"  // Market order
	TargetStrategyTWAP      = "T"  // TWAP order
	TargetStrategyVWAP      = "V"  // VWAP order
	TargetStrategyStopLimit = "SL" // Stop Limit order
	TargetStrategyRFQ       = "R"  // RFQ order
)

// --- Order Status (Tag 39) ---
const (
	OrdStatusNew             = "0" // New
	OrdStatusPartiallyFilled = "1" // Partially Filled
	OrdStatusFilled          = "2" // Filled
	OrdStatusDoneForDay      = "3" // Done for Day
	OrdStatusCanceled        = "4" // Canceled
	OrdStatusReplaced        = "5" // Replaced
	OrdStatusPendingCancel   = "6" // Pending Cancel
	OrdStatusStopped         = "7" // Stopped
	OrdStatusRejected        = "8" // Rejected
	OrdStatusSuspended       = "9" // Suspended
	OrdStatusPendingNew      = "A" // Pending New
	OrdStatusCalculated      = "B" // Calculated
	OrdStatusExpired         = "C" // Expired
	OrdStatusAcceptedBidding = "D" // Accepted for Bidding
	OrdStatusPendingReplace  = "E" // Pending Replace
)

// --- Execution Type (Tag 150) ---
const (
	ExecTypeNew           = "0" // New Order
	ExecTypePartialFill   = "1" // Partial Fill
	ExecTypeFilled        = "2" // Filled
	ExecTypeDone          = "3" // Done
	ExecTypeCanceled      = "4" // Canceled
	ExecTypePendingCancel = "6" // Pending Cancel
	ExecTypeStopped       = "7" // Stopped
	ExecTypeRejected      = "8" // Rejected
	ExecTypePendingNew    = "A" // Pending New
	ExecTypeExpired       = "C" // Expired
	ExecTypeRestated      = "D" // Restated
	ExecTypeOrderStatus   = "I" // Order Status
)

// --- Order Reject Reason (Tag 103) ---
const (
	OrdRejReasonBrokerOption   = "0"  // Broker option
	OrdRejReasonUnknownSymbol  = "1"  // Unknown symbol
	OrdRejReasonExchangeClosed = "2"  // Exchange closed
	OrdRejReasonExceedsLimit   = "3"  // Order exceeds limit
	OrdRejReasonTooLate        = "4"  // Too late to enter
	OrdRejReasonUnknownOrder   = "5"  // Unknown Order
	OrdRejReasonDuplicateOrder = "6"  // Duplicate Order
	OrdRejReasonOther          = "99" // Other
)

// --- Cancel Reject Response To (Tag 434) ---
const (
	CxlRejResponseToCancel  = "1" // Order Cancel Request (F)
	CxlRejResponseToReplace = "2" // Order Cancel/Replace Request (G)
)

// --- Quote Acknowledgement Status (Tag 297) ---
const (
	QuoteAckStatusRejected = "5" // Rejected
)

// --- Quote Reject Reason (Tag 300) ---
const (
	QuoteRejectReasonUnknownSymbol  = "1"  // Unknown symbol
	QuoteRejectReasonExchangeClosed = "2"  // Exchange closed
	QuoteRejectReasonExceedsLimit   = "3"  // Quote Request exceeds limit
	QuoteRejectReasonDuplicate      = "6"  // Duplicate Quote
	QuoteRejectReasonInvalidPrice   = "8"  // Invalid price
	QuoteRejectReasonOther          = "99" // Other
)

// --- Session Reject Reason (Tag 373) ---
const (
	SessionRejectReasonInvalidTag          = "0"
	SessionRejectReasonRequiredTagMissing  = "1"
	SessionRejectReasonTagNotDefined       = "2"
	SessionRejectReasonUndefinedTag        = "3"
	SessionRejectReasonTagWithoutValue     = "4"
	SessionRejectReasonValueOutOfRange     = "5"
	SessionRejectReasonIncorrectDataFormat = "6"
	SessionRejectReasonDecryptionProblem   = "7"
	SessionRejectReasonSignatureProblem    = "8"
	SessionRejectReasonCompIDProblem       = "9"
	SessionRejectReasonSendingTimeAccuracy = "10"
	SessionRejectReasonInvalidMsgType      = "11"
)

// --- Business Reject Reason (Tag 380) ---
const (
	BusinessRejectReasonOther               = "0"
	BusinessRejectReasonUnknownID           = "1"
	BusinessRejectReasonUnknownSecurity     = "2"
	BusinessRejectReasonUnsupportedMsgType  = "3"
	BusinessRejectReasonApplicationNotAvail = "4"
	BusinessRejectReasonCondRequiredMissing = "5"
	BusinessRejectReasonNotAuthorized       = "6"
)

// --- Execution Instruction (Tag 18) ---
// Per Coinbase Prime FIX API: https://docs.cdp.coinbase.com/prime/fix-api/order-entry-messages
// ExecInst must be "A" for Post Only orders (maker-only).
const (
	ExecInstPostOnly = "A" // Post Only (maker-only order)
)

// --- Handling Instruction (Tag 21) ---
const (
	HandlInstAutomatedNoIntervention = "1"
)

// --- Commission Type (Tag 13) ---
const (
	CommTypeAbsolute = "3" // Absolute (fixed amount)
)

// --- Misc Fee Type (Tag 139) ---
// Per Coinbase Prime FIX API Execution Report:
// https://docs.cdp.coinbase.com/prime/fix-api/order-entry-messages
// MiscFees is a repeating group with Tags 136 (count), 137 (amt), 138 (curr), 139 (type).
const (
	MiscFeeTypeFinancing  = "1" // Financing Fee
	MiscFeeTypeClientComm = "2" // Client Commission
	MiscFeeTypeCESComm    = "3" // CES Commission
	MiscFeeTypeVenueFee   = "4" // Venue Fee
)

// --- Standard FIX Tags ---
var (
	TagAccount        = fixfield.Tag(1)
	TagAvgPx          = fixfield.Tag(6)
	TagBeginString    = fixfield.Tag(8)
	TagClOrdID        = fixfield.Tag(11)
	TagCommission     = fixfield.Tag(12)
	TagCommType       = fixfield.Tag(13)
	TagCumQty         = fixfield.Tag(14)
	TagExecID         = fixfield.Tag(17)
	TagExecInst       = fixfield.Tag(18)
	TagHandlInst      = fixfield.Tag(21)
	TagLastMkt        = fixfield.Tag(30)
	TagLastPx         = fixfield.Tag(31)
	TagLastShares     = fixfield.Tag(32)
	TagMsgSeqNum      = fixfield.Tag(34)
	TagMsgType        = fixfield.Tag(35)
	TagOrderID        = fixfield.Tag(37)
	TagOrderQty       = fixfield.Tag(38)
	TagOrdStatus      = fixfield.Tag(39)
	TagOrdType        = fixfield.Tag(40)
	TagOrigClOrdID    = fixfield.Tag(41)
	TagPrice          = fixfield.Tag(44)
	TagRefSeqNum      = fixfield.Tag(45)
	TagSenderCompId   = fixfield.Tag(49)
	TagSenderSubID    = fixfield.Tag(50)
	TagSendingTime    = fixfield.Tag(52)
	TagSide           = fixfield.Tag(54)
	TagSymbol         = fixfield.Tag(55)
	TagText           = fixfield.Tag(58)
	TagTimeInForce    = fixfield.Tag(59)
	TagTransactTime   = fixfield.Tag(60)
	TagTargetCompId   = fixfield.Tag(56)
	TagValidUntilTime = fixfield.Tag(62)
	TagHmac           = fixfield.Tag(96)
	TagEncryptMethod  = fixfield.Tag(98)
	TagStopPx         = fixfield.Tag(99)
	TagOrdRejReason   = fixfield.Tag(103)
	TagCxlRejReason   = fixfield.Tag(102)
	TagHeartBtInt     = fixfield.Tag(108)
	TagQuoteID        = fixfield.Tag(117)
	TagExpireTime     = fixfield.Tag(126)
	TagQuoteReqID     = fixfield.Tag(131)
	TagBidPx          = fixfield.Tag(132)
	TagOfferPx        = fixfield.Tag(133)
	TagBidSize        = fixfield.Tag(134)
	TagOfferSize      = fixfield.Tag(135)
	TagNoMiscFees     = fixfield.Tag(136)
	TagMiscFeeAmt     = fixfield.Tag(137)
	TagMiscFeeCurr    = fixfield.Tag(138)
	TagMiscFeeType    = fixfield.Tag(139)
	TagNoRelatedSym   = fixfield.Tag(146)
	TagExecType       = fixfield.Tag(150)
	TagLeavesQty      = fixfield.Tag(151)
	TagCashOrderQty   = fixfield.Tag(152)
	TagEffectiveTime  = fixfield.Tag(168)
	TagMaxShow        = fixfield.Tag(210)

	// Market Data Tags
	TagMdReqId                 = fixfield.Tag(262)
	TagSubscriptionRequestType = fixfield.Tag(263)
	TagMarketDepth             = fixfield.Tag(264)
	TagMdUpdateType            = fixfield.Tag(265)
	TagNoMdEntryTypes          = fixfield.Tag(267)
	TagNoMdEntries             = fixfield.Tag(268)
	TagMdEntryType             = fixfield.Tag(269)
	TagMdEntryPx               = fixfield.Tag(270)
	TagMdEntrySize             = fixfield.Tag(271)
	TagMdEntryTime             = fixfield.Tag(273)
	TagMdReqRejReason          = fixfield.Tag(281)
	TagMdEntryPositionNo       = fixfield.Tag(290)

	// Quote Tags
	TagQuoteAckStatus    = fixfield.Tag(297)
	TagQuoteRejectReason = fixfield.Tag(300)

	// Reject Tags
	TagRefTagID             = fixfield.Tag(371)
	TagRefMsgType           = fixfield.Tag(372)
	TagSessionRejectReason  = fixfield.Tag(373)
	TagBusinessRejectReason = fixfield.Tag(380)

	// Order Tags
	TagCxlRejResponseTo  = fixfield.Tag(434)
	TagUsername          = fixfield.Tag(553)
	TagPassword          = fixfield.Tag(554)
	TagTargetStrategy    = fixfield.Tag(847)
	TagParticipationRate = fixfield.Tag(849)
	TagDefaultApplVerId  = fixfield.Tag(1137)

	// Coinbase Custom Tags
	TagAggressorSide = fixfield.Tag(2446)
	TagDropCopyFlag  = fixfield.Tag(9406)
	TagAccessKey     = fixfield.Tag(9407)
	TagFilledAmt     = fixfield.Tag(8002)
	TagNetAvgPrice   = fixfield.Tag(8006)
	TagIsRaiseExact  = fixfield.Tag(8999)
)

// --- MD Rejection Reasons ---
const (
	MdReqRejReasonUnknownSymbol              = "0"
	MdReqRejReasonDuplicateMdReqId           = "1"
	MdReqRejReasonInsufficientBandwidth      = "2"
	MdReqRejReasonInsufficientPermission     = "3"
	MdReqRejReasonInvalidSubscriptionReqType = "4"
	MdReqRejReasonInvalidMarketDepth         = "5"
	MdReqRejReasonUnsupportedMdUpdateType    = "6"
	MdReqRejReasonOther                      = "7"
	MdReqRejReasonUnsupportedMdEntryType     = "8"
)
