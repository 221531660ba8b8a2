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

package fixfield

import "fmt"

// UnknownEnumValue is returned by an enum parser when the wire value is
// not a member of the code set.
type UnknownEnumValue struct {
	Enum string
	Raw  string
}

func (e *UnknownEnumValue) Error() string {
	return fmt.Sprintf("fixfield: unknown %s enum value %q", e.Enum, e.Raw)
}

// EnumSet is a small closed code set: wire string <-> description.
// It backs MsgType, Side, OrdType, OrdStatus, and the other single- or
// short-code FIX enumerations. The universe is open at the registry level
// (descriptors can always fall back to KindString), but each named code
// set is closed: Parse rejects any wire value the set does not list.
// MsgType, Side, OrdType, SessionRejectReason, BusinessRejectReason and
// CxlRejReason list only part of their FIX 4.4 code sets.
type EnumSet struct {
	name    string
	members map[string]string // wire value -> description
}

func newEnumSet(name string, members map[string]string) *EnumSet {
	return &EnumSet{name: name, members: members}
}

func (e *EnumSet) Parse(raw string) (string, error) {
	if _, ok := e.members[raw]; !ok {
		return "", &UnknownEnumValue{Enum: e.name, Raw: raw}
	}
	return raw, nil
}

func (e *EnumSet) Describe(raw string) string {
	if d, ok := e.members[raw]; ok {
		return d
	}
	return "Unknown"
}

// MsgType (tag 35).
var MsgTypeSet = newEnumSet("MsgType", map[string]string{
	"0": "Heartbeat",
	"1": "TestRequest",
	"2": "ResendRequest",
	"3": "Reject",
	"4": "SequenceReset",
	"5": "Logout",
	"6": "IndicationOfInterest",
	"7": "Advertisement",
	"8": "ExecutionReport",
	"9": "OrderCancelReject",
	"A": "Logon",
	"B": "News",
	"D": "NewOrderSingle",
	"F": "OrderCancelRequest",
	"G": "OrderCancelReplaceRequest",
	"H": "OrderStatusRequest",
	"R": "QuoteRequest",
	"S": "Quote",
	"V": "MarketDataRequest",
	"W": "MarketDataSnapshotFullRefresh",
	"X": "MarketDataIncrementalRefresh",
	"Y": "MarketDataRequestReject",
	"b": "QuoteAcknowledgement",
	"j": "BusinessMessageReject",
})

// Side (tag 54).
var SideSet = newEnumSet("Side", map[string]string{
	"1": "Buy",
	"2": "Sell",
	"3": "BuyMinus",
	"4": "SellPlus",
	"5": "SellShort",
	"6": "SellShortExempt",
	"7": "Undisclosed",
	"8": "Cross",
	"9": "CrossShort",
})

// OrdType (tag 40).
var OrdTypeSet = newEnumSet("OrdType", map[string]string{
	"1": "Market",
	"2": "Limit",
	"3": "Stop",
	"4": "StopLimit",
	"5": "MarketOnClose",
	"6": "WithOrWithout",
	"7": "LimitOrBest",
	"8": "LimitWithOrWithout",
	"9": "OnBasis",
	"D": "PreviouslyQuoted",
	"E": "PreviouslyIndicated",
	"I": "Funari",
	"P": "Pegged",
})

// OrdStatus (tag 39) — full FIX 4.4 code set (original_source left only "New").
var OrdStatusSet = newEnumSet("OrdStatus", map[string]string{
	"0": "New",
	"1": "PartiallyFilled",
	"2": "Filled",
	"3": "DoneForDay",
	"4": "Canceled",
	"5": "Replaced",
	"6": "PendingCancel",
	"7": "Stopped",
	"8": "Rejected",
	"9": "Suspended",
	"A": "PendingNew",
	"B": "Calculated",
	"C": "Expired",
	"D": "AcceptedForBidding",
	"E": "PendingReplace",
})

// ExecType (tag 150).
var ExecTypeSet = newEnumSet("ExecType", map[string]string{
	"0": "New",
	"1": "PartialFill",
	"2": "Fill",
	"3": "DoneForDay",
	"4": "Canceled",
	"5": "Replaced",
	"6": "PendingCancel",
	"7": "Stopped",
	"8": "Rejected",
	"9": "Suspended",
	"A": "PendingNew",
	"B": "Calculated",
	"C": "Expired",
	"D": "Restated",
	"E": "PendingReplace",
	"F": "Trade",
	"G": "TradeCorrect",
	"H": "TradeCancel",
	"I": "OrderStatus",
})

// TimeInForce (tag 59).
var TimeInForceSet = newEnumSet("TimeInForce", map[string]string{
	"0": "Day",
	"1": "GoodTillCancel",
	"2": "AtTheOpening",
	"3": "ImmediateOrCancel",
	"4": "FillOrKill",
	"5": "GoodTillCrossing",
	"6": "GoodTillDate",
	"7": "AtTheClose",
})

// HandlInst (tag 21).
var HandlInstSet = newEnumSet("HandlInst", map[string]string{
	"1": "AutomatedExecutionNoIntervention",
	"2": "AutomatedExecutionInterventionOK",
	"3": "ManualOrder",
})

// SubscriptionRequestType (tag 263).
var SubscriptionRequestTypeSet = newEnumSet("SubscriptionRequestType", map[string]string{
	"0": "Snapshot",
	"1": "SnapshotPlusUpdates",
	"2": "DisablePreviousSnapshot",
})

// MDEntryType (tag 269).
var MDEntryTypeSet = newEnumSet("MDEntryType", map[string]string{
	"0": "Bid",
	"1": "Offer",
	"2": "Trade",
	"3": "IndexValue",
	"4": "OpeningPrice",
	"5": "ClosingPrice",
	"6": "SettlementPrice",
	"7": "TradingSessionHighPrice",
	"8": "TradingSessionLowPrice",
	"9": "TradingSessionVWAPPrice",
	"A": "Imbalance",
	"B": "TradeVolume",
	"C": "OpenInterest",
})

// MDUpdateType (tag 265).
var MDUpdateTypeSet = newEnumSet("MDUpdateType", map[string]string{
	"0": "FullRefresh",
	"1": "IncrementalRefresh",
})

// SessionRejectReason (tag 373).
var SessionRejectReasonSet = newEnumSet("SessionRejectReason", map[string]string{
	"0":  "InvalidTagNumber",
	"1":  "RequiredTagMissing",
	"2":  "TagNotDefinedForThisMessageType",
	"3":  "UndefinedTag",
	"4":  "TagSpecifiedWithoutAValue",
	"5":  "ValueIsIncorrect",
	"6":  "IncorrectDataFormatForValue",
	"7":  "DecryptionProblem",
	"8":  "SignatureProblem",
	"9":  "CompIDProblem",
	"10": "SendingTimeAccuracyProblem",
	"11": "InvalidMsgType",
})

// BusinessRejectReason (tag 380).
var BusinessRejectReasonSet = newEnumSet("BusinessRejectReason", map[string]string{
	"0": "Other",
	"1": "UnknownID",
	"2": "UnknownSecurity",
	"3": "UnsupportedMessageType",
	"4": "ApplicationNotAvailable",
	"5": "ConditionallyRequiredFieldMissing",
	"6": "NotAuthorized",
})

// CxlRejReason (tag 102).
var CxlRejReasonSet = newEnumSet("CxlRejReason", map[string]string{
	"0": "TooLateToCancel",
	"1": "UnknownOrder",
	"2": "BrokerOption",
	"3": "OrderAlreadyInPendingStatus",
	"6": "DuplicateClOrdID",
})

// CxlRejResponseTo (tag 434).
var CxlRejResponseToSet = newEnumSet("CxlRejResponseTo", map[string]string{
	"1": "OrderCancelRequest",
	"2": "OrderCancelReplaceRequest",
})

// EncryptMethod (tag 98).
var EncryptMethodSet = newEnumSet("EncryptMethod", map[string]string{
	"0": "None",
	"1": "PKCS",
	"2": "DES",
	"3": "PKCSDES",
	"4": "PGPDES",
	"5": "PGPDESMD5",
	"6": "PEMDESMD5",
})
