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

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func stringDescriptor(tag Tag, name string) Descriptor {
	return Descriptor{
		Tag:  tag,
		Name: name,
		Parse: func(raw string) (Value, error) {
			return NewStringValue(raw), nil
		},
		Print: func(v Value) (string, error) { return v.Raw(), nil },
	}
}

func intDescriptor(tag Tag, name string) Descriptor {
	return Descriptor{
		Tag:  tag,
		Name: name,
		Parse: func(raw string) (Value, error) {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return Value{}, err
			}
			return NewIntValue(n), nil
		},
		Print: func(v Value) (string, error) { return v.Raw(), nil },
	}
}

func floatDescriptor(tag Tag, name string) Descriptor {
	return Descriptor{
		Tag:  tag,
		Name: name,
		Parse: func(raw string) (Value, error) {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return Value{}, err
			}
			return NewFloatValue(d), nil
		},
		Print: func(v Value) (string, error) { return v.Raw(), nil },
	}
}

func boolDescriptor(tag Tag, name string) Descriptor {
	return Descriptor{
		Tag:  tag,
		Name: name,
		Parse: func(raw string) (Value, error) {
			y, err := ParseYesOrNo(raw)
			if err != nil {
				return Value{}, err
			}
			return NewBoolValue(y), nil
		},
		Print: func(v Value) (string, error) { return v.Raw(), nil },
	}
}

func timestampDescriptor(tag Tag, name string) Descriptor {
	return Descriptor{
		Tag:  tag,
		Name: name,
		Parse: func(raw string) (Value, error) {
			t, err := ParseUTCTimestamp(raw)
			if err != nil {
				return Value{}, err
			}
			return NewTimestampValue(t), nil
		},
		Print: func(v Value) (string, error) { return v.Raw(), nil },
	}
}

func enumDescriptor(tag Tag, name string, set *EnumSet) Descriptor {
	return Descriptor{
		Tag:  tag,
		Name: name,
		Parse: func(raw string) (Value, error) {
			wire, err := set.Parse(raw)
			if err != nil {
				return Value{}, err
			}
			return NewEnumValue(wire), nil
		},
		Print: func(v Value) (string, error) { return v.Raw(), nil },
	}
}

// StringDescriptor builds a plain string-typed Descriptor for a custom
// tag. Venue adapters use this to register the vendor-specific fields
// the standard registry knows nothing about (AccessKey, Passphrase,
// RawData, ...) without exposing the internal descriptor constructors
// used for the protocol's own scalar types.
func StringDescriptor(tag Tag, name string) Descriptor {
	return stringDescriptor(tag, name)
}

// Default returns a fresh, unsealed registry populated with the standard
// FIX 4.4 / FIXT.1.1 header, trailer, and common body tags. Venue
// adapters register their own descriptors into it (RegisterFields)
// before it is sealed.
func Default() *Registry {
	r := NewRegistry()

	// Header
	r.MustRegister(stringDescriptor(8, "BeginString"))
	r.MustRegister(intDescriptor(9, "BodyLength"))
	r.MustRegister(enumDescriptor(35, "MsgType", MsgTypeSet))
	r.MustRegister(stringDescriptor(49, "SenderCompID"))
	r.MustRegister(stringDescriptor(50, "SenderSubID"))
	r.MustRegister(stringDescriptor(56, "TargetCompID"))
	r.MustRegister(stringDescriptor(57, "TargetSubID"))
	r.MustRegister(intDescriptor(34, "MsgSeqNum"))
	r.MustRegister(boolDescriptor(43, "PossDupFlag"))
	r.MustRegister(boolDescriptor(97, "PossResend"))
	r.MustRegister(timestampDescriptor(52, "SendingTime"))
	r.MustRegister(timestampDescriptor(122, "OrigSendingTime"))

	// Trailer
	r.MustRegister(stringDescriptor(10, "CheckSum"))

	// Logon / admin
	r.MustRegister(enumDescriptor(98, "EncryptMethod", EncryptMethodSet))
	r.MustRegister(intDescriptor(108, "HeartBtInt"))
	r.MustRegister(boolDescriptor(141, "ResetSeqNumFlag"))
	r.MustRegister(stringDescriptor(553, "Username"))
	r.MustRegister(stringDescriptor(554, "Password"))
	r.MustRegister(stringDescriptor(112, "TestReqID"))
	r.MustRegister(stringDescriptor(58, "Text"))
	r.MustRegister(intDescriptor(45, "RefSeqNum"))
	r.MustRegister(intDescriptor(371, "RefTagID"))
	r.MustRegister(stringDescriptor(372, "RefMsgType"))
	r.MustRegister(enumDescriptor(373, "SessionRejectReason", SessionRejectReasonSet))
	r.MustRegister(enumDescriptor(380, "BusinessRejectReason", BusinessRejectReasonSet))
	r.MustRegister(intDescriptor(379, "BusinessRejectRefID"))
	r.MustRegister(intDescriptor(7, "BeginSeqNo"))
	r.MustRegister(intDescriptor(16, "EndSeqNo"))
	r.MustRegister(intDescriptor(36, "NewSeqNo"))
	r.MustRegister(boolDescriptor(123, "GapFillFlag"))

	// Order entry
	r.MustRegister(stringDescriptor(1, "Account"))
	r.MustRegister(stringDescriptor(11, "ClOrdID"))
	r.MustRegister(stringDescriptor(41, "OrigClOrdID"))
	r.MustRegister(stringDescriptor(37, "OrderID"))
	r.MustRegister(stringDescriptor(55, "Symbol"))
	r.MustRegister(enumDescriptor(54, "Side", SideSet))
	r.MustRegister(enumDescriptor(40, "OrdType", OrdTypeSet))
	r.MustRegister(enumDescriptor(39, "OrdStatus", OrdStatusSet))
	r.MustRegister(enumDescriptor(150, "ExecType", ExecTypeSet))
	r.MustRegister(enumDescriptor(59, "TimeInForce", TimeInForceSet))
	r.MustRegister(enumDescriptor(21, "HandlInst", HandlInstSet))
	r.MustRegister(floatDescriptor(38, "OrderQty"))
	r.MustRegister(floatDescriptor(152, "CashOrderQty"))
	r.MustRegister(floatDescriptor(44, "Price"))
	r.MustRegister(floatDescriptor(99, "StopPx"))
	r.MustRegister(floatDescriptor(6, "AvgPx"))
	r.MustRegister(floatDescriptor(14, "CumQty"))
	r.MustRegister(floatDescriptor(151, "LeavesQty"))
	r.MustRegister(floatDescriptor(31, "LastPx"))
	r.MustRegister(floatDescriptor(32, "LastShares"))
	r.MustRegister(stringDescriptor(17, "ExecID"))
	r.MustRegister(stringDescriptor(18, "ExecInst"))
	r.MustRegister(timestampDescriptor(126, "ExpireTime"))
	r.MustRegister(timestampDescriptor(168, "EffectiveTime"))
	r.MustRegister(timestampDescriptor(60, "TransactTime"))
	r.MustRegister(timestampDescriptor(62, "ValidUntilTime"))
	r.MustRegister(floatDescriptor(210, "MaxShow"))
	r.MustRegister(intDescriptor(103, "OrdRejReason"))
	r.MustRegister(enumDescriptor(102, "CxlRejReason", CxlRejReasonSet))
	r.MustRegister(enumDescriptor(434, "CxlRejResponseTo", CxlRejResponseToSet))
	r.MustRegister(floatDescriptor(12, "Commission"))
	r.MustRegister(intDescriptor(13, "CommType"))
	r.MustRegister(stringDescriptor(117, "QuoteID"))
	r.MustRegister(stringDescriptor(131, "QuoteReqID"))
	r.MustRegister(floatDescriptor(132, "BidPx"))
	r.MustRegister(floatDescriptor(133, "OfferPx"))
	r.MustRegister(floatDescriptor(134, "BidSize"))
	r.MustRegister(floatDescriptor(135, "OfferSize"))
	r.MustRegister(intDescriptor(297, "QuoteAckStatus"))
	r.MustRegister(intDescriptor(300, "QuoteRejectReason"))

	// Market data
	r.MustRegister(stringDescriptor(262, "MDReqID"))
	r.MustRegister(enumDescriptor(263, "SubscriptionRequestType", SubscriptionRequestTypeSet))
	r.MustRegister(intDescriptor(264, "MarketDepth"))
	r.MustRegister(enumDescriptor(265, "MDUpdateType", MDUpdateTypeSet))
	r.MustRegister(intDescriptor(267, "NoMDEntryTypes"))
	r.MustRegister(intDescriptor(146, "NoRelatedSym"))
	r.MustRegister(intDescriptor(268, "NoMDEntries"))
	r.MustRegister(enumDescriptor(269, "MDEntryType", MDEntryTypeSet))
	r.MustRegister(floatDescriptor(270, "MDEntryPx"))
	r.MustRegister(floatDescriptor(271, "MDEntrySize"))
	r.MustRegister(dateDescriptor(272, "MDEntryDate"))
	r.MustRegister(timeOnlyDescriptor(273, "MDEntryTime"))
	r.MustRegister(intDescriptor(281, "MDReqRejReason"))
	r.MustRegister(intDescriptor(290, "MDEntryPositionNo"))
	r.MustRegister(timestampDescriptor(779, "LastUpdateTime"))

	return r
}

func dateDescriptor(tag Tag, name string) Descriptor {
	return Descriptor{
		Tag:  tag,
		Name: name,
		Parse: func(raw string) (Value, error) {
			d, err := ParseDate(raw)
			if err != nil {
				return Value{}, err
			}
			return NewDateValue(d), nil
		},
		Print: func(v Value) (string, error) { return v.Raw(), nil },
	}
}

func timeOnlyDescriptor(tag Tag, name string) Descriptor {
	return Descriptor{
		Tag:  tag,
		Name: name,
		Parse: func(raw string) (Value, error) {
			t, err := ParseTZTimeOnly(raw)
			if err != nil {
				return Value{}, err
			}
			return NewTimeOnlyValue(t), nil
		},
		Print: func(v Value) (string, error) { return v.Raw(), nil },
	}
}
