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

// Package fixfield implements the FIX scalar types, the typed field value
// universe, and the extensible field registry described by the protocol:
// a tag identifies a field on the wire, a name gives it a printable
// identity, and a typed value carries its decoded form.
package fixfield

import "strconv"

// Tag is the positive integer identifying a field on the wire (e.g. 35 = MsgType).
type Tag int

func (t Tag) String() string {
	return strconv.Itoa(int(t))
}
