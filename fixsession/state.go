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

package fixsession

// State is the session's position in the logon/heartbeat/logout state
// machine described by the protocol's session engine contract.
type State int

const (
	Disconnected State = iota
	LogonSent
	LoggedOn
	LogoutSent
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case LogonSent:
		return "LogonSent"
	case LoggedOn:
		return "LoggedOn"
	case LogoutSent:
		return "LogoutSent"
	default:
		return "Invalid"
	}
}
