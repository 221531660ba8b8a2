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

import "io"

// Transport is the byte-duplex connection a session runs over: typically
// a TCP connection, optionally TLS-wrapped, supplied by the host
// application or by fixconn's reconnect loop. The engine only ever reads
// and writes raw bytes and closes the connection; anything
// protocol-shaped happens above this interface.
type Transport interface {
	io.Reader
	io.Writer
	io.Closer
}
