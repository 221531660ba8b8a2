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

// Package venues defines the boundary between the core FIX engine and
// counterparty-specific glue: logon signing, custom tag registration,
// and any other field a given venue expects that the protocol itself
// does not mandate. None of this belongs in fixsession or builder,
// which stay venue-agnostic.
package venues

import (
	"time"

	"github.com/gurre/prime-fix-md-go/fixfield"
)

// Config carries the credentials and identifiers an Adapter needs to
// sign a Logon and populate venue-specific fields. Not every field is
// meaningful to every venue; unused ones are left zero.
type Config struct {
	APIKey       string
	APISecret    string
	Passphrase   string
	SenderCompID string
	TargetCompID string
	PortfolioID  string
}

// Adapter supplies the venue-specific pieces of a session: the custom
// tags it expects the registry to know about, and the extra Logon
// fields (signature, API key, passphrase, ...) that authenticate the
// session. Everything else — framing, sequencing, heartbeats — is
// identical across venues and lives in fixsession.
type Adapter interface {
	Name() string
	RegisterFields(*fixfield.Registry)
	LogonFields(cfg Config, now time.Time) []fixfield.Field
}
