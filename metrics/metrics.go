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

// Package metrics exposes the process-wide Prometheus collectors the
// session engine and connector update as they run. Nothing here is
// session-specific: every session shares the same vectors, labeled by
// session id, so a single process running several venue connections
// scrapes as one /metrics endpoint.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	MessagesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fixmd",
		Subsystem: "session",
		Name:      "messages_sent_total",
		Help:      "Messages sent on a FIX session, labeled by session id and MsgType.",
	}, []string{"session", "msg_type"})

	MessagesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fixmd",
		Subsystem: "session",
		Name:      "messages_received_total",
		Help:      "Messages received on a FIX session, labeled by session id and MsgType.",
	}, []string{"session", "msg_type"})

	ResendEntriesServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fixmd",
		Subsystem: "session",
		Name:      "resend_entries_served_total",
		Help:      "Application messages replayed from history in response to a ResendRequest.",
	}, []string{"session"})

	SequenceResets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fixmd",
		Subsystem: "session",
		Name:      "sequence_resets_total",
		Help:      "SequenceReset messages sent, labeled by whether they were a Reset or a GapFill.",
	}, []string{"session", "kind"})

	Reconnects = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fixmd",
		Subsystem: "connector",
		Name:      "reconnects_total",
		Help:      "Reconnect attempts made by the persistent connector, labeled by session id.",
	}, []string{"session"})

	SessionState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fixmd",
		Subsystem: "session",
		Name:      "state",
		Help:      "Current session state as an integer (0=Disconnected,1=LogonSent,2=LoggedOn,3=LogoutSent).",
	}, []string{"session"})
)

func init() {
	prometheus.MustRegister(
		MessagesSent,
		MessagesReceived,
		ResendEntriesServed,
		SequenceResets,
		Reconnects,
		SessionState,
	)
}
