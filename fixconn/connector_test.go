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

package fixconn_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixconn"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
	"github.com/rs/zerolog"
)

func TestConnectorRetriesThenSucceeds(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	v, _ := fixfield.ParseVersion("FIX.4.4")
	cfg := fixsession.Config{
		SessionID:    "retry",
		Version:      v,
		SenderCompID: "CLIENT",
		TargetCompID: "VENUE",
		HeartBtInt:   30,
		Registry:     registry,
		Groups:       fixcodec.DefaultGroups(),
		Logger:       zerolog.Nop(),
	}

	var attempts int32
	errFailed := errors.New("dial refused")

	dial := func(ctx context.Context) (fixsession.Transport, string, error) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return nil, "", errFailed
		}
		clientConn, peerConn := net.Pipe()
		go func() {
			frame := fixcodec.NewFrame(peerConn)
			if _, err := frame.ReadMessage(context.Background()); err != nil {
				return
			}
			ackRegistry := registry
			logonAck := fixcodec.NewMessage()
			add := func(tag fixfield.Tag, raw string) {
				f, _ := ackRegistry.DecodeField(tag, raw)
				logonAck.Header.Add(f)
			}
			add(8, "FIX.4.4")
			add(35, "A")
			add(34, "1")
			add(49, "VENUE")
			add(56, "CLIENT")
			add(52, "20250615-00:00:00")
			ackField, _ := ackRegistry.DecodeField(98, "0")
			logonAck.Body.Add(ackField)
			hbField, _ := ackRegistry.DecodeField(108, "30")
			logonAck.Body.Add(hbField)
			raw, err := fixcodec.Encode(ackRegistry, logonAck)
			if err != nil {
				return
			}
			_, _ = peerConn.Write(raw)
		}()
		return clientConn, "127.0.0.1:0", nil
	}

	events := make([]fixconn.Event, 0, 8)
	connector := fixconn.New(dial, cfg,
		fixconn.WithRetryBounds(time.Millisecond, 5*time.Millisecond),
		fixconn.WithEventSink(func(e fixconn.Event) { events = append(events, e) }),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	connected := make(chan struct{})
	go func() {
		_ = connector.Run(ctx, func(pipe *fixsession.Pipe) {
			close(connected)
			<-pipe.Messages()
		})
	}()

	select {
	case <-connected:
	case <-ctx.Done():
		t.Fatalf("connector never reached a connected session, attempts=%d", atomic.LoadInt32(&attempts))
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected exactly 3 dial attempts before success, got %d", got)
	}

	var sawConnected bool
	for _, e := range events {
		if e.Kind == fixconn.Connected {
			sawConnected = true
		}
	}
	if !sawConnected {
		t.Fatalf("expected a Connected event, got %v", events)
	}
}

func TestConnectorStopsOnClose(t *testing.T) {
	registry := fixfield.Default()
	registry.Seal()
	v, _ := fixfield.ParseVersion("FIX.4.4")
	cfg := fixsession.Config{
		SessionID: "stop", Version: v, SenderCompID: "C", TargetCompID: "V",
		HeartBtInt: 30, Registry: registry, Groups: fixcodec.DefaultGroups(), Logger: zerolog.Nop(),
	}

	dial := func(ctx context.Context) (fixsession.Transport, string, error) {
		return nil, "", errors.New("always fails")
	}

	connector := fixconn.New(dial, cfg, fixconn.WithRetryBounds(time.Millisecond, 2*time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- connector.Run(context.Background(), func(*fixsession.Pipe) {}) }()

	time.Sleep(10 * time.Millisecond)
	connector.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on Close-driven shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Close")
	}
}
