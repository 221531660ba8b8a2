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

package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gurre/prime-fix-md-go/database"
	"github.com/gurre/prime-fix-md-go/fixclient"
	"github.com/gurre/prime-fix-md-go/fixcodec"
	"github.com/gurre/prime-fix-md-go/fixconn"
	"github.com/gurre/prime-fix-md-go/fixfield"
	"github.com/gurre/prime-fix-md-go/fixsession"
	"github.com/gurre/prime-fix-md-go/venues"
	"github.com/gurre/prime-fix-md-go/venues/coinbaseprime"
	"github.com/gurre/prime-fix-md-go/venues/coinbasepro"
	"github.com/gurre/prime-fix-md-go/venues/deribit"
	"github.com/gurre/prime-fix-md-go/venues/ftx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newConnectCmd() *cobra.Command {
	var credsPath string
	var verbose bool
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Open a FIX session against the configured venue and start the REPL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if credsPath == "" {
				return configErrorf("--creds is required")
			}
			return runConnect(credsPath, verbose, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&credsPath, "creds", "", "path to the JSON credentials file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug/trace session traffic")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

func lookupAdapter(name string) (venues.Adapter, error) {
	switch name {
	case "coinbaseprime":
		return coinbaseprime.New(), nil
	case "coinbasepro":
		return coinbasepro.New(), nil
	case "deribit":
		return deribit.New(), nil
	case "ftx":
		return ftx.New(), nil
	default:
		return nil, configErrorf("fixmd: unknown venue %q (want coinbaseprime, coinbasepro, deribit, or ftx)", name)
	}
}

func runConnect(credsPath string, verbose bool, metricsAddr string) error {
	creds, err := loadCredentials(credsPath)
	if err != nil {
		return configErrorf("%w", err)
	}

	adapter, err := lookupAdapter(creds.Venue)
	if err != nil {
		return err
	}

	registry := fixfield.Default()
	adapter.RegisterFields(registry)
	registry.Seal()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.TraceLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	venueCfg := venues.Config{
		APIKey:       creds.APIKey,
		APISecret:    creds.APISecret,
		Passphrase:   creds.Passphrase,
		SenderCompID: creds.SenderCompID,
		TargetCompID: creds.TargetCompID,
		PortfolioID:  creds.PortfolioID,
	}

	version, err := fixfield.ParseVersion("FIX.4.4")
	if err != nil {
		return configErrorf("%w", err)
	}

	sessionCfg := fixsession.Config{
		SessionID:        creds.SenderCompID + "->" + creds.TargetCompID,
		Version:          version,
		SenderCompID:     creds.SenderCompID,
		TargetCompID:     creds.TargetCompID,
		HeartBtInt:       creds.HeartBtInt,
		ResetSeqNumFlag:  creds.ResetSeqNumFlag,
		ExtraLogonFields: adapter.LogonFields(venueCfg, time.Now()),
		Registry:         registry,
		Groups:           fixcodec.DefaultGroups(),
		Logger:           logger,
	}

	var marketDb *database.MarketDataDb
	if creds.DbPath != "" {
		marketDb, err = database.NewMarketDataDb(creds.DbPath)
		if err != nil {
			return authErrorf("fixmd: opening market data database: %s", err)
		}
		defer marketDb.Close()
	}
	var orderDb *database.OrderHistoryDb
	if creds.OrderDbPath != "" {
		orderDb, err = database.NewOrderHistoryDb(creds.OrderDbPath)
		if err != nil {
			return authErrorf("fixmd: opening order history database: %s", err)
		}
		defer orderDb.Close()
	}

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", creds.Host, creds.Port)
	dial := func(ctx context.Context) (fixsession.Transport, string, error) {
		d := net.Dialer{Timeout: 10 * time.Second}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, addr, err
		}
		if creds.UseTLS {
			conn = tls.Client(conn, &tls.Config{ServerName: creds.Host})
		}
		return conn, addr, nil
	}

	appCfg := fixclient.NewConfig(creds.SenderCompID, creds.TargetCompID, creds.PortfolioID)
	app := fixclient.NewFixApp(appCfg, registry, marketDb, orderDb)

	connector := fixconn.New(dial, sessionCfg, fixconn.WithEventSink(func(ev fixconn.Event) {
		logger.Info().Msg(ev.Status())
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		connector.Close()
	}()

	runErr := connector.Run(ctx, func(pipe *fixsession.Pipe) {
		app.Attach(pipe)
		runDone := make(chan struct{})
		go func() {
			app.Run()
			close(runDone)
		}()

		fixclient.Repl(app)

		_ = pipe.Close()
		<-runDone
		app.Detach(pipe.Err())
		if app.ShouldExit() {
			connector.Close()
		}
	})
	if runErr != nil && runErr != context.Canceled {
		return authErrorf("fixmd: session failed: %s", runErr)
	}
	return nil
}
