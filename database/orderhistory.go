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

package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OrderHistoryRecord is one order's persisted state. Unlike FIX session
// sequence numbers, which reset with every fresh Logon, order lifecycle
// survives across process restarts — a fill that landed while the
// harness was down must still show up the next time it starts.
type OrderHistoryRecord struct {
	ClOrdID     string
	OrigClOrdID string
	OrderID     string
	Symbol      string
	Side        string
	OrdType     string
	OrdStatus   string
	OrderQty    string
	Price       string
	CumQty      string
	LeavesQty   string
	AvgPx       string
}

// OrderHistoryDb provides SQLite persistence for order lifecycle state,
// independent of MarketDataDb so a harness can run order entry without
// paying for market-data schema or vice versa.
type OrderHistoryDb struct {
	db *sql.DB

	stmtUpsert *sql.Stmt
}

func NewOrderHistoryDb(dbPath string) (*OrderHistoryDb, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	odb := &OrderHistoryDb{db: db}
	if _, err := db.Exec(createOrderHistoryTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize order history schema: %w", err)
	}
	if odb.stmtUpsert, err = db.Prepare(upsertOrderHistoryQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare upsert statement: %w", err)
	}
	return odb, nil
}

func (odb *OrderHistoryDb) Close() error {
	if odb.stmtUpsert != nil {
		_ = odb.stmtUpsert.Close()
	}
	return odb.db.Close()
}

// Upsert records an order's current state, keyed by ClOrdID. Re-sending
// the same ClOrdID (e.g. after an ExecutionReport update) overwrites the
// mutable fields in place rather than appending a new row.
func (odb *OrderHistoryDb) Upsert(rec OrderHistoryRecord) error {
	_, err := odb.stmtUpsert.Exec(
		rec.ClOrdID, rec.OrigClOrdID, rec.OrderID, rec.Symbol, rec.Side,
		rec.OrdType, rec.OrdStatus, rec.OrderQty, rec.Price, rec.CumQty,
		rec.LeavesQty, rec.AvgPx,
	)
	return err
}

// Get returns the persisted record for clOrdID, or ok=false if none exists.
func (odb *OrderHistoryDb) Get(clOrdID string) (rec OrderHistoryRecord, ok bool, err error) {
	row := odb.db.QueryRow(selectOrderHistoryQuery, clOrdID)
	if scanErr := scanOrderHistoryRow(row, &rec); scanErr != nil {
		if scanErr == sql.ErrNoRows {
			return OrderHistoryRecord{}, false, nil
		}
		return OrderHistoryRecord{}, false, scanErr
	}
	return rec, true, nil
}

// ListOpen returns every order whose OrdStatus is not a terminal state
// (Filled, Canceled, Rejected, Expired), most recently updated first —
// the set a harness restarting mid-session needs to reconcile against
// OrderStatusRequest responses.
func (odb *OrderHistoryDb) ListOpen() ([]OrderHistoryRecord, error) {
	rows, err := odb.db.Query(selectOpenOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderHistoryRecord
	for rows.Next() {
		var rec OrderHistoryRecord
		if err := scanOrderHistoryRow(rows, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrderHistoryRow(row rowScanner, rec *OrderHistoryRecord) error {
	var origClOrdID, orderID, orderQty, price, cumQty, leavesQty, avgPx sql.NullString
	if err := row.Scan(
		&rec.ClOrdID, &origClOrdID, &orderID, &rec.Symbol, &rec.Side,
		&rec.OrdType, &rec.OrdStatus, &orderQty, &price, &cumQty, &leavesQty, &avgPx,
	); err != nil {
		return err
	}
	rec.OrigClOrdID = origClOrdID.String
	rec.OrderID = orderID.String
	rec.OrderQty = orderQty.String
	rec.Price = price.String
	rec.CumQty = cumQty.String
	rec.LeavesQty = leavesQty.String
	rec.AvgPx = avgPx.String
	return nil
}
