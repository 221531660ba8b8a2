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

const (
	createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	request_type TEXT NOT NULL,
	data_types TEXT NOT NULL,
	depth INTEGER,
	md_req_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

	createTradesTable = `
CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	price TEXT NOT NULL,
	size TEXT NOT NULL,
	aggressor_side TEXT,
	trade_time TEXT NOT NULL,
	seq_num INTEGER NOT NULL,
	md_req_id TEXT NOT NULL,
	is_snapshot BOOLEAN NOT NULL,
	recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);`

	createOrderBookTable = `
CREATE TABLE IF NOT EXISTS order_book_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	price TEXT NOT NULL,
	size TEXT NOT NULL,
	position INTEGER NOT NULL,
	seq_num INTEGER NOT NULL,
	md_req_id TEXT NOT NULL,
	is_snapshot BOOLEAN NOT NULL,
	recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orderbook_symbol ON order_book_entries(symbol);`

	createOHLCVTable = `
CREATE TABLE IF NOT EXISTS ohlcv_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	data_type TEXT NOT NULL,
	value TEXT NOT NULL,
	entry_time TEXT NOT NULL,
	seq_num INTEGER NOT NULL,
	md_req_id TEXT NOT NULL,
	recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ohlcv_symbol ON ohlcv_entries(symbol);`

	createOrderHistoryTable = `
CREATE TABLE IF NOT EXISTS order_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cl_ord_id TEXT NOT NULL UNIQUE,
	orig_cl_ord_id TEXT,
	order_id TEXT,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	ord_type TEXT NOT NULL,
	ord_status TEXT NOT NULL,
	order_qty TEXT,
	price TEXT,
	cum_qty TEXT,
	leaves_qty TEXT,
	avg_px TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_order_history_cl_ord_id ON order_history(cl_ord_id);
CREATE INDEX IF NOT EXISTS idx_order_history_order_id ON order_history(order_id);`

	insertSessionQuery = `INSERT INTO sessions (session_id, symbol, request_type, data_types, depth, md_req_id) VALUES (?, ?, ?, ?, ?, ?)`

	insertTradeQuery = `INSERT INTO trades (symbol, price, size, aggressor_side, trade_time, seq_num, md_req_id, is_snapshot) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	insertOrderBookQuery = `INSERT INTO order_book_entries (symbol, side, price, size, position, seq_num, md_req_id, is_snapshot) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	insertOHLCVQuery = `INSERT INTO ohlcv_entries (symbol, data_type, value, entry_time, seq_num, md_req_id) VALUES (?, ?, ?, ?, ?, ?)`

	upsertOrderHistoryQuery = `
INSERT INTO order_history (cl_ord_id, orig_cl_ord_id, order_id, symbol, side, ord_type, ord_status, order_qty, price, cum_qty, leaves_qty, avg_px, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(cl_ord_id) DO UPDATE SET
	order_id = excluded.order_id,
	ord_status = excluded.ord_status,
	cum_qty = excluded.cum_qty,
	leaves_qty = excluded.leaves_qty,
	avg_px = excluded.avg_px,
	updated_at = CURRENT_TIMESTAMP`

	selectOrderHistoryQuery = `SELECT cl_ord_id, orig_cl_ord_id, order_id, symbol, side, ord_type, ord_status, order_qty, price, cum_qty, leaves_qty, avg_px FROM order_history WHERE cl_ord_id = ?`

	selectOpenOrdersQuery = `SELECT cl_ord_id, orig_cl_ord_id, order_id, symbol, side, ord_type, ord_status, order_qty, price, cum_qty, leaves_qty, avg_px FROM order_history WHERE ord_status NOT IN ('2', '4', '8', 'C') ORDER BY updated_at DESC`
)

// initSchema creates every table and index this package uses, each
// statement idempotent so repeated startups against the same file are
// safe.
func (mdb *MarketDataDb) initSchema() error {
	for _, stmt := range []string{createSessionsTable, createTradesTable, createOrderBookTable, createOHLCVTable} {
		if _, err := mdb.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
