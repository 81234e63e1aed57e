package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"supplierboard/internal"
)

// DB holds the content-addressed ingest cache and the run log. Ranked
// results are never persisted; only normalized input datasets (keyed by
// the hash of the raw bytes) and operational run metadata live here.
type DB struct {
	conn       *sql.DB
	maxEntries int
}

func Open(path string, maxEntries int) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if maxEntries <= 0 {
		maxEntries = 1
	}
	db := &DB{conn: conn, maxEntries: maxEntries}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS datasets (
  hash TEXT PRIMARY KEY,
  filename TEXT NOT NULL,
  headerRow INTEGER NOT NULL,
  columnsJson TEXT NOT NULL,
  recordsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  lastUsedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  datasetHash TEXT,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// GetDataset returns the cached dataset for a content hash, or nil on a
// miss. A hit refreshes the entry's LRU position.
func (d *DB) GetDataset(hash string) (*internal.Dataset, error) {
	var headerRow int
	var columnsJSON, recordsJSON string
	err := d.conn.QueryRow(`
SELECT headerRow, columnsJson, recordsJson FROM datasets WHERE hash = ?
`, hash).Scan(&headerRow, &columnsJSON, &recordsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ds := internal.Dataset{HeaderRow: headerRow}
	if err := json.Unmarshal([]byte(columnsJSON), &ds.Columns); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(recordsJSON), &ds.Records); err != nil {
		return nil, err
	}

	_, _ = d.conn.Exec(`UPDATE datasets SET lastUsedAt = CURRENT_TIMESTAMP WHERE hash = ?`, hash)
	return &ds, nil
}

// PutDataset stores a normalized dataset under its content hash and
// evicts the least recently used entries beyond the configured bound.
func (d *DB) PutDataset(hash, filename string, ds *internal.Dataset) error {
	columnsJSON, err := json.Marshal(ds.Columns)
	if err != nil {
		return err
	}
	recordsJSON, err := json.Marshal(ds.Records)
	if err != nil {
		return err
	}

	_, err = d.conn.Exec(`
INSERT INTO datasets (hash, filename, headerRow, columnsJson, recordsJson)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(hash) DO UPDATE SET
  filename=excluded.filename,
  headerRow=excluded.headerRow,
  columnsJson=excluded.columnsJson,
  recordsJson=excluded.recordsJson,
  lastUsedAt=CURRENT_TIMESTAMP
`, hash, filename, ds.HeaderRow, string(columnsJSON), string(recordsJSON))
	if err != nil {
		return err
	}

	_, err = d.conn.Exec(`
DELETE FROM datasets WHERE hash NOT IN (
  SELECT hash FROM datasets ORDER BY lastUsedAt DESC, createdAt DESC LIMIT ?
)
`, d.maxEntries)
	return err
}

func (d *DB) CountDatasets() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM datasets`).Scan(&n)
	return n, err
}

func (d *DB) InsertRun(traceID, datasetHash string, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, datasetHash, timingsJson, countsJson) VALUES (?, ?, ?, ?)
`, traceID, datasetHash, string(timingsJSON), string(countsJSON))
	return err
}
