package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/finanza/internal/models"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Migrations returns the schema migration statements. Each string is a
// single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Amounts are stored as decimal strings, never floats, so sums
		// are drift-free regardless of history length.
		`CREATE TABLE IF NOT EXISTS transactions (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			amount   TEXT NOT NULL,
			category TEXT NOT NULL,
			note     TEXT NOT NULL DEFAULT '',
			date     INTEGER NOT NULL,
			type     TEXT NOT NULL CHECK (type IN ('INCOME', 'EXPENSE'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(type)`,
	}
}

// SQLiteStore is the sqlite-backed implementation of Store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the database at dbPath and
// applies the schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// sqlite allows a single writer; one pooled connection avoids
	// SQLITE_BUSY under concurrent mutations.
	db.SetMaxOpenConns(1)

	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply migration: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListAll returns every transaction ordered ascending by date. Ties on date
// break by id so the order is stable across reads.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, category, note, date, type
		FROM transactions
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// Get returns the transaction with the given id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, amount, category, note, date, type
		FROM transactions WHERE id = ?
	`, id)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return models.Transaction{}, fmt.Errorf("transaction %d not found", id)
	}
	return tx, err
}

// Insert stores a transaction, replacing on id conflict. An id of 0 lets
// sqlite assign the next identity.
func (s *SQLiteStore) Insert(ctx context.Context, tx models.Transaction) (int64, error) {
	if tx.ID == 0 {
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO transactions (amount, category, note, date, type)
			VALUES (?, ?, ?, ?, ?)
		`, tx.Amount.String(), tx.Category, tx.Note, tx.Date, string(tx.Type))
		if err != nil {
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
		return res.LastInsertId()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO transactions (id, amount, category, note, date, type)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tx.ID, tx.Amount.String(), tx.Category, tx.Note, tx.Date, string(tx.Type))
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return tx.ID, nil
}

// Update replaces the full record with the given id.
func (s *SQLiteStore) Update(ctx context.Context, tx models.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, category = ?, note = ?, date = ?, type = ?
		WHERE id = ?
	`, tx.Amount.String(), tx.Category, tx.Note, tx.Date, string(tx.Type), tx.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d not found", tx.ID)
	}
	return nil
}

// Delete removes the transaction with the given id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// DeleteAll removes every transaction.
func (s *SQLiteStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions`)
	if err != nil {
		return fmt.Errorf("delete all transactions: %w", err)
	}
	return nil
}

// SumByType sums amounts over all transactions of the given type. Amounts
// are decimal strings, so summation happens here rather than in SQL.
func (s *SQLiteStore) SumByType(ctx context.Context, txType models.TransactionType) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT amount FROM transactions WHERE type = ?
	`, string(txType))
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum by type: %w", err)
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("scan amount: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("stored amount %q: %w", raw, err)
		}
		sum = sum.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("sum by type: %w", err)
	}
	return sum, nil
}

// ReplaceAll atomically replaces the entire stored set inside a single
// database transaction: either the whole new set is visible or the old one
// is. Incoming ids are ignored and reassigned.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, txs []models.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, tx := range txs {
		if _, err := dbTx.ExecContext(ctx, `
			INSERT INTO transactions (amount, category, note, date, type)
			VALUES (?, ?, ?, ?, ?)
		`, tx.Amount.String(), tx.Category, tx.Note, tx.Date, string(tx.Type)); err != nil {
			return fmt.Errorf("insert imported transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanTransaction.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		tx     models.Transaction
		amount string
		txType string
	)
	if err := row.Scan(&tx.ID, &amount, &tx.Category, &tx.Note, &tx.Date, &txType); err != nil {
		if err == sql.ErrNoRows {
			return models.Transaction{}, err
		}
		return models.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("stored amount %q: %w", amount, err)
	}
	tx.Amount = dec
	tx.Type = models.TransactionType(txType)
	return tx, nil
}
