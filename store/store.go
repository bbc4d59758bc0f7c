// Package store persists raw broker records and the per-instrument price
// cache in a local sqlite database. Raw records are content addressed, so
// re-importing an overlapping export is harmless; only unseen rows land.
package store

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	giro "github.com/KoenM-bit/my-giro-tracker"
	"github.com/KoenM-bit/my-giro-tracker/ingest"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps the sqlite database holding raw records and cached prices.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies any
// pending migrations. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// txHash content-addresses a raw transaction row. The order id alone is
// not enough: partial fills share it.
func txHash(r giro.TransactionRecord) string {
	sum := sha1.Sum(fmt.Appendf(nil, "%s|%s|%s|%s|%s|%s|%s|%s",
		r.Date, r.Time, r.Instrument.ISIN, r.Instrument.Name,
		r.Quantity, r.Price.Decimal(), r.Value.Decimal(), r.OrderID))
	return fmt.Sprintf("%x", sum)
}

func cashHash(r giro.CashRecord) string {
	sum := sha1.Sum(fmt.Appendf(nil, "%s|%s|%s|%s",
		r.Date, r.Time, r.Description, r.Amount.Decimal()))
	return fmt.Sprintf("%x", sum)
}

// SaveTransactions inserts raw transaction records under a fresh batch id,
// skipping rows already present. It returns the batch id and the number of
// newly inserted rows.
func (s *Store) SaveTransactions(ctx context.Context, recs []giro.TransactionRecord) (string, int, error) {
	batch := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO raw_transaction
		(hash_id, batch_id, date, time, product, isin, quantity, price, value, fee, currency, order_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range recs {
		res, err := stmt.ExecContext(ctx, txHash(r), batch,
			r.Date, r.Time, r.Instrument.Name, r.Instrument.ISIN,
			r.Quantity.Decimal().String(), r.Price.Decimal().String(),
			r.Value.Decimal().String(), r.Fee.Decimal().String(),
			r.Value.Currency(), r.OrderID)
		if err != nil {
			return "", 0, fmt.Errorf("inserting transaction: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return "", 0, err
	}
	return batch, inserted, nil
}

// SaveCash inserts raw cash-activity records, skipping duplicates.
func (s *Store) SaveCash(ctx context.Context, recs []giro.CashRecord) (string, int, error) {
	batch := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO cash_activity
		(hash_id, batch_id, date, time, description, amount, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range recs {
		res, err := stmt.ExecContext(ctx, cashHash(r), batch,
			r.Date, r.Time, r.Description, r.Amount.Decimal().String(), r.Amount.Currency())
		if err != nil {
			return "", 0, fmt.Errorf("inserting cash activity: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return "", 0, err
	}
	return batch, inserted, nil
}

// Transactions loads all stored raw transaction records. Instruments are
// re-classified from the stored product name, so a classifier fix applies
// retroactively on the next load.
func (s *Store) Transactions(ctx context.Context) ([]giro.TransactionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, time, product, isin, quantity, price, value, fee, currency, order_id
		FROM raw_transaction ORDER BY date, time, hash_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []giro.TransactionRecord
	for rows.Next() {
		var rec giro.TransactionRecord
		var product, isin, qty, price, value, fee, cur string
		if err := rows.Scan(&rec.Date, &rec.Time, &product, &isin, &qty, &price, &value, &fee, &cur, &rec.OrderID); err != nil {
			return nil, err
		}
		rec.Instrument = ingest.Classify(isin, product, cur)
		if rec.Quantity, err = parseQuantity(qty); err != nil {
			return nil, fmt.Errorf("stored quantity %q: %w", qty, err)
		}
		if rec.Price, err = parseMoney(price, cur); err != nil {
			return nil, fmt.Errorf("stored price %q: %w", price, err)
		}
		if rec.Value, err = parseMoney(value, cur); err != nil {
			return nil, fmt.Errorf("stored value %q: %w", value, err)
		}
		if rec.Fee, err = parseMoney(fee, cur); err != nil {
			return nil, fmt.Errorf("stored fee %q: %w", fee, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Cash loads all stored cash-activity records.
func (s *Store) Cash(ctx context.Context) ([]giro.CashRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, time, description, amount, currency
		FROM cash_activity ORDER BY date, time, hash_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []giro.CashRecord
	for rows.Next() {
		var rec giro.CashRecord
		var amount, cur string
		if err := rows.Scan(&rec.Date, &rec.Time, &rec.Description, &amount, &cur); err != nil {
			return nil, err
		}
		if rec.Amount, err = parseMoney(amount, cur); err != nil {
			return nil, fmt.Errorf("stored amount %q: %w", amount, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpsertPrice stores the current price for an instrument, replacing any
// previous entry for the same (isin, product) pair.
func (s *Store) UpsertPrice(ctx context.Context, inst giro.Instrument, price giro.Money, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO price_cache (isin, product, price, currency, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (isin, product) DO UPDATE SET
			price = excluded.price,
			currency = excluded.currency,
			updated_at = excluded.updated_at`,
		inst.ISIN, inst.Name, price.Decimal().String(), price.Currency(), at.UTC().Format(time.RFC3339))
	return err
}

// Prices loads the price cache as a current-price map keyed by instrument
// key.
func (s *Store) Prices(ctx context.Context) (map[string]giro.Money, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT isin, product, price, currency FROM price_cache`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]giro.Money)
	for rows.Next() {
		var isin, product, price, cur string
		if err := rows.Scan(&isin, &product, &price, &cur); err != nil {
			return nil, err
		}
		m, err := parseMoney(price, cur)
		if err != nil {
			return nil, fmt.Errorf("cached price %q: %w", price, err)
		}
		out[giro.Instrument{ISIN: isin, Name: product}.Key()] = m
	}
	return out, rows.Err()
}

func parseQuantity(s string) (giro.Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return giro.Quantity{}, err
	}
	return giro.Q(d), nil
}

func parseMoney(s, cur string) (giro.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return giro.Money{}, err
	}
	return giro.M(d, cur), nil
}
