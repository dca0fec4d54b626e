package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/etnz/networth"
	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLiteStore keeps the ledger in a SQLite database.
//
// Amounts are stored as text to keep their exact decimal value. Several
// entries may share a date and asset, as in the file format; rows keep their
// insertion order.
type SQLiteStore struct{ db *sql.DB }

func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLiteStore{db: db}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS entries(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL, investment TEXT NOT NULL, amount TEXT NOT NULL, rate REAL NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("could not create entries table: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS entries_key ON entries(date, investment)`)
	if err != nil {
		return fmt.Errorf("could not create entries index: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]networth.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date,investment,amount,rate FROM entries ORDER BY date, investment, id`)
	if err != nil {
		return nil, fmt.Errorf("could not query entries: %w", err)
	}
	defer rows.Close()
	out := []networth.Entry{}
	for rows.Next() {
		var (
			e      networth.Entry
			amount string
			rate   float64
		)
		if err := rows.Scan(&e.Date, &e.Asset, &amount, &rate); err != nil {
			return nil, fmt.Errorf("could not read entry: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid amount %q for %s/%s: %w", amount, e.Date, e.Asset, err)
		}
		e.Rate = networth.Percent(rate)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, entries []networth.Entry) error {
	if err := validate(entries...); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
			return err
		}
		for _, e := range entries {
			if err := insert(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Upsert(ctx context.Context, e networth.Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE date=? AND investment=?`, e.Date, e.Asset); err != nil {
			return err
		}
		return insert(ctx, tx, e)
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, on, asset string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE date=? AND investment=?`, on, asset)
	if err != nil {
		return 0, fmt.Errorf("could not delete %s/%s: %w", on, asset, err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func insert(ctx context.Context, tx *sql.Tx, e networth.Entry) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO entries(date,investment,amount,rate) VALUES(?,?,?,?)`,
		e.Date, e.Asset, e.Amount.String(), float64(e.Rate))
	if err != nil {
		return fmt.Errorf("could not insert %s: %w", e.Key(), err)
	}
	return nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
