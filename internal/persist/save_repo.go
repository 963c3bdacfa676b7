package persist

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

type SaveRow struct {
	Slot      string
	Data      []byte
	Checksum  []byte
	UpdatedAt time.Time
}

type SaveInfo struct {
	Slot      string
	UpdatedAt time.Time
}

// SaveStore keeps one row per save slot. Load returns (nil, nil) for an
// unknown slot; Delete of an unknown slot is not an error.
type SaveStore interface {
	Save(ctx context.Context, row *SaveRow) error
	Load(ctx context.Context, slot string) (*SaveRow, error)
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]SaveInfo, error)
	Close() error
}

// PGSaveRepo is the PostgreSQL SaveStore.
type PGSaveRepo struct {
	db *DB
}

func NewPGSaveRepo(db *DB) *PGSaveRepo {
	return &PGSaveRepo{db: db}
}

func (r *PGSaveRepo) Save(ctx context.Context, row *SaveRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO saves (slot, data, checksum, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (slot) DO UPDATE
		 SET data = EXCLUDED.data, checksum = EXCLUDED.checksum, updated_at = EXCLUDED.updated_at`,
		row.Slot, row.Data, row.Checksum, row.UpdatedAt,
	)
	return err
}

func (r *PGSaveRepo) Load(ctx context.Context, slot string) (*SaveRow, error) {
	row := &SaveRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT slot, data, checksum, updated_at FROM saves WHERE slot = $1`, slot,
	).Scan(&row.Slot, &row.Data, &row.Checksum, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *PGSaveRepo) Delete(ctx context.Context, slot string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM saves WHERE slot = $1`, slot)
	return err
}

func (r *PGSaveRepo) List(ctx context.Context) ([]SaveInfo, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT slot, updated_at FROM saves ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var s SaveInfo
		if err := rows.Scan(&s.Slot, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGSaveRepo) Close() error {
	r.db.Close()
	return nil
}

// SQLiteSaveRepo is the SQLite SaveStore. Timestamps are stored as unix
// milliseconds.
type SQLiteSaveRepo struct {
	db *sql.DB
}

func NewSQLiteSaveRepo(db *sql.DB) *SQLiteSaveRepo {
	return &SQLiteSaveRepo{db: db}
}

func (r *SQLiteSaveRepo) Save(ctx context.Context, row *SaveRow) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saves (slot, data, checksum, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (slot) DO UPDATE
		 SET data = excluded.data, checksum = excluded.checksum, updated_at = excluded.updated_at`,
		row.Slot, row.Data, row.Checksum, row.UpdatedAt.UnixMilli(),
	)
	return err
}

func (r *SQLiteSaveRepo) Load(ctx context.Context, slot string) (*SaveRow, error) {
	row := &SaveRow{}
	var updated int64
	err := r.db.QueryRowContext(ctx,
		`SELECT slot, data, checksum, updated_at FROM saves WHERE slot = ?`, slot,
	).Scan(&row.Slot, &row.Data, &row.Checksum, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.UpdatedAt = time.UnixMilli(updated)
	return row, nil
}

func (r *SQLiteSaveRepo) Delete(ctx context.Context, slot string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	return err
}

func (r *SQLiteSaveRepo) List(ctx context.Context) ([]SaveInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slot, updated_at FROM saves ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var s SaveInfo
		var updated int64
		if err := rows.Scan(&s.Slot, &updated); err != nil {
			return nil, err
		}
		s.UpdatedAt = time.UnixMilli(updated)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteSaveRepo) Close() error {
	return r.db.Close()
}
