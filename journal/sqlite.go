package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordFetch(rec FetchRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fetches
		(id, symbol, start_date, end_date, bars, source, duration_ms, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Symbol, rec.Start, rec.End, rec.Bars,
		rec.Source, rec.Duration.Milliseconds(), rec.FetchedAt,
	)
	return err
}

func (j *SQLite) RecentFetches(limit int) ([]FetchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(`
		SELECT id, symbol, start_date, end_date, bars, source, duration_ms, fetched_at
		FROM fetches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []FetchRecord
	for rows.Next() {
		var rec FetchRecord
		var durationMS int64
		if err := rows.Scan(&rec.ID, &rec.Symbol, &rec.Start, &rec.End,
			&rec.Bars, &rec.Source, &durationMS, &rec.FetchedAt); err != nil {
			return nil, err
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
