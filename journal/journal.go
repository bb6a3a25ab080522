// Package journal records data-provider fetches for observability: one row
// per fetch with the symbol, range, bar count, source, and timing. It is
// metadata only, never a price store.
package journal

import "time"

// FetchRecord describes a single provider fetch.
type FetchRecord struct {
	ID        string        // time-sortable ULID
	Symbol    string
	Start     time.Time
	End       time.Time
	Bars      int
	Source    string // provider name, e.g. "yahoo"
	Duration  time.Duration
	FetchedAt time.Time
}

// Journal persists fetch records.
type Journal interface {
	RecordFetch(rec FetchRecord) error

	// RecentFetches returns up to limit records, newest first.
	RecentFetches(limit int) ([]FetchRecord, error)

	Close() error
}

// Noop discards all records. Used when journaling is disabled.
type Noop struct{}

func (Noop) RecordFetch(FetchRecord) error            { return nil }
func (Noop) RecentFetches(int) ([]FetchRecord, error) { return nil, nil }
func (Noop) Close() error                             { return nil }
