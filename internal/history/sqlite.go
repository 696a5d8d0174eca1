package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists round records to a local SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := initTables(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			ended_at TIMESTAMP NOT NULL,
			dealer_score TEXT NOT NULL,
			dealer_bust INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating rounds table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS seat_results (
			round_id TEXT NOT NULL REFERENCES rounds(id),
			seat INTEGER NOT NULL,
			player TEXT NOT NULL,
			bet INTEGER NOT NULL,
			reward INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			busted INTEGER NOT NULL,
			PRIMARY KEY (round_id, seat)
		)
	`)
	if err != nil {
		return fmt.Errorf("creating seat_results table: %w", err)
	}
	return nil
}

// SaveRound writes a round and its seat results in one transaction
func (s *SQLiteStore) SaveRound(record *RoundRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO rounds (id, started_at, ended_at, dealer_score, dealer_bust) VALUES (?, ?, ?, ?, ?)`,
		record.RoundID, record.StartedAt, record.EndedAt, record.DealerScore, record.DealerBust,
	)
	if err != nil {
		return fmt.Errorf("inserting round: %w", err)
	}

	for _, seat := range record.Seats {
		_, err = tx.Exec(
			`INSERT INTO seat_results (round_id, seat, player, bet, reward, outcome, busted) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			record.RoundID, seat.Seat, seat.Player, seat.Bet, seat.Reward, seat.Outcome, seat.Busted,
		)
		if err != nil {
			return fmt.Errorf("inserting seat result: %w", err)
		}
	}

	return tx.Commit()
}

// RecentRounds returns up to limit most recent rounds, newest first
func (s *SQLiteStore) RecentRounds(limit int) ([]*RoundRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, dealer_score, dealer_bust FROM rounds ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying rounds: %w", err)
	}
	defer rows.Close()

	var records []*RoundRecord
	for rows.Next() {
		var r RoundRecord
		if err := rows.Scan(&r.RoundID, &r.StartedAt, &r.EndedAt, &r.DealerScore, &r.DealerBust); err != nil {
			return nil, fmt.Errorf("scanning round: %w", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, record := range records {
		if err := s.loadSeats(record); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *SQLiteStore) loadSeats(record *RoundRecord) error {
	rows, err := s.db.Query(
		`SELECT seat, player, bet, reward, outcome, busted FROM seat_results WHERE round_id = ? ORDER BY seat`,
		record.RoundID,
	)
	if err != nil {
		return fmt.Errorf("querying seat results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var seat SeatResult
		if err := rows.Scan(&seat.Seat, &seat.Player, &seat.Bet, &seat.Reward, &seat.Outcome, &seat.Busted); err != nil {
			return fmt.Errorf("scanning seat result: %w", err)
		}
		record.Seats = append(record.Seats, seat)
	}
	return rows.Err()
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
