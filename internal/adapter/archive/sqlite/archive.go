package sqlitearchive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"voidwake/internal/app/ports"
	"voidwake/internal/domain/ship"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_archive (
  game_id     TEXT PRIMARY KEY,
  verdict     TEXT NOT NULL,
  cycles      INTEGER NOT NULL,
  archived_at TIMESTAMP NOT NULL,
  snapshot    BLOB NOT NULL
);`

// Archiver writes decided games to a local sqlite file, snapshot compressed
// with zstd. The archive is append-only cold storage; the live repository
// keeps serving the row until the process exits.
type Archiver struct {
	db      *sql.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	Now     func() time.Time
}

func Open(path string) (*Archiver, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init zstd decoder: %w", err)
	}
	return &Archiver{db: db, encoder: encoder, decoder: decoder, Now: time.Now}, nil
}

func (a *Archiver) ArchiveGame(ctx context.Context, s *ship.Ship, verdict ship.Verdict) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	compressed := a.encoder.EncodeAll(raw, nil)

	_, err = a.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO game_archive (game_id, verdict, cycles, archived_at, snapshot) VALUES (?, ?, ?, ?, ?)`,
		s.ID, string(verdict), s.Cycle, a.Now().UTC(), compressed)
	if err != nil {
		return fmt.Errorf("insert archive row: %w", err)
	}
	return nil
}

// Lookup restores an archived game and its verdict.
func (a *Archiver) Lookup(ctx context.Context, gameID string) (*ship.Ship, ship.Verdict, error) {
	var verdict string
	var blob []byte
	err := a.db.QueryRowContext(ctx,
		`SELECT verdict, snapshot FROM game_archive WHERE game_id = ?`, gameID).
		Scan(&verdict, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ports.ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}

	raw, err := a.decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, "", fmt.Errorf("decompress snapshot: %w", err)
	}
	var s ship.Ship
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, "", fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, ship.Verdict(verdict), nil
}

func (a *Archiver) Close() error {
	a.encoder.Close()
	a.decoder.Close()
	return a.db.Close()
}
