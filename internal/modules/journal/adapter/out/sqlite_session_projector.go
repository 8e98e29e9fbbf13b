package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quill/internal/modules/journal/domain"
	journalout "quill/internal/modules/journal/port/out"
	"quill/internal/platform/civil"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteSessionProjector mirrors the session log into a queryable table. The
// JSON document stays the source of truth; Reindex rebuilds the table.
type SQLiteSessionProjector struct {
	db *sql.DB
}

func NewSQLiteSessionProjector(dbPath string) (*SQLiteSessionProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteSessionProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ journalout.SessionProjector = (*SQLiteSessionProjector)(nil)

func (s *SQLiteSessionProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT,
  count INTEGER NOT NULL,
  count_unit TEXT NOT NULL,
  target_unit TEXT,
  target_value INTEGER NOT NULL,
  active_minutes INTEGER NOT NULL,
  status TEXT NOT NULL,
  files TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_date ON sessions(date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Close() error {
	return s.db.Close()
}

func (s *SQLiteSessionProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) UpsertSession(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, date, started_at, ended_at, count, count_unit, target_unit, target_value, active_minutes, status, files)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  date=excluded.date,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  count=excluded.count,
  count_unit=excluded.count_unit,
  target_unit=excluded.target_unit,
  target_value=excluded.target_value,
  active_minutes=excluded.active_minutes,
  status=excluded.status,
  files=excluded.files;
`
	files, err := json.Marshal(session.Files)
	if err != nil {
		return fmt.Errorf("encode session files: %w", err)
	}
	var endedAt sql.NullString
	if session.EndedAt != nil {
		endedAt = sql.NullString{String: session.EndedAt.Format(timeLayout), Valid: true}
	}
	_, err = s.db.ExecContext(ctx, stmt,
		session.ID,
		session.Date.String(),
		session.StartedAt.Format(timeLayout),
		endedAt,
		session.Count,
		string(session.CountUnit),
		string(session.TargetUnit),
		session.TargetValue,
		session.ActiveMinutes,
		string(session.Status),
		string(files),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// ListBetween returns sessions dated within [from, to], newest first. A zero
// bound is open.
func (s *SQLiteSessionProjector) ListBetween(ctx context.Context, from, to civil.Date) ([]domain.Session, error) {
	const query = `
SELECT id, date, started_at, ended_at, count, count_unit, target_unit, target_value, active_minutes, status, files
FROM sessions
WHERE (? = '' OR date >= ?) AND (? = '' OR date <= ?)
ORDER BY started_at DESC;
`
	lo, hi := from.String(), to.String()
	rows, err := s.db.QueryContext(ctx, query, lo, lo, hi, hi)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.Session{}
	for rows.Next() {
		var (
			session             domain.Session
			date, started, unit string
			targetUnit, status  string
			files               string
			ended               sql.NullString
		)
		if err := rows.Scan(&session.ID, &date, &started, &ended, &session.Count, &unit, &targetUnit,
			&session.TargetValue, &session.ActiveMinutes, &status, &files); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if session.Date, err = civil.Parse(date); err != nil {
			return nil, err
		}
		if session.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if ended.Valid {
			endedAt, err := time.Parse(timeLayout, ended.String)
			if err != nil {
				return nil, fmt.Errorf("parse ended_at: %w", err)
			}
			session.EndedAt = &endedAt
		}
		if err := json.Unmarshal([]byte(files), &session.Files); err != nil {
			return nil, fmt.Errorf("decode session files: %w", err)
		}
		session.CountUnit = domain.Unit(unit)
		session.TargetUnit = domain.Unit(targetUnit)
		session.Status = domain.Status(status)
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}
