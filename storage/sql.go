package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS provisions (
	id TEXT PRIMARY KEY,
	agent TEXT NOT NULL,
	agent_id TEXT,
	action TEXT,
	api TEXT,
	model TEXT,
	tools TEXT,
	created_at BIGINT
);
CREATE INDEX IF NOT EXISTS provisions_agent ON provisions (agent);
`

// sqlStorage is the database/sql implementation shared by SQLite and Postgres.
type sqlStorage struct {
	db *sql.DB
	// rebind rewrites "?" placeholders for drivers that number them.
	rebind func(string) string
}

func newSQLStorage(db *sql.DB, rebind func(string) string) (*sqlStorage, error) {
	if rebind == nil {
		rebind = func(q string) string { return q }
	}
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create history schema: %w", err)
		}
	}
	return &sqlStorage{db: db, rebind: rebind}, nil
}

// numberedPlaceholders turns "?" into "$1", "$2", ...
func numberedPlaceholders(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStorage) SaveRecord(ctx context.Context, rec *Record) error {
	tools, err := json.Marshal(rec.Tools)
	if err != nil {
		return fmt.Errorf("failed to marshal record tools: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`
INSERT INTO provisions (id, agent, agent_id, action, api, model, tools, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET agent=excluded.agent, agent_id=excluded.agent_id, action=excluded.action, api=excluded.api, model=excluded.model, tools=excluded.tools, created_at=excluded.created_at
`), rec.ID.String(), rec.Agent, rec.AgentID, rec.Action, rec.API, rec.Model, string(tools), rec.CreatedAt.UnixMilli())
	return err
}

func (s *sqlStorage) GetRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, agent, agent_id, action, api, model, tools, created_at FROM provisions WHERE id=?`), id.String())
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *sqlStorage) ListRecords(ctx context.Context, agent string, limit int) ([]*Record, error) {
	q := `SELECT id, agent, agent_id, action, api, model, tools, created_at FROM provisions`
	var args []any
	if agent != "" {
		q += ` WHERE agent=?`
		args = append(args, agent)
	}
	q += ` ORDER BY created_at DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *sqlStorage) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var id string
	var agentID, action, api, model, tools sql.NullString
	var createdAt int64
	if err := row.Scan(&id, &rec.Agent, &agentID, &action, &api, &model, &tools, &createdAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record id %q: %w", id, err)
	}
	rec.ID = parsed
	rec.AgentID, rec.Action, rec.API, rec.Model = agentID.String, action.String, api.String, model.String
	if tools.Valid && tools.String != "" {
		if err := json.Unmarshal([]byte(tools.String), &rec.Tools); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record tools: %w", err)
		}
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &rec, nil
}
