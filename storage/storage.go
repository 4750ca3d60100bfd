// Package storage keeps a local history of agent provisioning runs.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/awantoch/foundryflow/config"
	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/utils"
)

// ErrNotFound is returned by GetRecord for an unknown id.
var ErrNotFound = errors.New("record not found")

// Record is the outcome of one agent upsert.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Agent     string    `json:"agent"`
	AgentID   string    `json:"agent_id"`
	Action    string    `json:"action"`
	API       string    `json:"api"`
	Model     string    `json:"model"`
	Tools     []string  `json:"tools"`
	CreatedAt time.Time `json:"created_at"`
}

type Storage interface {
	SaveRecord(ctx context.Context, rec *Record) error
	GetRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	// ListRecords returns the newest records first; an empty agent matches every agent and
	// limit <= 0 means no limit.
	ListRecords(ctx context.Context, agent string, limit int) ([]*Record, error)
	Close() error
}

// New opens the store cfg selects. An empty driver means SQLite at the default path.
func New(cfg config.HistoryConfig) (Storage, error) {
	switch cfg.Driver {
	case "", constants.HistoryDriverSqlite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = constants.DefaultHistoryDSN
		}
		return NewSqliteStorage(dsn)
	case constants.HistoryDriverPostgres:
		if cfg.DSN == "" {
			return nil, utils.Errorf("postgres history requires a dsn")
		}
		return NewPostgresStorage(cfg.DSN)
	case constants.HistoryDriverMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, utils.Errorf("unsupported history driver: %s", cfg.Driver)
	}
}
