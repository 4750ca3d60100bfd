// Package event publishes provisioning notifications for other processes to react to.
package event

import (
	"context"
	"fmt"

	"github.com/awantoch/foundryflow/config"
	"github.com/awantoch/foundryflow/constants"
)

// TopicAgentProvisioned carries one storage.Record per agent upsert.
const TopicAgentProvisioned = "agent.provisioned"

type EventBus interface {
	Publish(topic string, payload any) error
	Subscribe(ctx context.Context, topic string, handler func(payload any)) error
	Close() error
}

// NewInProcEventBus returns a new in-memory event bus.
func NewInProcEventBus() *WatermillEventBus {
	return NewWatermillInMemBus()
}

// NewEventBusFromConfig returns an EventBus based on config. Supported: memory (default), nats (with url).
func NewEventBusFromConfig(cfg *config.EventConfig) (EventBus, error) {
	if cfg == nil || cfg.Driver == "" || cfg.Driver == constants.EventDriverMemory {
		return NewWatermillInMemBus(), nil
	}
	switch cfg.Driver {
	case constants.EventDriverNATS:
		if cfg.URL == "" {
			return nil, fmt.Errorf("NATS driver requires url")
		}
		clusterID, clientID := cfg.ClusterID, cfg.ClientID
		if clusterID == "" {
			clusterID = constants.DefaultNATSClusterID
		}
		if clientID == "" {
			clientID = constants.DefaultNATSClientID
		}
		return NewWatermillNATSBus(clusterID, clientID, cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported event bus driver: %s", cfg.Driver)
	}
}
