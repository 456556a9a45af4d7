package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/config"
	"go.trai.ch/redo/internal/adapters/telemetry/progrock"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
)

// NodeID is the unique identifier for the Telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Telemetry), nil
		},
	})
}

// New returns the telemetry backend for kind.
func New(kind domain.TelemetryKind) ports.Telemetry {
	if kind == domain.TelemetryProgrock {
		return progrock.New(os.Stderr)
	}
	return NewNoOp()
}
