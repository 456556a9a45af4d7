package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/config"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
)

const (
	// ManagerNodeID is the unique identifier for the session manager node.
	ManagerNodeID graft.ID = "adapter.session.manager"
	// NodeID is the unique identifier for the opened session node.
	NodeID graft.ID = "adapter.session"
)

func init() {
	graft.Register(graft.Node[ports.SessionManager]{
		ID:        ManagerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.SessionManager, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(cfg.StateDir), nil
		},
	})

	graft.Register(graft.Node[domain.Session]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ManagerNodeID},
		Run: func(ctx context.Context) (domain.Session, error) {
			manager, err := graft.Dep[ports.SessionManager](ctx)
			if err != nil {
				return domain.Session{}, err
			}
			return manager.Open()
		},
	})
}
