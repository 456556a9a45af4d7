package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/depstore"  //nolint:depguard // Wired in app layer
	"go.trai.ch/redo/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/redo/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/redo/internal/adapters/session"   //nolint:depguard // Wired in app layer
	"go.trai.ch/redo/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/redo/internal/engine/builder"
	"go.trai.ch/redo/internal/engine/checker"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			checker.NodeID,
			builder.NodeID,
			session.ManagerNodeID,
			session.NodeID,
			depstore.SinkNodeID,
			fs.VerifierNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	chk, err := graft.Dep[*checker.Checker](ctx)
	if err != nil {
		return nil, err
	}

	bld, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := graft.Dep[ports.SessionManager](ctx)
	if err != nil {
		return nil, err
	}

	sess, err := graft.Dep[domain.Session](ctx)
	if err != nil {
		return nil, err
	}

	sink, err := graft.Dep[ports.RecordSink](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[*fs.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(chk, bld, sessions, sess, sink, verifier, log, tel), nil
}
